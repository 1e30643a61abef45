package download

// Package download implements the core task pipeline: it drives a single
// video URL to a single MP3 file through an AudioSource and an Encoder,
// with progress reporting, cooperative cancellation, and atomic output
// placement.
