package resolve

// Package resolve implements the converter-service client: it turns a
// YouTube video ID into a video title and a streaming MP3 download URL via
// the service's init/convert handshake, and adapts the result to the
// download.AudioSource interface.
