// Package encode provides Encoder implementations for producing MP3 output.
//
// Passthrough copies bytes unchanged, for sources that already deliver
// MP3 data. FFmpeg pipes the input through an ffmpeg child process and
// re-encodes it at a configured bitrate.
package encode
