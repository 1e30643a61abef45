package encode

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/ytget/mp3get/internal/model"
)

const (
	// FFmpegCommand is the name of the ffmpeg executable looked up on PATH.
	FFmpegCommand = "ffmpeg"
	// AudioCodec is the MP3 encoder passed to ffmpeg.
	AudioCodec = "libmp3lame"
	// DefaultBitrate is used when no bitrate is configured.
	DefaultBitrate = "192k"

	stdinPipe  = "pipe:0"
	stdoutPipe = "pipe:1"
)

// FFmpeg re-encodes audio to MP3 by piping it through an ffmpeg child
// process. The process reads from stdin and writes to stdout so no
// intermediate files are needed.
type FFmpeg struct {
	// Bitrate is the target audio bitrate, e.g. "192k".
	Bitrate string
	// Path overrides the executable location. Empty means look up
	// FFmpegCommand on PATH.
	Path string
}

// NewFFmpeg creates an ffmpeg encoder with the given bitrate.
// An empty bitrate falls back to DefaultBitrate.
func NewFFmpeg(bitrate string) *FFmpeg {
	return &FFmpeg{Bitrate: bitrate}
}

// Available reports whether the ffmpeg executable can be found.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.command())
	return err == nil
}

func (f *FFmpeg) command() string {
	if f.Path != "" {
		return f.Path
	}
	return FFmpegCommand
}

func (f *FFmpeg) bitrate() string {
	if f.Bitrate != "" {
		return f.Bitrate
	}
	return DefaultBitrate
}

// Encode runs ffmpeg with src on stdin and dst on stdout and returns
// the number of bytes written to dst. Cancelling the context kills the
// child process. ffmpeg failures are reported as encoding errors with
// the process stderr as detail.
func (f *FFmpeg) Encode(ctx context.Context, src io.Reader, dst io.Writer) (int64, error) {
	cmd := exec.CommandContext(ctx, f.command(),
		"-hide_banner", "-loglevel", "error",
		"-i", stdinPipe,
		"-vn",
		"-acodec", AudioCodec,
		"-b:a", f.bitrate(),
		"-f", "mp3",
		stdoutPipe,
	)

	out := &countingWriter{dst: dst}
	var stderr bytes.Buffer
	cmd.Stdin = src
	cmd.Stdout = out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return out.written, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "ffmpeg exited with an error"
		}
		return out.written, model.NewTaskError(model.ErrEncodingFailed, detail, err)
	}
	return out.written, nil
}

type countingWriter struct {
	dst     io.Writer
	written int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.dst.Write(p)
	w.written += int64(n)
	return n, err
}
