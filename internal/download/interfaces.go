package download

import (
	"context"
	"io"

	"github.com/ytget/mp3get/internal/model"
)

// AudioSource resolves a video URL to a readable audio byte stream.
type AudioSource interface {
	// Resolve turns the URL into a streamable audio handle. Implementations
	// return a model.TaskError of kind ErrSourceUnavailable when the video
	// cannot be resolved.
	Resolve(ctx context.Context, url string) (AudioStream, error)
}

// AudioStream is a lazy, finite, non-restartable sequence of raw audio
// byte chunks.
type AudioStream interface {
	// Read returns the next chunk. It reports io.EOF at end of stream and a
	// model.TaskError of kind ErrTransferInterrupted on network failure.
	Read(ctx context.Context) ([]byte, error)

	// Title reports the video title when known, empty string otherwise.
	Title() string

	// TotalBytes reports the expected stream length, or
	// model.TotalBytesUnknown when the source does not announce one.
	TotalBytes() int64

	Close() error
}

// Encoder transcodes raw audio bytes into MP3-encoded bytes. It reads src
// until EOF and writes the MP3 output to dst, returning the number of bytes
// written. A malformed input stream yields a model.TaskError of kind
// ErrEncodingFailed.
type Encoder interface {
	Encode(ctx context.Context, src io.Reader, dst io.Writer) (int64, error)
}

// Downloader defines the interface the UI shells program against.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Start(req model.DownloadRequest) (*model.DownloadTask, error)
	Cancel(id string) error
	Progress(id string) (model.ProgressSnapshot, bool)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	Wait(id string) <-chan struct{}
}
