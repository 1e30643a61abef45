package resolve

import (
	"context"
	"errors"
	"io"

	"github.com/ytget/mp3get/internal/download"
	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
)

const defaultChunkSize = 64 * 1024

// Source adapts the converter client to download.AudioSource
type Source struct {
	client    *Client
	chunkSize int
}

// NewSource creates an AudioSource backed by the converter service
func NewSource(client *Client) *Source {
	return &Source{client: client, chunkSize: defaultChunkSize}
}

// Probe resolves only the video title, used for suggesting a file name
// before the user picks a destination.
func (s *Source) Probe(ctx context.Context, rawURL string) (string, error) {
	videoID, ok := platform.ExtractVideoID(rawURL)
	if !ok {
		return "", model.NewTaskError(model.ErrSourceUnavailable,
			"not a recognized video URL", nil)
	}
	info, err := s.client.DownloadInfo(ctx, videoID)
	if err != nil {
		return "", model.NewTaskError(model.ErrSourceUnavailable,
			"failed to resolve video", err)
	}
	return info.Title, nil
}

// Resolve turns the URL into a streaming MP3 handle
func (s *Source) Resolve(ctx context.Context, rawURL string) (download.AudioStream, error) {
	videoID, ok := platform.ExtractVideoID(rawURL)
	if !ok {
		return nil, model.NewTaskError(model.ErrSourceUnavailable,
			"not a recognized video URL", nil)
	}

	info, err := s.client.DownloadInfo(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, model.NewTaskError(model.ErrSourceUnavailable,
			"failed to resolve video", err)
	}

	resp, err := s.client.OpenStream(ctx, info.DownloadURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, model.NewTaskError(model.ErrSourceUnavailable,
			"failed to open audio stream", err)
	}

	total := resp.ContentLength
	if total < 0 {
		total = model.TotalBytesUnknown
	}
	return &httpStream{
		body:  resp.Body,
		title: info.Title,
		total: total,
		buf:   make([]byte, s.chunkSize),
	}, nil
}

// httpStream reads the MP3 response body in fixed-size chunks
type httpStream struct {
	body  io.ReadCloser
	title string
	total int64
	buf   []byte
}

func (hs *httpStream) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := hs.body.Read(hs.buf)
	var chunk []byte
	if n > 0 {
		// The buffer is reused between reads
		chunk = append([]byte(nil), hs.buf[:n]...)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return chunk, ctx.Err()
		}
		return chunk, model.NewTaskError(model.ErrTransferInterrupted,
			"network read failed", err)
	}
	return chunk, err
}

func (hs *httpStream) Title() string     { return hs.title }
func (hs *httpStream) TotalBytes() int64 { return hs.total }

func (hs *httpStream) Close() error {
	return hs.body.Close()
}
