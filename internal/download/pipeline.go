package download

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
)

// transfer pulls source chunks through the encoder into the temp file and
// commits it. Returns completed=true only after the atomic rename succeeds.
func (s *Service) transfer(ctx context.Context, task *model.DownloadTask, stream AudioStream, tempPath, destPath string) (bool, *model.TaskError) {
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return false, model.NewTaskError(model.ErrWriteFailed, "failed to create temp file", err)
	}

	pr, pw := io.Pipe()
	pumpDone := make(chan error, 1)
	go func() {
		pumpDone <- s.pump(ctx, task, stream, pw)
	}()

	encodeSrc := newPhaseReader(pr, func() { s.transition(task, model.TaskStateEncoding) })
	encodeDst := newPhaseWriter(tempFile, func() { s.transition(task, model.TaskStateWriting) })
	_, encErr := s.encoder.Encode(ctx, encodeSrc, encodeDst)

	// Unblock the pump if the encoder bailed before draining the pipe
	pr.CloseWithError(io.ErrClosedPipe)
	pumpErr := <-pumpDone

	if ctx.Err() != nil {
		tempFile.Close()
		return false, nil // finalize reports Cancelled
	}
	if pumpErr != nil {
		tempFile.Close()
		return false, classify(pumpErr, model.ErrTransferInterrupted, "network transfer failed")
	}
	if encErr != nil {
		tempFile.Close()
		// A failed destination write surfaces through the encoder's copy
		// error; the writer's own record decides which side broke.
		if encodeDst.err != nil {
			return false, model.NewTaskError(model.ErrWriteFailed, "failed to write output file", encodeDst.err)
		}
		return false, classify(encErr, model.ErrEncodingFailed, "encoder rejected the audio stream")
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return false, model.NewTaskError(model.ErrWriteFailed, "failed to flush output file", err)
	}
	if err := tempFile.Close(); err != nil {
		return false, model.NewTaskError(model.ErrWriteFailed, "failed to close output file", err)
	}
	if err := platform.CommitTempFile(tempPath, destPath); err != nil {
		return false, model.NewTaskError(model.ErrWriteFailed, "failed to finalize output file", err)
	}
	return true, nil
}

// pump forwards source chunks into the encoder's pipe, checking cancellation
// before every read. It returns an error only for source-side failures; a
// closed read side means the encoder's own error is authoritative.
func (s *Service) pump(ctx context.Context, task *model.DownloadTask, stream AudioStream, pw *io.PipeWriter) error {
	defer pw.Close()
	for {
		if err := ctx.Err(); err != nil {
			pw.CloseWithError(err)
			return nil
		}

		chunk, err := stream.Read(ctx)
		if len(chunk) > 0 {
			s.addBytesTransferred(task, int64(len(chunk)))
			if _, werr := pw.Write(chunk); werr != nil {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			pw.CloseWithError(err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// classify keeps an existing TaskError's kind, otherwise wraps err with the
// fallback kind.
func classify(err error, fallback model.ErrorKind, detail string) *model.TaskError {
	var taskErr *model.TaskError
	if errors.As(err, &taskErr) {
		return taskErr
	}
	return model.NewTaskError(fallback, detail, err)
}

// phaseReader fires a callback on the first successful read, marking the
// moment the encoder starts consuming data.
type phaseReader struct {
	r    io.Reader
	once sync.Once
	fn   func()
}

func newPhaseReader(r io.Reader, fn func()) *phaseReader {
	return &phaseReader{r: r, fn: fn}
}

func (pr *phaseReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.once.Do(pr.fn)
	}
	return n, err
}

// phaseWriter fires a callback on the first write, marking the moment
// encoded bytes start being persisted. It keeps the first write error so
// the pipeline can tell a destination failure from an encoder failure.
type phaseWriter struct {
	w    io.Writer
	once sync.Once
	fn   func()
	err  error // first write error
}

func newPhaseWriter(w io.Writer, fn func()) *phaseWriter {
	return &phaseWriter{w: w, fn: fn}
}

func (pw *phaseWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		pw.once.Do(pw.fn)
	}
	n, err := pw.w.Write(p)
	if err != nil && pw.err == nil {
		pw.err = err
	}
	return n, err
}
