package encode

import (
	"context"
	"io"
)

// Passthrough writes the source bytes to the destination unchanged.
// It is the default encoder when the resolved stream is already MP3.
type Passthrough struct{}

// NewPassthrough creates a passthrough encoder.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// Encode copies src to dst until EOF and returns the number of bytes
// written. Errors from either side are returned as-is so the caller
// can attribute them to the transfer or the write.
func (p *Passthrough) Encode(ctx context.Context, src io.Reader, dst io.Writer) (int64, error) {
	n, err := io.Copy(dst, src)
	if err != nil && ctx.Err() != nil {
		return n, ctx.Err()
	}
	return n, err
}
