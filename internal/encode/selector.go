package encode

import (
	"context"
	"io"
)

// Selector picks the encoder per task from preference callbacks, so a
// settings change applies to the next download without restarting. It
// falls back to Passthrough when re-encoding is off or ffmpeg is absent.
type Selector struct {
	ReEncode func() bool
	Bitrate  func() string
}

// Encode delegates to FFmpeg when re-encoding is requested and available,
// otherwise to Passthrough.
func (s *Selector) Encode(ctx context.Context, src io.Reader, dst io.Writer) (int64, error) {
	if s.ReEncode != nil && s.ReEncode() {
		bitrate := ""
		if s.Bitrate != nil {
			bitrate = s.Bitrate()
		}
		ff := NewFFmpeg(bitrate)
		if ff.Available() {
			return ff.Encode(ctx, src, dst)
		}
	}
	return NewPassthrough().Encode(ctx, src, dst)
}
