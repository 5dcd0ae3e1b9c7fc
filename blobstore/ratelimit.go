package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// RateLimitedWriter throttles writes against a shared byte-per-second
// limiter. Wrap a WritableBlob with it to keep large snapshot uploads from
// saturating the network path of a serving process.
type RateLimitedWriter struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

// NewRateLimitedWriter wraps w so that writes consume limiter tokens
// (one token per byte) before being forwarded.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, limiter *rate.Limiter) *RateLimitedWriter {
	return &RateLimitedWriter{ctx: ctx, w: w, limiter: limiter}
}

// Write waits until the limiter admits len(p) bytes, then forwards them.
// Writes larger than the limiter's burst are split.
func (rl *RateLimitedWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := len(p)
		if burst := rl.limiter.Burst(); chunk > burst {
			chunk = burst
		}
		if err := rl.limiter.WaitN(rl.ctx, chunk); err != nil {
			return written, err
		}
		n, err := rl.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}
