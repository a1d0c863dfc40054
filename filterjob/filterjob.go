// Package filterjob defines the work-item contract for running spatial
// filters outside the caller's goroutine (worker pools, background
// processes).
//
// The engine does not own a pool: execution is an injected Runner, and the
// pool is just one caller-side scheduling strategy among several. Because
// every filter is deterministic and side-effect-free, a failed or timed-out
// remote run can always be retried synchronously in-process with identical
// output; Execute implements exactly that fallback, so resource failures at
// the boundary never surface to the end user.
package filterjob

import (
	"context"
	"fmt"
	"time"

	"github.com/halftone/imagecore"
	"github.com/halftone/imagecore/filter"
)

// Operation names a filter in a work item. The names are part of the
// boundary protocol.
type Operation string

const (
	// OpKernel is generic 3x3 kernel convolution.
	OpKernel Operation = "kernel"
	// OpMedian is the median filter.
	OpMedian Operation = "median"
	// OpGaussian is the repeated-pass blur.
	OpGaussian Operation = "gaussian"
	// OpLaplacian is the fixed Laplacian edge filter.
	OpLaplacian Operation = "laplacian"
)

// DefaultTimeout is the recommended deadline for an out-of-process filter
// invocation.
const DefaultTimeout = 30 * time.Second

// OffloadThreshold is the pixel count above which filter work is worth
// handing to a worker instead of blocking the caller (larger than 500x500).
const OffloadThreshold = 250000

// Request is one filter invocation. Exactly one operation's parameter fields
// are consulted: Kernel for OpKernel, KernelSize for OpMedian, Sigma for
// OpGaussian; OpLaplacian takes no parameters.
type Request struct {
	Op     Operation
	Buffer *imagecore.PixelBuffer

	Kernel     filter.Kernel
	KernelSize int
	Sigma      float64
}

// Apply runs the request synchronously in-process and returns the filtered
// buffer. Parameter validation is delegated to the filter package, so a
// request rejected here fails identically wherever it executes.
func (r *Request) Apply() (*imagecore.PixelBuffer, error) {
	switch r.Op {
	case OpKernel:
		return filter.Convolve(r.Buffer, r.Kernel)
	case OpMedian:
		return filter.Median(r.Buffer, r.KernelSize)
	case OpGaussian:
		return filter.GaussianBlur(r.Buffer, r.Sigma)
	case OpLaplacian:
		return filter.Laplacian(r.Buffer)
	default:
		return nil, fmt.Errorf("unknown filter operation %q", r.Op)
	}
}

// Runner executes a request somewhere: a worker pool, a background
// goroutine, another process. Implementations must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, req *Request) (*imagecore.PixelBuffer, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, req *Request) (*imagecore.PixelBuffer, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, req *Request) (*imagecore.PixelBuffer, error) {
	return f(ctx, req)
}

// SyncRunner executes requests inline. It is the degenerate scheduling
// strategy and the reference for what any other Runner must produce.
type SyncRunner struct{}

// Run applies the request in the calling goroutine.
func (SyncRunner) Run(_ context.Context, req *Request) (*imagecore.PixelBuffer, error) {
	return req.Apply()
}

// ShouldOffload reports whether a buffer is large enough that filtering it
// on a worker is recommended.
func ShouldOffload(buf *imagecore.PixelBuffer) bool {
	return buf.Width*buf.Height > OffloadThreshold
}

// Execute runs the request on the given runner under DefaultTimeout (or the
// earlier deadline already on ctx). If the runner fails, times out, or is
// nil, the request is re-applied synchronously in-process; the output is
// identical by construction, so the caller never observes the boundary
// failure.
func Execute(ctx context.Context, runner Runner, req *Request) (*imagecore.PixelBuffer, error) {
	if runner == nil {
		return req.Apply()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	type result struct {
		buf *imagecore.PixelBuffer
		err error
	}

	// Buffered so a runner finishing after the deadline does not leak its
	// goroutine.
	done := make(chan result, 1)
	go func() {
		buf, err := runner.Run(ctx, req)
		done <- result{buf, err}
	}()

	select {
	case res := <-done:
		if res.err == nil {
			return res.buf, nil
		}
	case <-ctx.Done():
	}

	// Same-process synchronous retry of the identical operation.
	return req.Apply()
}
