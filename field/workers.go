// SPDX-License-Identifier: MIT

package field

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// mapFrames runs fn over every frame on a bounded errgroup and collects the
// results in frame order. The first error cancels the remaining frames.
func mapFrames(frames []Frame, o options, op string, fn func(k int, f Frame) (Frame, error)) ([]Frame, error) {
	out := make([]Frame, len(frames))
	g, ctx := errgroup.WithContext(o.ctx)
	g.SetLimit(o.workers)
	for k := range frames {
		k := k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := fn(k, frames[k])
			if err != nil {
				return fmt.Errorf("%s: frame %d: %w", op, k, err)
			}
			out[k] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	o.debug("field: frames processed", "op", op, "frames", len(frames))

	return out, nil
}
