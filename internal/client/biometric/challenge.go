package biometric

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fingergate/internal/common"
)

// Challenge is a single issued biometric check. It resolves exactly once.
type Challenge struct {
	done   chan struct{}
	once   sync.Once
	err    error
	cancel context.CancelFunc
}

func newChallenge(cancel context.CancelFunc) *Challenge {
	return &Challenge{done: make(chan struct{}), cancel: cancel}
}

// resolve records the outcome; later calls are no-ops. It reports whether
// this call was the one that resolved c.
func (c *Challenge) resolve(err error) bool {
	resolved := false
	c.once.Do(func() {
		c.err = err
		resolved = true
		close(c.done)
		if c.cancel != nil {
			c.cancel()
		}
	})
	return resolved
}

// Result returns the outcome, or common.ErrChallengePending if c has not
// resolved yet.
func (c *Challenge) Result() error {
	select {
	case <-c.done:
		return c.err
	default:
		return common.ErrChallengePending
	}
}

// Wait blocks until c resolves or ctx is done. Giving up on ctx does not
// resolve the challenge.
func (c *Challenge) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel resolves c as failed if it is still pending.
func (c *Challenge) Cancel() {
	c.resolve(failed(context.Canceled))
}
