package resolver

import "context"

// tracker hands out generation tokens for one resource. Only the newest token
// may commit a result; issuing a new one cancels the previous request.
type tracker struct {
	gen    uint64
	cancel context.CancelFunc
}

func (t *tracker) issue(parent context.Context) (uint64, context.Context) {
	t.release()
	t.gen++
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	return t.gen, ctx
}

func (t *tracker) current(token uint64) bool {
	return token != 0 && token == t.gen
}

// settle frees the context of the request holding token once it completed.
func (t *tracker) settle(token uint64) {
	if t.current(token) {
		t.release()
	}
}

// invalidate makes every outstanding token stale.
func (t *tracker) invalidate() {
	t.release()
	t.gen++
}

func (t *tracker) release() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
