package registry

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/decentraland/thirdparty-registry/src/store"
)

type staticCallKey struct{}

// Read-only window into the registry, open while an external contract is queried
type staticCall struct {
	mtx      sync.Mutex
	state    store.State
	finished bool
	violated atomic.Bool
}

func withStaticCall(ctx context.Context, call *staticCall) context.Context {
	return context.WithValue(ctx, staticCallKey{}, call)
}

func staticCallFrom(ctx context.Context) *staticCall {
	call, _ := ctx.Value(staticCallKey{}).(*staticCall)
	return call
}

// Reads see the state of the operation that opened the call
func (self *staticCall) view(f func(store.State) error) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	if self.finished {
		return ErrStaticCallFinished
	}
	return f(store.ReadOnly(self.state))
}

// Waits for in-flight reads. Returns true if a write was attempted.
func (self *staticCall) finish() (violated bool) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.finished = true
	return self.violated.Load()
}
