package task

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Implement operation retrying
type Retry struct {
	ctx            context.Context
	maxElapsedTime time.Duration
	maxInterval    time.Duration
	onError        func(error) error
}

func NewRetry() *Retry {
	return &Retry{
		ctx:     context.Background(),
		onError: func(err error) error { return err },
	}
}

func (self *Retry) WithMaxElapsedTime(maxElapsedTime time.Duration) *Retry {
	self.maxElapsedTime = maxElapsedTime
	return self
}

func (self *Retry) WithMaxInterval(maxInterval time.Duration) *Retry {
	self.maxInterval = maxInterval
	return self
}

func (self *Retry) WithContext(ctx context.Context) *Retry {
	self.ctx = ctx
	return self
}

// Called after each failed attempt. Returning a backoff.Permanent error stops retrying.
func (self *Retry) WithOnError(v func(error) error) *Retry {
	self.onError = v
	return self
}

func (self *Retry) Run(f func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = self.maxElapsedTime
	if self.maxInterval > 0 {
		b.MaxInterval = self.maxInterval
	}
	return backoff.Retry(func() error {
		err := f()
		if err == nil {
			return nil
		}
		return self.onError(err)
	}, backoff.WithContext(b, self.ctx))
}
