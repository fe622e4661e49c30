package pageobject

import (
	"context"
	"time"
)

// WithContext sets the context passed to the driver
func WithContext(ctx context.Context) Option {
	return func(p *PageObject) {
		p.ctx = ctx
	}
}

// Context creates a clone with a context that inherits the previous one
func (p *PageObject) Context(ctx context.Context) *PageObject {
	if ctx == p.ctx {
		return p
	}

	newObj := *p
	newObj.ctx = ctx
	return &newObj
}

// GetContext of the page object
func (p *PageObject) GetContext() context.Context {
	return p.ctx
}

// Timeout for chained sub-operations
func (p *PageObject) Timeout(d time.Duration) *PageObject {
	ctx, cancel := context.WithTimeout(p.ctx, d)
	newObj := p.Context(ctx)
	newObj.timeoutCancel = cancel
	return newObj
}

// CancelTimeout context
func (p *PageObject) CancelTimeout() *PageObject {
	p.timeoutCancel()
	return p
}
