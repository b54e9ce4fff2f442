package browser

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRenderTimeout = errors.New("page did not settle before timeout")
	ErrRender        = errors.New("render failed")
	ErrClosed        = errors.New("renderer is closed")
)

// Renderer loads a URL and returns a live page handle.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (Page, error)
}

// Evaluator runs a script inside a rendered page. Scripts are function
// expressions returning a string, usually JSON.
type Evaluator interface {
	Evaluate(ctx context.Context, script string) (string, error)
}

// Page is a rendered page. Screenshot and HTML are captured once when
// rendering settles.
type Page interface {
	Evaluator
	Screenshot() []byte
	HTML() string
	Close() error
}
