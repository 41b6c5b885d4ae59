package llm

import (
	"context"
	"sync"
)

// Factory builds the process-wide Generator. It fails when the credential is missing.
type Factory func(ctx context.Context) (Generator, error)

// Lazy defers building a Generator until the first request. A successful build is
// memoised for the life of the process; a failed build is not, so a credential
// supplied later is picked up on the next call.
type Lazy struct {
	factory Factory

	mu  sync.Mutex
	gen Generator
}

// NewLazy wraps factory in a lazily initialised Generator.
func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

// Get returns the memoised Generator, building it if needed.
func (l *Lazy) Get(ctx context.Context) (Generator, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen != nil {
		return l.gen, nil
	}
	gen, err := l.factory(ctx)
	if err != nil {
		return nil, err
	}
	l.gen = gen
	return gen, nil
}

// Generate implements Generator.
func (l *Lazy) Generate(ctx context.Context, req Request) (string, error) {
	gen, err := l.Get(ctx)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, req)
}
