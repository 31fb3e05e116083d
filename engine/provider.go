package engine

import (
	"fmt"
	"sync"

	"github.com/vocdoni/arcane-treasury/log"
)

// Builder constructs the real engine. It is supplied by the bootstrap code,
// which knows which backend is available in the current process.
type Builder func() (Engine, error)

// Provider resolves the active engine exactly once per process lifetime. If
// no builder is given, or the builder fails, the provider falls back to its
// Fallback engine and reports it only through the logs.
type Provider struct {
	builder  Builder
	fallback *Fallback

	once       sync.Once
	engine     Engine
	isFallback bool
}

// NewProvider returns a provider for the given builder, which may be nil.
func NewProvider(builder Builder) *Provider {
	return &Provider{
		builder:  builder,
		fallback: NewFallback(),
	}
}

// Static returns a provider that always resolves to e. A nil engine resolves
// to the fallback.
func Static(e Engine) *Provider {
	if e == nil {
		return NewProvider(nil)
	}
	return NewProvider(func() (Engine, error) { return e, nil })
}

// Engine returns the resolved engine, resolving it on the first call. It
// never fails: every resolution problem ends up selecting the fallback.
func (p *Provider) Engine() Engine {
	p.once.Do(p.resolve)
	return p.engine
}

// Fallback returns the Fallback engine of the provider, used for per-call
// substitutions.
func (p *Provider) Fallback() *Fallback {
	return p.fallback
}

// IsFallback reports whether the resolved engine is the fallback.
func (p *Provider) IsFallback() bool {
	p.once.Do(p.resolve)
	return p.isFallback
}

func (p *Provider) resolve() {
	if p.builder == nil {
		log.Warnw("no encryption engine available, using fallback engine",
			"error", ErrEngineUnavailable.Error())
		p.useFallback()
		return
	}
	e, err := p.build()
	if err != nil {
		log.Errorw(err, "failed to initialize encryption engine, using fallback engine")
		p.useFallback()
		return
	}
	log.Infow("encryption engine resolved", "engine", e.Name())
	p.engine = e
}

// build runs the builder, turning panics and nil engines into errors.
func (p *Provider) build() (e Engine, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, fmt.Errorf("%w: builder panic: %v", ErrEngineUnavailable, r)
		}
	}()
	e, err = p.builder()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: builder returned a nil engine", ErrEngineUnavailable)
	}
	return e, nil
}

func (p *Provider) useFallback() {
	p.engine = p.fallback
	p.isFallback = true
}
