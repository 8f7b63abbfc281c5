// ABOUTME: Backend selection based on platform capabilities and configuration.
// ABOUTME: Falls back to the in-memory store when a persistent engine cannot open.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Capabilities describes which persistent engines the platform supports.
type Capabilities struct {
	FileStorage bool
	KeyValue    bool
}

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	Backend      Kind
	DataDir      string
	CharmHost    string
	Capabilities Capabilities
	Logger       *log.Logger
}

// Provider opens the active Backend once per process.
type Provider struct {
	opts ProviderOptions

	mu      sync.Mutex
	backend Backend

	// open starts a persistent engine. Tests replace it to simulate a
	// missing native dependency.
	open func(kind Kind) (Backend, error)
}

// NewProvider returns a Provider for the given options.
func NewProvider(opts ProviderOptions) *Provider {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	p := &Provider{opts: opts}
	p.open = p.openEngine
	return p
}

// Resolve reports which engine the Provider will try first.
func (p *Provider) Resolve() Kind {
	if p.opts.Backend != "" && p.opts.Backend != KindAuto {
		return p.opts.Backend
	}
	switch {
	case p.opts.Capabilities.FileStorage:
		return KindSQLite
	case p.opts.Capabilities.KeyValue:
		return KindKV
	default:
		return KindMemory
	}
}

// Open returns the active Backend, starting it on first use. When the
// preferred engine cannot be opened, the Provider logs one warning and
// serves an in-memory store for the rest of its life. An engine that opens
// but fails to initialize, such as one holding a malformed document, is
// closed and returned as an error.
func (p *Provider) Open(ctx context.Context) (Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend != nil {
		return p.backend, nil
	}

	kind := p.Resolve()
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	if kind == KindMemory {
		p.backend = NewMemoryStore()
		return p.backend, nil
	}

	backend, err := p.open(kind)
	if err != nil {
		p.opts.Logger.Warn("persistent storage unavailable, falling back to memory",
			"backend", kind, "err", err)
		p.backend = NewMemoryStore()
		return p.backend, nil
	}
	if err := backend.Init(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("initialize %s store: %w", kind, err)
	}

	p.opts.Logger.Debug("storage opened", "backend", kind)
	p.backend = backend
	return p.backend, nil
}

// Close closes the active Backend if one was opened.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend == nil {
		return nil
	}
	err := p.backend.Close()
	p.backend = nil
	return err
}

func (p *Provider) openEngine(kind Kind) (Backend, error) {
	switch kind {
	case KindSQLite:
		return OpenSQLite(filepath.Join(p.opts.DataDir, "superlift.db"))
	case KindKV:
		return OpenBadger(filepath.Join(p.opts.DataDir, "kv"))
	case KindCharm:
		return OpenCharm(p.opts.CharmHost)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
