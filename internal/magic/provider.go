package magic

import (
	"log"
	"sync"
	"sync/atomic"
)

// Provider owns a single initialize-once slot holding the shared table.
// The published table is immutable and safe for concurrent readers.
type Provider struct {
	opts  Options
	mu    sync.Mutex // serializes initialization
	table atomic.Pointer[Table]
}

// NewProvider creates a provider whose implicit initialization uses opts.
func NewProvider(opts Options) *Provider {
	return &Provider{opts: opts}
}

// Shared returns the shared table, building it on first use. It never
// fails: when the table cannot be loaded or generated, or magic lookups
// are disabled, the slot holds an empty table and queries ray-cast.
func (p *Provider) Shared() *Table {
	if t := p.table.Load(); t != nil {
		return t
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if t := p.table.Load(); t != nil {
		return t
	}

	t := Empty()
	if !p.opts.Disabled {
		loaded, err := LoadOrGenerateFrom(FileStore{Path: p.opts.Path}, p.opts)
		if err != nil {
			log.Printf("Warning: magic table unavailable: %v (using ray casting)", err)
		} else {
			t = loaded
		}
	}
	p.table.Store(t)
	return t
}

// Init explicitly initializes the slot from the table file at path.
// It fails with ErrAlreadyInitialized if the slot is already filled,
// implicitly or explicitly, and propagates load or generation errors,
// in which case the slot stays empty.
func (p *Provider) Init(path string, allowGenerate bool) (*Table, error) {
	opts := p.opts
	opts.Path = path
	opts.AllowGenerate = allowGenerate
	return p.InitFrom(FileStore{Path: path}, opts)
}

// InitFrom is Init over an arbitrary store.
func (p *Provider) InitFrom(store Store, opts Options) (*Table, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.table.Load() != nil {
		return nil, ErrAlreadyInitialized
	}

	t, err := LoadOrGenerateFrom(store, opts)
	if err != nil {
		return nil, err
	}
	p.table.Store(t)
	return t, nil
}

// Initialized reports whether the slot has been filled.
func (p *Provider) Initialized() bool {
	return p.table.Load() != nil
}

var defaultProvider = sync.OnceValue(func() *Provider {
	return NewProvider(OptionsFromEnv())
})

// Default returns the process-wide provider, configured from the environment.
func Default() *Provider {
	return defaultProvider()
}

// Shared returns the process-wide shared table.
func Shared() *Table {
	return Default().Shared()
}

// Init explicitly initializes the process-wide table. Call it at most once,
// before any query.
func Init(path string, allowGenerate bool) (*Table, error) {
	return Default().Init(path, allowGenerate)
}
