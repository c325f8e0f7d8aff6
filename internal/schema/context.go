package schema

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gridstore/gridstore/internal/backend"
	"github.com/gridstore/gridstore/internal/config"
)

// Context binds schema operations to a configuration, an error-reporting
// sink, and the storage backend used by Load and Create. Every failing
// schema operation reports through the sink before returning its error.
type Context struct {
	cfg      config.Config
	log      zerolog.Logger
	backend  backend.Backend
	blobComp Compressor
	ownsBE   bool
}

// NewContext opens the backend selected by cfg and returns a context
// logging through log.
func NewContext(cfg config.Config, log zerolog.Logger) (*Context, error) {
	be, err := backend.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}
	ctx, err := NewContextWith(cfg, log, be)
	if err != nil {
		be.Close()
		return nil, err
	}
	ctx.ownsBE = true
	return ctx, nil
}

// NewContextWith is NewContext over a caller-supplied backend, which the
// caller keeps ownership of.
func NewContextWith(cfg config.Config, log zerolog.Logger, be backend.Backend) (*Context, error) {
	kind, err := ParseCompressorKind(cfg.Blob.Compressor)
	if err != nil {
		return nil, fmt.Errorf("blob compressor: %w", err)
	}
	blobComp := Compressor{Kind: kind, Level: cfg.Blob.Level}
	if err := blobComp.Validate(); err != nil {
		return nil, fmt.Errorf("blob compressor: %w", err)
	}
	return &Context{
		cfg:      cfg,
		log:      log.With().Str("component", "schema").Logger(),
		backend:  be,
		blobComp: blobComp,
	}, nil
}

// Config returns the context's configuration.
func (c *Context) Config() config.Config {
	return c.cfg
}

// Backend returns the storage backend this context operates against.
func (c *Context) Backend() backend.Backend {
	return c.backend
}

// Logger returns the context's error sink.
func (c *Context) Logger() zerolog.Logger {
	return c.log
}

// Close releases the backend if the context opened it.
func (c *Context) Close() error {
	if c.ownsBE {
		c.ownsBE = false
		return c.backend.Close()
	}
	return nil
}

// report logs err through the context sink and returns it unchanged, so
// call sites can `return ctx.report(op, err)`.
func (c *Context) report(op string, err error) error {
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("schema operation failed")
	}
	return err
}
