package webflash

import (
	"context"
	"fmt"
	"log/slog"

	boltadapter "github.com/webflash/webflash/pkg/adapters/bolt"
	fsadapter "github.com/webflash/webflash/pkg/adapters/fs"
	"github.com/webflash/webflash/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.3.0"

// options holds the internal configuration for the webflash service.
type options struct {
	adapter    string
	mustExist  bool
	repository core.Repository
	logger     *slog.Logger
}

// Option defines a functional option for configuring webflash.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
	}
}

// Storage adapter names accepted by WithAdapter.
const (
	// AdapterFS stores the whole collection in one JSON slot file.
	AdapterFS = "fs"
	// AdapterBolt stores cards per-record in a BoltDB file.
	AdapterBolt = "bolt"
)

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return func(o *options) { o.adapter = name }
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) { o.mustExist = must }
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the named adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) { o.repository = repo }
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = fsadapter.NewRepository(fsadapter.Config{
			Path:      path,
			MustExist: o.mustExist,
			Logger:    o.logger,
		})
	case AdapterBolt:
		repo = boltadapter.NewRepository(boltadapter.Config{
			Path:   path,
			Logger: o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown storage adapter %q", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// New creates a flashcard Service over the data directory at path.
//
//	svc, err := webflash.New("~/.webflash", webflash.WithAdapter("bolt"))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
