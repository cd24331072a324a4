package store

import (
	"github.com/viant/afs"
	"go.uber.org/zap"
)

// DefaultKey is the KMS key used to encrypt secrets
const DefaultKey = "blowfish://default"

type options struct {
	logger *zap.Logger
	key    string
	fs     afs.Service
}

type Option func(*options)

// WithLogger sets logger reporting storage failures
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKey sets the KMS key URL used for secrets
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithFileService sets afs service
func WithFileService(fs afs.Service) Option {
	return func(o *options) {
		o.fs = fs
	}
}

func newOptions(opts []Option) *options {
	ret := &options{logger: zap.NewNop(), key: DefaultKey}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
