package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
	"go.uber.org/zap"
)

// SecretStore keeps each token as a separate encrypted scy secret under baseURL
type SecretStore struct {
	tokens
	mu      sync.RWMutex
	baseURL string
	key     string
	fs      afs.Service
	secrets *scy.Service
	logger  *zap.Logger
}

type secretEntry struct {
	Value string `json:"value"`
}

// URL returns secret location for the key
func (s *SecretStore) URL(key string) string {
	return url.Join(s.baseURL, key+".json")
}

func (s *SecretStore) get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx := context.Background()
	URL := s.URL(key)
	if ok, err := s.fs.Exists(ctx, URL); err != nil || !ok {
		if err != nil {
			s.logger.Warn("failed to check secret", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	secret, err := s.secrets.Load(ctx, scy.NewResource(&secretEntry{}, URL, s.key))
	if err != nil {
		s.logger.Warn("failed to load secret", zap.String("key", key), zap.Error(err))
		return "", false
	}
	var value string
	switch actual := secret.Target.(type) {
	case *secretEntry:
		value = actual.Value
	case secretEntry:
		value = actual.Value
	}
	return value, value != ""
}

func (s *SecretStore) put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resource := scy.NewResource(&secretEntry{}, s.URL(key), s.key)
	if err := s.secrets.Store(context.Background(), scy.NewSecret(&secretEntry{Value: value}, resource)); err != nil {
		return fmt.Errorf("failed to store %v: %w", key, err)
	}
	return nil
}

func (s *SecretStore) remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := context.Background()
	var errs []error
	for _, key := range keys {
		URL := s.URL(key)
		ok, err := s.fs.Exists(ctx, URL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		if err = s.fs.Delete(ctx, URL); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %v: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// NewSecretStore creates an encrypted store rooted at baseURL (any afs supported location)
func NewSecretStore(baseURL string, opts ...Option) *SecretStore {
	o := newOptions(opts)
	ret := &SecretStore{
		baseURL: baseURL,
		key:     o.key,
		fs:      o.fs,
		secrets: scy.New(),
		logger:  o.logger,
	}
	ret.kv = ret
	return ret
}
