package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// FileStore persists tokens as an oauth2 token JSON snapshot. It is a
// lightweight way to survive process restarts in CLI or single-host tools.
type FileStore struct {
	tokens
	mu     sync.RWMutex
	path   string
	token  oauth2.Token
	logger *zap.Logger
}

func (f *FileStore) get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var value string
	switch key {
	case AccessTokenKey:
		value = f.token.AccessToken
	case RefreshTokenKey:
		value = f.token.RefreshToken
	}
	return value, value != ""
}

func (f *FileStore) put(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assign(key, value)
	return f.save()
}

func (f *FileStore) remove(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		f.assign(key, "")
	}
	return f.save()
}

func (f *FileStore) assign(key, value string) {
	switch key {
	case AccessTokenKey:
		f.token.AccessToken = value
		if value != "" {
			f.token.TokenType = "Bearer"
		}
	case RefreshTokenKey:
		f.token.RefreshToken = value
	}
}

func (f *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f.token, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o600)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), f.path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var token oauth2.Token
	if err = json.Unmarshal(data, &token); err != nil {
		return err
	}
	f.token = token
	return nil
}

// NewFileStore creates a store persisting tokens at the given path.
// An unreadable snapshot is logged and the store starts empty.
func NewFileStore(path string, opts ...Option) *FileStore {
	o := newOptions(opts)
	ret := &FileStore{path: path, logger: o.logger}
	ret.kv = ret
	if err := ret.load(); err != nil {
		ret.logger.Warn("failed to load credentials, starting unauthenticated", zap.String("path", path), zap.Error(err))
	}
	return ret
}
