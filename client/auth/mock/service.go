package mock

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/viant/grocery/internal/collection"
	"github.com/viant/grocery/schema"
	"go.uber.org/zap"
)

// BasePath is the versioned API prefix
const BasePath = "/api/v1"

type (
	user struct {
		ID             string
		Username       string
		Email          string
		PasswordHash   []byte
		Active         bool
		ActivationCode string
		ResetCode      string
	}

	// Backend simulates the grocery authentication API
	Backend struct {
		Secret     []byte
		AccessTTL  time.Duration
		RefreshTTL time.Duration
		// RefreshHandler overrides the refresh token endpoint
		RefreshHandler func(w http.ResponseWriter, r *http.Request)
		// CurrentUserHandler overrides the current user endpoint
		CurrentUserHandler func(w http.ResponseWriter, r *http.Request)

		logger     *zap.Logger
		users      *collection.SyncMap[string, user]
		emails     *collection.SyncMap[string, string]
		calls      *collection.SyncMap[string, int]
		generation atomic.Int64
	}

	Option func(b *Backend)
)

// WithAccessTTL sets access token time to live
func WithAccessTTL(ttl time.Duration) Option {
	return func(b *Backend) {
		b.AccessTTL = ttl
	}
}

// WithSecret sets JWT signing secret
func WithSecret(secret []byte) Option {
	return func(b *Backend) {
		b.Secret = secret
	}
}

// WithLogger sets logger reporting issued activation and reset codes
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// ExpireAccessTokens invalidates every access token issued so far, refresh tokens stay valid
func (b *Backend) ExpireAccessTokens() {
	b.generation.Add(1)
}

// ActivationCode returns pending activation code for the email
func (b *Backend) ActivationCode(email string) (string, bool) {
	u, ok := b.userByEmail(email)
	if !ok || u.ActivationCode == "" {
		return "", false
	}
	return u.ActivationCode, true
}

// ResetCode returns pending reset password code for the email
func (b *Backend) ResetCode(email string) (string, bool) {
	u, ok := b.userByEmail(email)
	if !ok || u.ResetCode == "" {
		return "", false
	}
	return u.ResetCode, true
}

// Calls returns number of requests received by the API path, i.e. /auth/login
func (b *Backend) Calls(path string) int {
	count, _ := b.calls.Get(path)
	return count
}

func (b *Backend) userByEmail(email string) (user, bool) {
	username, ok := b.emails.Get(strings.ToLower(email))
	if !ok {
		return user{}, false
	}
	return b.users.Get(username)
}

// Handler returns an http.Handler for all endpoints, mounted under BasePath.
// Routes live on the root router so a method mismatch answers 405.
func (b *Backend) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(b.count)
	router.HandleFunc(BasePath+schema.PathRegister, b.register).Methods(http.MethodPost)
	router.HandleFunc(BasePath+schema.PathLogin, b.login).Methods(http.MethodPost)
	router.HandleFunc(BasePath+schema.PathActivate, b.activate).Methods(http.MethodPatch)
	router.HandleFunc(BasePath+schema.PathRefreshToken, b.refreshEndpoint).Methods(http.MethodPost)
	router.HandleFunc(BasePath+schema.PathForgotPassword, b.forgotPassword).Methods(http.MethodPost)
	router.HandleFunc(BasePath+schema.PathResetPassword, b.resetPassword).Methods(http.MethodPatch)
	router.HandleFunc(BasePath+schema.PathCurrentUser, b.currentUserEndpoint).Methods(http.MethodGet)
	return router
}

func (b *Backend) refreshEndpoint(w http.ResponseWriter, r *http.Request) {
	if b.RefreshHandler != nil {
		b.RefreshHandler(w, r)
		return
	}
	b.refresh(w, r)
}

func (b *Backend) currentUserEndpoint(w http.ResponseWriter, r *http.Request) {
	if b.CurrentUserHandler != nil {
		b.CurrentUserHandler(w, r)
		return
	}
	b.currentUser(w, r)
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, BasePath)
		b.calls.Update(path, func(count int, _ bool) (int, bool) { return count + 1, true })
		next.ServeHTTP(w, r)
	})
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// New creates a backend
func New(opts ...Option) *Backend {
	ret := &Backend{
		Secret:     []byte("grocery-test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		logger:     zap.NewNop(),
		users:      collection.NewSyncMap[string, user](),
		emails:     collection.NewSyncMap[string, string](),
		calls:      collection.NewSyncMap[string, int](),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
