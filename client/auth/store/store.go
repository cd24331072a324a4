package store

// Keys under which the tokens are persisted
const (
	AccessTokenKey  = "com.grocerystore.accessToken"
	RefreshTokenKey = "com.grocerystore.refreshToken"
)

// Store persists the access and refresh token.
// Each setter is atomic per key, an empty value deletes the key.
type Store interface {
	// AccessToken returns the stored access token, false when absent or unreadable
	AccessToken() (string, bool)
	// RefreshToken returns the stored refresh token, false when absent or unreadable
	RefreshToken() (string, bool)
	// SetAccessToken stores the access token, an empty token deletes it
	SetAccessToken(token string) error
	// SetRefreshToken stores the refresh token, an empty token deletes it
	SetRefreshToken(token string) error
	// IsAuthenticated reports whether an access token is present
	IsAuthenticated() bool
	// Clear deletes both tokens
	Clear() error
}

// keyValue is the primitive storage a Store is built on
type keyValue interface {
	get(key string) (string, bool)
	put(key, value string) error
	remove(keys ...string) error
}

type tokens struct {
	kv keyValue
}

func (t *tokens) AccessToken() (string, bool) {
	return t.kv.get(AccessTokenKey)
}

func (t *tokens) RefreshToken() (string, bool) {
	return t.kv.get(RefreshTokenKey)
}

func (t *tokens) SetAccessToken(token string) error {
	return t.set(AccessTokenKey, token)
}

func (t *tokens) SetRefreshToken(token string) error {
	return t.set(RefreshTokenKey, token)
}

func (t *tokens) IsAuthenticated() bool {
	_, ok := t.AccessToken()
	return ok
}

func (t *tokens) Clear() error {
	return t.kv.remove(AccessTokenKey, RefreshTokenKey)
}

func (t *tokens) set(key, value string) error {
	if value == "" {
		return t.kv.remove(key)
	}
	return t.kv.put(key, value)
}
