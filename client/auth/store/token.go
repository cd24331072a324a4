package store

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Token returns the current credentials as an oauth2 bearer token or nil when no access token is stored
func Token(s Store) *oauth2.Token {
	accessToken, ok := s.AccessToken()
	if !ok {
		return nil
	}
	refreshToken, _ := s.RefreshToken()
	ret := &oauth2.Token{TokenType: "Bearer", AccessToken: accessToken, RefreshToken: refreshToken}
	if expiry, ok := Expiry(accessToken); ok {
		ret.Expiry = expiry
	}
	return ret
}

// Expiry returns the exp claim of a JWT access token, the signature is not verified
func Expiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
