package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

func (b *Backend) createJWT(username, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"typ": tokenType,
		"gen": b.generation.Load(),
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.Secret)
}

func (b *Backend) issueTokens(username string) (accessToken, refreshToken string, err error) {
	if accessToken, err = b.createJWT(username, accessTokenType, b.AccessTTL); err != nil {
		return "", "", err
	}
	if refreshToken, err = b.createJWT(username, refreshTokenType, b.RefreshTTL); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// verify returns the subject of a valid token of the given type
func (b *Backend) verify(tokenString, tokenType string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return b.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return "", fmt.Errorf("expected %v token, got %v", tokenType, typ)
	}
	if tokenType == accessTokenType {
		gen, _ := claims["gen"].(float64)
		if int64(gen) != b.generation.Load() {
			return "", errors.New("token expired")
		}
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token subject missing")
	}
	return subject, nil
}
