package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/viant/grocery/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Refresh exchanges the stored refresh token for a new token pair and stores it.
//
// A missing refresh token clears the credentials. A rejected refresh clears them
// unless disabled with WithClearOnRefreshRejection(false); a transport failure
// keeps them. All failures are reported as ErrUnauthorized.
func (c *Client) Refresh(ctx context.Context) (*oauth2.Token, error) {
	refreshToken, ok := c.store.RefreshToken()
	if !ok {
		c.metrics.refreshed(refreshMissing)
		c.clearCredentials("no refresh token available")
		return nil, newUnauthorizedError("no refresh token available", nil)
	}
	body, err := json.Marshal(&schema.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	request := &Request{Method: http.MethodPost, Path: c.refreshPath}
	status, data, err := c.roundTrip(ctx, request, body, uuid.New().String(), nil)
	if err != nil {
		c.metrics.refreshed(refreshFailed)
		c.logger.Warn("token refresh failed", zap.Error(err))
		return nil, newUnauthorizedError("token refresh failed", err)
	}
	if status != http.StatusOK {
		return nil, c.rejectRefresh(fmt.Sprintf("refresh endpoint returned status %d", status))
	}
	var response schema.RefreshTokenResponse
	if err = json.Unmarshal(data, &response); err != nil {
		return nil, c.rejectRefresh(fmt.Sprintf("failed to decode refresh response: %v", err))
	}
	if !response.OK() || response.Data == nil || response.Data.AccessToken == "" {
		return nil, c.rejectRefresh(fmt.Sprintf("refresh rejected with status %d: %s", response.Status, response.Message))
	}
	token := &oauth2.Token{TokenType: "Bearer", AccessToken: response.Data.AccessToken, RefreshToken: refreshToken}
	if err = c.store.SetAccessToken(token.AccessToken); err != nil {
		c.logger.Warn("failed to store access token", zap.Error(err))
	}
	if rotated := response.Data.RefreshToken; rotated != "" && rotated != refreshToken {
		token.RefreshToken = rotated
		if err = c.store.SetRefreshToken(rotated); err != nil {
			c.logger.Warn("failed to store refresh token", zap.Error(err))
		}
	}
	c.metrics.refreshed(refreshSucceeded)
	c.logger.Info("access token refreshed")
	return token, nil
}

func (c *Client) rejectRefresh(reason string) error {
	c.metrics.refreshed(refreshRejected)
	c.logger.Warn("token refresh rejected", zap.String("reason", reason))
	if c.clearOnRefreshRejection {
		c.clearCredentials(reason)
	}
	return newUnauthorizedError(reason, nil)
}

func (c *Client) clearCredentials(reason string) {
	c.logger.Info("clearing credentials", zap.String("reason", reason))
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear credentials", zap.Error(err))
	}
}
