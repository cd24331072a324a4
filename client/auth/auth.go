package auth

import (
	"context"
	"net/http"

	"github.com/viant/grocery/client"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/schema"
	"go.uber.org/zap"
)

// Service calls the authentication endpoints
type Service struct {
	client *client.Client
	store  store.Store
	logger *zap.Logger
}

// Register creates an inactive account, an activation code is sent to the email
func (s *Service) Register(ctx context.Context, request *schema.RegisterRequest) (*schema.RegisterResponse, error) {
	return client.Send[schema.RegisterData](ctx, s.client, client.NewRequest(http.MethodPost, schema.PathRegister, request, nil))
}

// Login authenticates the user and stores the issued token pair
func (s *Service) Login(ctx context.Context, request *schema.LoginRequest) (*schema.LoginResponse, error) {
	response, err := client.Send[schema.LoginData](ctx, s.client, client.NewRequest(http.MethodPost, schema.PathLogin, request, nil))
	if err != nil {
		return nil, err
	}
	if !response.OK() || response.Data == nil {
		return response, nil
	}
	if err = s.store.SetAccessToken(response.Data.AccessToken); err != nil {
		s.logger.Warn("failed to store access token", zap.Error(err))
	}
	if err = s.store.SetRefreshToken(response.Data.RefreshToken); err != nil {
		s.logger.Warn("failed to store refresh token", zap.Error(err))
	}
	s.logger.Info("user signed in", zap.String("username", response.Data.Username))
	return response, nil
}

// Activate activates account with the emailed code
func (s *Service) Activate(ctx context.Context, request *schema.ActivateRequest) (*schema.EmptyResponse, error) {
	return client.Send[schema.Empty](ctx, s.client, client.NewRequest(http.MethodPatch, schema.PathActivate, request, nil))
}

// RefreshToken exchanges the stored refresh token for a new token pair
func (s *Service) RefreshToken(ctx context.Context) (*schema.RefreshTokenData, error) {
	token, err := s.client.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &schema.RefreshTokenData{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

// ForgotPassword requests a reset code for the email
func (s *Service) ForgotPassword(ctx context.Context, request *schema.ForgotPasswordRequest) (*schema.ForgotPasswordResponse, error) {
	return client.Send[schema.ForgotPasswordData](ctx, s.client, client.NewRequest(http.MethodPost, schema.PathForgotPassword, request, nil))
}

// ResetPassword sets a new password using the emailed reset code
func (s *Service) ResetPassword(ctx context.Context, request *schema.ResetPasswordRequest) (*schema.EmptyResponse, error) {
	return client.Send[schema.Empty](ctx, s.client, client.NewRequest(http.MethodPatch, schema.PathResetPassword, request, nil))
}

// CurrentUser returns the signed-in user
func (s *Service) CurrentUser(ctx context.Context) (*schema.UserResponse, error) {
	return client.Send[schema.User](ctx, s.client, client.NewRequest(http.MethodGet, schema.PathCurrentUser, nil, nil))
}

// Logout clears stored credentials
func (s *Service) Logout() error {
	return s.store.Clear()
}

// IsAuthenticated reports whether an access token is stored
func (s *Service) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// New creates a service sharing the client credential store
func New(c *client.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: c, store: c.Store(), logger: logger}
}
