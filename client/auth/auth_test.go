package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/grocery/client"
	"github.com/viant/grocery/client/auth"
	"github.com/viant/grocery/client/auth/mock"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/schema"
)

func TestService_Login(t *testing.T) {
	var received schema.LoginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&received)
		_, _ = w.Write([]byte(`{"status":200,"message":"Login successful","data":{"username":"alice","accessToken":"A1","refreshToken":"R1"},"timestamp":"2024-11-17T15:36:44"}`))
	}))
	defer server.Close()
	credentials := store.NewMemoryStore()
	service := auth.New(client.New(server.URL+"/api/v1", client.WithStore(credentials)), nil)

	response, err := service.Login(context.Background(), &schema.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, response.OK())
	assert.Equal(t, "alice", response.Data.Username)
	assert.Equal(t, schema.LoginRequest{Username: "alice", Password: "secret123"}, received)

	accessToken, _ := credentials.AccessToken()
	refreshToken, _ := credentials.RefreshToken()
	assert.Equal(t, "A1", accessToken)
	assert.Equal(t, "R1", refreshToken)
	assert.True(t, service.IsAuthenticated())
}

func TestService_LoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"message":"Invalid username or password","timestamp":"t","errors":[{"field":"password","errorMessage":"Wrong password","rejectedValue":""}]}`))
	}))
	defer server.Close()
	credentials := store.NewMemoryStore()
	service := auth.New(client.New(server.URL, client.WithStore(credentials)), nil)

	response, err := service.Login(context.Background(), &schema.LoginRequest{Username: "alice", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, response.OK())
	assert.Equal(t, "Invalid username or password", response.Message)
	assert.False(t, credentials.IsAuthenticated())

	state := auth.Outcome(response, err)
	assert.Equal(t, auth.Failed, state.Phase)
	assert.Equal(t, map[string]string{"password": "Wrong password"}, state.FieldErrors)
}

func TestService_Lifecycle(t *testing.T) {
	backend := mock.NewHTTPTestServer()
	defer backend.Close()
	ctx := context.Background()
	credentials := store.NewMemoryStore()
	service := auth.New(client.New(backend.URL, client.WithStore(credentials)), nil)

	registered, err := service.Register(ctx, &schema.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, registered.OK(), registered.Message)
	assert.Equal(t, "alice@example.com", registered.Data.Email)
	assert.NotEmpty(t, registered.Data.UserID)

	loggedIn, err := service.Login(ctx, &schema.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, loggedIn.Status, "inactive account")
	assert.False(t, service.IsAuthenticated())

	code, ok := backend.ActivationCode("alice@example.com")
	require.True(t, ok)
	activated, err := service.Activate(ctx, &schema.ActivateRequest{Email: "alice@example.com", ActivationCode: code})
	require.NoError(t, err)
	assert.True(t, activated.OK())

	loggedIn, err = service.Login(ctx, &schema.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, loggedIn.OK())
	firstAccessToken, _ := credentials.AccessToken()
	assert.Equal(t, loggedIn.Data.AccessToken, firstAccessToken)

	me, err := service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Data.Username)
	assert.True(t, me.Data.Active)

	backend.ExpireAccessTokens()
	me, err = service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Data.Username)
	assert.Equal(t, 1, backend.Calls(schema.PathRefreshToken))
	assert.Equal(t, 3, backend.Calls(schema.PathCurrentUser))
	refreshedAccessToken, _ := credentials.AccessToken()
	assert.NotEqual(t, firstAccessToken, refreshedAccessToken)

	refreshed, err := service.RefreshToken(ctx)
	require.NoError(t, err)
	storedAccessToken, _ := credentials.AccessToken()
	storedRefreshToken, _ := credentials.RefreshToken()
	assert.Equal(t, refreshed.AccessToken, storedAccessToken)
	assert.Equal(t, refreshed.RefreshToken, storedRefreshToken)

	require.NoError(t, service.Logout())
	assert.False(t, service.IsAuthenticated())
	_, err = service.CurrentUser(ctx)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.Equal(t, 2, backend.Calls(schema.PathRefreshToken), "no refresh call without a refresh token")
}

func TestService_ResetPassword(t *testing.T) {
	backend := mock.NewHTTPTestServer()
	defer backend.Close()
	ctx := context.Background()
	service := auth.New(client.New(backend.URL), nil)

	_, err := service.Register(ctx, &schema.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)
	code, _ := backend.ActivationCode("bob@example.com")
	_, err = service.Activate(ctx, &schema.ActivateRequest{Email: "bob@example.com", ActivationCode: code})
	require.NoError(t, err)

	forgot, err := service.ForgotPassword(ctx, &schema.ForgotPasswordRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	require.True(t, forgot.OK())
	assert.NotEmpty(t, forgot.Data.Message)

	reset, err := service.ResetPassword(ctx, &schema.ResetPasswordRequest{Email: "bob@example.com", ResetPasswordCode: "wrong", NewPassword: "newSecret1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, reset.Status)
	assert.Contains(t, reset.FieldErrors(), "resetPasswordCode")

	resetCode, ok := backend.ResetCode("bob@example.com")
	require.True(t, ok)
	reset, err = service.ResetPassword(ctx, &schema.ResetPasswordRequest{Email: "bob@example.com", ResetPasswordCode: resetCode, NewPassword: "newSecret1"})
	require.NoError(t, err)
	assert.True(t, reset.OK())

	loggedIn, err := service.Login(ctx, &schema.LoginRequest{Username: "bob", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, loggedIn.OK())
	loggedIn, err = service.Login(ctx, &schema.LoginRequest{Username: "bob", Password: "newSecret1"})
	require.NoError(t, err)
	assert.True(t, loggedIn.OK())
}
