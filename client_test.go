package grocery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/grocery/client"
	"github.com/viant/grocery/client/auth/mock"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/schema"
)

func TestLoadClientOptions(t *testing.T) {
	location := filepath.Join(t.TempDir(), "client.yaml")
	content := `baseURL: http://localhost:8080/api/v1
timeoutSeconds: 5
logLevel: debug
store:
  kind: file
  location: /tmp/grocery/tokens.json
`
	require.NoError(t, os.WriteFile(location, []byte(content), 0600))

	options, err := LoadClientOptions(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", options.BaseURL)
	assert.Equal(t, 5*time.Second, options.Timeout())
	assert.Equal(t, "debug", options.LogLevel)
	assert.Equal(t, StoreFile, options.Store.Kind)
	assert.Equal(t, "/tmp/grocery/tokens.json", options.Store.Location)
	assert.Equal(t, store.DefaultKey, options.Store.EncryptionKey)

	_, err = LoadClientOptions(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClientOptions_Init(t *testing.T) {
	options := &ClientOptions{}
	options.Init()
	assert.Equal(t, client.DefaultBaseURL, options.BaseURL)
	assert.Equal(t, client.DefaultTimeout, options.Timeout())
	assert.Equal(t, StoreMemory, options.Store.Kind)
	assert.Equal(t, "info", options.LogLevel)
}

func TestNewClient_Store(t *testing.T) {
	var testCases = []struct {
		description string
		options     StoreOptions
		expectErr   bool
	}{
		{description: "memory", options: StoreOptions{Kind: StoreMemory}},
		{description: "file", options: StoreOptions{Kind: StoreFile, Location: filepath.Join(t.TempDir(), "tokens.json")}},
		{description: "secret", options: StoreOptions{Kind: StoreSecret, Location: t.TempDir()}},
		{description: "file without location", options: StoreOptions{Kind: StoreFile}, expectErr: true},
		{description: "unsupported", options: StoreOptions{Kind: "keychain"}, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cli, err := NewClient(context.Background(), &ClientOptions{Store: testCase.options, LogLevel: "error"})
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cli.Store.SetAccessToken("A1"))
			assert.True(t, cli.Auth.IsAuthenticated())
			require.NoError(t, cli.Auth.Logout())
			assert.False(t, cli.Auth.IsAuthenticated())
		})
	}
}

func TestNewClient_Session(t *testing.T) {
	server := mock.NewHTTPTestServer()
	defer server.Close()
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	location := filepath.Join(t.TempDir(), "tokens.json")
	options := &ClientOptions{
		BaseURL:           server.URL,
		LogLevel:          "error",
		RequestsPerSecond: 100,
		Store:             StoreOptions{Kind: StoreFile, Location: location},
		Registerer:        registry,
	}
	cli, err := NewClient(ctx, options)
	require.NoError(t, err)

	registered, err := cli.Auth.Register(ctx, &schema.RegisterRequest{Username: "dave", Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, registered.OK())
	code, ok := server.ActivationCode("dave@example.com")
	require.True(t, ok)
	activated, err := cli.Auth.Activate(ctx, &schema.ActivateRequest{Email: "dave@example.com", ActivationCode: code})
	require.NoError(t, err)
	require.True(t, activated.OK())
	loggedIn, err := cli.Auth.Login(ctx, &schema.LoginRequest{Username: "dave", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, loggedIn.OK())

	reopened, err := NewClient(ctx, &ClientOptions{BaseURL: server.URL, LogLevel: "error", Store: StoreOptions{Kind: StoreFile, Location: location}})
	require.NoError(t, err)
	assert.True(t, reopened.Auth.IsAuthenticated())
	me, err := reopened.Auth.CurrentUser(ctx)
	require.NoError(t, err)
	require.True(t, me.OK())
	assert.Equal(t, "dave", me.Data.Username)

	assert.Equal(t, 3.0, testutil.ToFloat64(cli.Metrics.Requests.WithLabelValues("ok")))
	count, err := testutil.GatherAndCount(registry, "grocery_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
