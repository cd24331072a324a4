package grocery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/grocery/client"
	"github.com/viant/grocery/client/auth"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Store kinds
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSecret = "secret"
)

type (
	// ClientOptions defines options for configuring a grocery API client.
	ClientOptions struct {
		BaseURL           string       `yaml:"baseURL,omitempty" json:"baseURL,omitempty" short:"u" long:"url" env:"GROCERY_URL" description:"grocery api base url"`
		TimeoutSeconds    int          `yaml:"timeoutSeconds,omitempty" json:"timeoutSeconds,omitempty" short:"t" long:"timeout" env:"GROCERY_TIMEOUT" description:"request timeout in seconds"`
		LogLevel          string       `yaml:"logLevel,omitempty" json:"logLevel,omitempty" long:"log-level" env:"GROCERY_LOG_LEVEL" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
		RequestsPerSecond float64      `yaml:"requestsPerSecond,omitempty" json:"requestsPerSecond,omitempty" long:"rps" env:"GROCERY_RPS" description:"max requests per second, 0 disables limiting"`
		Store             StoreOptions `yaml:"store,omitempty" json:"store,omitempty" group:"store" namespace:"store" env-namespace:"GROCERY_STORE"`

		// Registerer receives client metrics; nil keeps them unregistered.
		Registerer prometheus.Registerer `yaml:"-" json:"-" no-flag:"true"`
	}

	// StoreOptions defines where credentials are kept.
	StoreOptions struct {
		Kind          string `yaml:"kind,omitempty" json:"kind,omitempty" long:"kind" env:"KIND" description:"credential store kind" choice:"memory" choice:"file" choice:"secret"`
		Location      string `yaml:"location,omitempty" json:"location,omitempty" long:"location" env:"LOCATION" description:"file path or secret base URL"`
		EncryptionKey string `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty" long:"key" env:"KEY" description:"secret encryption key"`
	}

	// Client groups the per-process client components.
	Client struct {
		Options *ClientOptions
		Logger  *zap.Logger
		Store   store.Store
		Metrics *client.Metrics
		Client  *client.Client
		Auth    *auth.Service
	}
)

// Init applies defaults.
func (o *ClientOptions) Init() {
	if o.BaseURL == "" {
		o.BaseURL = client.DefaultBaseURL
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = int(client.DefaultTimeout / time.Second)
	}
	if o.LogLevel == "" {
		o.LogLevel = logging.DefaultLevel
	}
	if o.Store.Kind == "" {
		o.Store.Kind = StoreMemory
	}
	if o.Store.EncryptionKey == "" {
		o.Store.EncryptionKey = store.DefaultKey
	}
}

// Timeout returns the request timeout.
func (o *ClientOptions) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// LoadClientOptions reads YAML client options from any afs supported URL.
func LoadClientOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load client options %v: %w", URL, err)
	}
	ret := &ClientOptions{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse client options %v: %w", URL, err)
	}
	ret.Init()
	return ret, nil
}

func (o *ClientOptions) newStore(logger *zap.Logger) (store.Store, error) {
	opts := []store.Option{store.WithLogger(logger), store.WithKey(o.Store.EncryptionKey)}
	switch strings.ToLower(o.Store.Kind) {
	case StoreMemory:
		return store.NewMemoryStore(), nil
	case StoreFile:
		if o.Store.Location == "" {
			return nil, fmt.Errorf("location is required for %v store", StoreFile)
		}
		return store.NewFileStore(o.Store.Location, opts...), nil
	case StoreSecret:
		if o.Store.Location == "" {
			return nil, fmt.Errorf("location is required for %v store", StoreSecret)
		}
		return store.NewSecretStore(o.Store.Location, opts...), nil
	}
	return nil, fmt.Errorf("unsupported store kind: %v", o.Store.Kind)
}

// NewClient creates a grocery client configured via ClientOptions; extra options are applied last.
func NewClient(ctx context.Context, options *ClientOptions, extra ...client.Option) (*Client, error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.Init()
	logger, err := logging.New(options.LogLevel)
	if err != nil {
		return nil, err
	}
	credentials, err := options.newStore(logger)
	if err != nil {
		return nil, err
	}
	metrics, err := client.NewMetrics(options.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	opts := []client.Option{
		client.WithStore(credentials),
		client.WithLogger(logger),
		client.WithTimeout(options.Timeout()),
		client.WithMetrics(metrics),
	}
	if options.RequestsPerSecond > 0 {
		burst := int(options.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		opts = append(opts, client.WithRateLimiter(rate.NewLimiter(rate.Limit(options.RequestsPerSecond), burst)))
	}
	opts = append(opts, extra...)
	executor := client.New(options.BaseURL, opts...)
	logger.Debug("grocery client created", zap.String("baseURL", executor.BaseURL()), zap.String("store", options.Store.Kind))
	return &Client{
		Options: options,
		Logger:  logger,
		Store:   executor.Store(),
		Metrics: metrics,
		Client:  executor,
		Auth:    auth.New(executor, logger),
	}, nil
}
