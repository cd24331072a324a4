package cli

import (
	"context"

	"github.com/viant/grocery"
)

const (
	registerCommand       = "register"
	loginCommand          = "login"
	activateCommand       = "activate"
	forgotPasswordCommand = "forgot-password"
	resetPasswordCommand  = "reset-password"
	refreshCommand        = "refresh"
	logoutCommand         = "logout"
	statusCommand         = "status"
	meCommand             = "me"
	serveMockCommand      = "serve-mock"
)

type (
	// Options defines global options and commands
	Options struct {
		Config string                `short:"c" long:"config" env:"GROCERY_CONFIG" description:"client options YAML URL"`
		Client grocery.ClientOptions `group:"client options"`

		Register       RegisterOptions       `command:"register" description:"create an inactive account"`
		Login          LoginOptions          `command:"login" description:"sign in and store the token pair"`
		Activate       ActivateOptions       `command:"activate" description:"activate account with the emailed code"`
		ForgotPassword ForgotPasswordOptions `command:"forgot-password" description:"request a reset password code"`
		ResetPassword  ResetPasswordOptions  `command:"reset-password" description:"set a new password with the emailed code"`
		Refresh        struct{}              `command:"refresh" description:"exchange the refresh token for a new token pair"`
		Logout         struct{}              `command:"logout" description:"clear stored credentials"`
		Status         struct{}              `command:"status" description:"show stored credentials state"`
		Me             struct{}              `command:"me" description:"show the signed in user"`
		ServeMock      ServeMockOptions      `command:"serve-mock" description:"run an in-process API for local testing"`
	}

	RegisterOptions struct {
		Username string `short:"n" long:"username" description:"username" required:"true"`
		Email    string `short:"e" long:"email" description:"email" required:"true"`
		Password string `short:"p" long:"password" env:"GROCERY_PASSWORD" description:"password" required:"true"`
	}

	LoginOptions struct {
		Username string `short:"n" long:"username" description:"username" required:"true"`
		Password string `short:"p" long:"password" env:"GROCERY_PASSWORD" description:"password" required:"true"`
	}

	ActivateOptions struct {
		Email string `short:"e" long:"email" description:"email" required:"true"`
		Code  string `short:"k" long:"code" description:"activation code" required:"true"`
	}

	ForgotPasswordOptions struct {
		Email string `short:"e" long:"email" description:"email" required:"true"`
	}

	ResetPasswordOptions struct {
		Email       string `short:"e" long:"email" description:"email" required:"true"`
		Code        string `short:"k" long:"code" description:"reset password code" required:"true"`
		NewPassword string `short:"p" long:"password" env:"GROCERY_NEW_PASSWORD" description:"new password" required:"true"`
	}

	ServeMockOptions struct {
		Addr string `short:"a" long:"addr" default:":8080" description:"listen address"`
	}
)

// clientOptions returns flag options, layered over the config file when one is given
func (o *Options) clientOptions(ctx context.Context) (*grocery.ClientOptions, error) {
	flagged := o.Client
	if o.Config == "" {
		return &flagged, nil
	}
	ret, err := grocery.LoadClientOptions(ctx, o.Config)
	if err != nil {
		return nil, err
	}
	if flagged.BaseURL != "" {
		ret.BaseURL = flagged.BaseURL
	}
	if flagged.TimeoutSeconds > 0 {
		ret.TimeoutSeconds = flagged.TimeoutSeconds
	}
	if flagged.LogLevel != "" {
		ret.LogLevel = flagged.LogLevel
	}
	if flagged.RequestsPerSecond > 0 {
		ret.RequestsPerSecond = flagged.RequestsPerSecond
	}
	if flagged.Store.Kind != "" {
		ret.Store.Kind = flagged.Store.Kind
	}
	if flagged.Store.Location != "" {
		ret.Store.Location = flagged.Store.Location
	}
	if flagged.Store.EncryptionKey != "" {
		ret.Store.EncryptionKey = flagged.Store.EncryptionKey
	}
	return ret, nil
}
