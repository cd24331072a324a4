package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/viant/grocery"
	"github.com/viant/grocery/client"
	"github.com/viant/grocery/client/auth"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/schema"
)

// Service executes commands against a grocery client
type Service struct {
	client *grocery.Client
	out    io.Writer
}

// Run executes the named command
func (s *Service) Run(ctx context.Context, command string, options *Options) error {
	service := s.client.Auth
	switch command {
	case registerCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			response, err := service.Register(ctx, &schema.RegisterRequest{Username: options.Register.Username, Email: options.Register.Email, Password: options.Register.Password})
			state := auth.Outcome(response, err)
			if state.Phase == auth.Succeeded && response.Data != nil {
				state.Message = fmt.Sprintf("%v %v", state.Message, response.Data.Message)
			}
			return state
		})
	case loginCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			return auth.Outcome(service.Login(ctx, &schema.LoginRequest{Username: options.Login.Username, Password: options.Login.Password}))
		})
	case activateCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			return auth.Outcome(service.Activate(ctx, &schema.ActivateRequest{Email: options.Activate.Email, ActivationCode: options.Activate.Code}))
		})
	case forgotPasswordCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			response, err := service.ForgotPassword(ctx, &schema.ForgotPasswordRequest{Email: options.ForgotPassword.Email})
			state := auth.Outcome(response, err)
			if state.Phase == auth.Succeeded && response.Data != nil {
				state.Message = response.Data.Message
			}
			return state
		})
	case resetPasswordCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			return auth.Outcome(service.ResetPassword(ctx, &schema.ResetPasswordRequest{
				Email:             options.ResetPassword.Email,
				ResetPasswordCode: options.ResetPassword.Code,
				NewPassword:       options.ResetPassword.NewPassword,
			}))
		})
	case refreshCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			if _, err := service.RefreshToken(ctx); err != nil {
				return auth.State{Phase: auth.Failed, Message: client.Message(err), Err: err}
			}
			return auth.State{Phase: auth.Succeeded, Message: "Token refreshed"}
		})
	case meCommand:
		return s.submit(ctx, command, func(ctx context.Context) auth.State {
			response, err := service.CurrentUser(ctx)
			state := auth.Outcome(response, err)
			if state.Phase == auth.Succeeded && response.Data != nil {
				state.Message = fmt.Sprintf("%v <%v> active: %v", response.Data.Username, response.Data.Email, response.Data.Active)
			}
			return state
		})
	case logoutCommand:
		if err := service.Logout(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		fmt.Fprintln(s.out, "Signed out")
		return nil
	case statusCommand:
		s.status()
		return nil
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func (s *Service) status() {
	accessToken, ok := s.client.Store.AccessToken()
	if !ok {
		fmt.Fprintln(s.out, "Not signed in")
		return
	}
	if expiry, ok := store.Expiry(accessToken); ok {
		fmt.Fprintf(s.out, "Signed in, access token expires at %v\n", expiry.Format(time.RFC3339))
	} else {
		fmt.Fprintln(s.out, "Signed in")
	}
	if _, ok = s.client.Store.RefreshToken(); !ok {
		fmt.Fprintln(s.out, "No refresh token")
	}
}

// submit runs action and prints every state it goes through
func (s *Service) submit(ctx context.Context, command string, action func(ctx context.Context) auth.State) error {
	var failure error
	for state := range auth.Watch(ctx, action) {
		switch state.Phase {
		case auth.Submitting:
			fmt.Fprintf(s.out, "%v: %v\n", command, state.Phase)
		case auth.Succeeded:
			fmt.Fprintln(s.out, state.Message)
		case auth.Failed:
			fmt.Fprintln(s.out, state.Message)
			fields := make([]string, 0, len(state.FieldErrors))
			for field := range state.FieldErrors {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Fprintf(s.out, "  %v: %v\n", field, state.FieldErrors[field])
			}
			failure = fmt.Errorf("%v failed: %v", command, state.Message)
		}
	}
	return failure
}

// New creates a command service
func New(c *grocery.Client, out io.Writer) *Service {
	return &Service{client: c, out: out}
}
