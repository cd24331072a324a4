package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/grocery"
	"github.com/viant/grocery/client/auth/mock"
	"github.com/viant/grocery/internal/logging"
	"go.uber.org/zap"
)

// Run parses args and executes the selected command
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	if parser.Active == nil {
		return fmt.Errorf("command is required")
	}
	if parser.Active.Name == serveMockCommand {
		return serveMock(options, out)
	}
	clientOptions, err := options.clientOptions(ctx)
	if err != nil {
		return err
	}
	cli, err := grocery.NewClient(ctx, clientOptions)
	if err != nil {
		return err
	}
	defer func() { _ = cli.Logger.Sync() }()
	return New(cli, out).Run(ctx, parser.Active.Name, options)
}

func serveMock(options *Options, out io.Writer) error {
	logger, err := logging.New(options.Client.LogLevel)
	if err != nil {
		return err
	}
	backend := mock.New(mock.WithLogger(logger))
	fmt.Fprintf(out, "mock API listening on %v, base path %v\n", options.ServeMock.Addr, mock.BasePath)
	logger.Info("serving mock API", zap.String("addr", options.ServeMock.Addr))
	return http.ListenAndServe(options.ServeMock.Addr, backend.Handler())
}
