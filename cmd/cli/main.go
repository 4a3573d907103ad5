package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/paas-statements/pkg/runtime/bootstrap"
	"github.com/de-tools/paas-statements/pkg/runtime/terminal"
	"github.com/de-tools/paas-statements/pkg/services/statement"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cli := terminal.NewCLI(terminal.Options{
		Factory: newGenerator,
		Output:  os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGenerator(ctx context.Context, configPath string) (statement.Generator, func() error, error) {
	cfg, err := bootstrap.ResolveConfig(ctx, configPath)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return app.Generator, app.Close, nil
}
