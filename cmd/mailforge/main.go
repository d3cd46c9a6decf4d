package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/mailforge/pkg/config"
	"github.com/dmitrymomot/mailforge/pkg/environment"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/render"
	"github.com/dmitrymomot/mailforge/pkg/requestid"
)

// appConfig holds process-wide settings.
type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"mailforge"`
}

const usage = `Usage: mailforge <command> [options]

Commands:
  compile   compile a document to intermediate markup
  preview   compile a document to HTML and plaintext
  publish   compile a document into a snapshot
  render    render a snapshot for one recipient
  send      render a snapshot and deliver it
  serve     run the HTTP preview API
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

// app carries the process I/O. vars replaces the process environment when
// set.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	vars   map[string]string

	logger   *slog.Logger
	env      environment.Environment
	renderer *render.Renderer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"compile": runCompile,
	"preview": runPreview,
	"publish": runPublish,
	"render":  runRender,
	"send":    runSend,
	"serve":   runServe,
}

// errUsage marks a command-line mistake; the exit code is 2.
var errUsage = errors.New("usage error")

func run(ctx context.Context, args []string, a *app) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := a.init(); err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	if err := cmd(ctx, a, args[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) init() error {
	appCfg, err := loadConfig[appConfig](a)
	if err != nil {
		return err
	}
	a.env = environment.Parse(appCfg.Env)
	a.logger = logger.New(
		logger.WithEnvironment(a.env, appCfg.ServiceName),
		logger.WithOutput(a.stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)

	renderCfg, err := loadConfig[render.Config](a)
	if err != nil {
		return err
	}
	a.renderer = render.New(renderCfg, render.WithLogger(a.logger))
	return nil
}

// loadConfig reads T from a.vars when set, otherwise from the process
// environment and an optional .env file.
func loadConfig[T any](a *app) (T, error) {
	if a.vars != nil {
		return config.Parse[T](config.WithVars(a.vars))
	}
	var v T
	err := config.Load(&v)
	return v, err
}
