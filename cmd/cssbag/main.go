package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cssbag/node"
)

// Ignore urfave/cli default error handling - regular errors returned from
// subcommands are reported once, on exit.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if log := logFromContext(ctx); log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

type ctxKey struct{}

func logFromContext(ctx context.Context) *zap.Logger {
	log, _ := ctx.Value(ctxKey{}).(*zap.Logger)
	return log
}

// initializeAppContext builds the console logger after flags are parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.TimeKey = zapcore.OmitKey

	level := zapcore.InfoLevel
	if cmd.Bool("debug") {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	log := zap.New(core)

	log.Debug("Program started", zap.Strings("args", os.Args))
	return context.WithValue(ctx, ctxKey{}, log), nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	if log := logFromContext(ctx); log != nil {
		_ = log.Sync()
	}
	return nil
}

func readInput(cmd *cli.Command) ([]byte, error) {
	name := cmd.Args().First()
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// runResolve reads a node tree, resolves every style and prints the styled
// tree as JSON.
func runResolve(ctx context.Context, cmd *cli.Command) error {
	log := logFromContext(ctx)

	data, err := readInput(cmd)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	tree, err := node.Decode(data)
	if err != nil {
		return err
	}
	if err := tree.Validate(); err != nil {
		return err
	}

	styled, err := node.NewResolver(log).Resolve(tree)
	if err != nil {
		if !cmd.Bool("lenient") {
			return err
		}
		log.Warn("Some properties could not be resolved", zap.Error(err))
	}

	out := os.Stdout
	if name := cmd.String("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	if !cmd.Bool("compact") {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(styled)
}

// runCheck validates a node tree and resolves its styles without producing
// output; diagnostics are the point.
func runCheck(ctx context.Context, cmd *cli.Command) error {
	log := logFromContext(ctx)

	data, err := readInput(cmd)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	tree, err := node.Decode(data)
	if err != nil {
		return err
	}
	if err := tree.Validate(); err != nil {
		return err
	}
	if _, err := node.NewResolver(log).Resolve(tree); err != nil {
		return err
	}
	log.Info("Input is valid")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "cssbag",
		Usage:           "resolves CSS-like style declarations into canonical style values",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log permissive fixups and skipped properties"},
		},
		Commands: []*cli.Command{
			{
				Name:         "resolve",
				Usage:        "Resolves the styles of a node tree and prints the styled tree as JSON",
				OnUsageError: usageErrorHandler,
				Action:       runResolve,
				ArgsUsage:    "[SOURCE]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write result to `FILE` instead of STDOUT"},
					&cli.BoolFlag{Name: "compact", Usage: "emit compact JSON"},
					&cli.BoolFlag{Name: "lenient", Usage: "emit the tree even when some properties fail, reporting them as warnings"},
				},
			},
			{
				Name:         "check",
				Usage:        "Validates a node tree and its styles without producing output",
				OnUsageError: usageErrorHandler,
				Action:       runCheck,
				ArgsUsage:    "[SOURCE]",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
