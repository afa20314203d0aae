package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"symmetry-studio/internal/app"
	"symmetry-studio/internal/config"
	"symmetry-studio/internal/logger"
)

type envKey struct{}

// env is the state shared by all commands once the command line is parsed.
type env struct {
	cfg *config.Config
	log logger.Logger
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{}
}

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)

	cfg, err := config.LoadConfiguration(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if engine := cmd.String("engine"); engine != "" {
		cfg.Engine = engine
	}
	if err := cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("invalid command line: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return ctx, err
	}

	e.cfg = cfg
	e.log = logger.New(os.Stderr, level, cfg.Logging.JSON)
	e.log.Debug("Main", "program started", map[string]interface{}{
		"args":    os.Args,
		"version": app.AppVersion,
		"runtime": runtime.Version(),
	})
	return ctx, nil
}

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if e := envFromContext(ctx); e.log != nil {
		e.log.Error("Main", err, nil)
	}
}

func runGUI(ctx context.Context, _ *cli.Command) error {
	e := envFromContext(ctx)

	application, err := app.NewApplication(e.cfg, e.log)
	if err != nil {
		return fmt.Errorf("unable to start application: %w", err)
	}
	return application.Run()
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("render needs SOURCE and DESTINATION, got %d argument(s)", cmd.Args().Len())
	}

	written, err := app.Render(e.cfg, e.log, app.RenderOptions{
		Source:      cmd.Args().Get(0),
		Destination: cmd.Args().Get(1),
		Axis:        int(cmd.Int("axis")),
		Side:        cmd.String("side"),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, written)
	return err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	cfg := e.cfg
	if cmd.Bool("default") {
		cfg = config.Default()
	}

	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		_, err = cmd.Root().Writer.Write(data)
	} else {
		err = os.WriteFile(fname, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:            "symmetry-studio",
		Usage:           "real-time symmetric image generator",
		Version:         app.AppVersion + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		ExitErrHandler:  exitErrHandler,
		Action:          runGUI,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "log-level", Usage: "log `LEVEL` (debug, info, warn, error, none)"},
			&cli.StringFlag{Name: "engine", Usage: "mirror `ENGINE` (imaging or opencv)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Mirrors one image without opening a window",
				Action:    runRender,
				ArgsUsage: "SOURCE DESTINATION",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "axis", Value: app.AxisCenter, Usage: "axis `COLUMN` on the canvas, canvas center when negative"},
					&cli.StringFlag{Name: "side", Value: "left", Usage: "kept `SIDE` (left or right)"},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps either default or actual configuration (YAML)",
				Action:    outputConfiguration,
				ArgsUsage: "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{}), os.Interrupt, syscall.SIGTERM)

	err := newCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
