package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/diagram"
	"github.com/myrjola/snapsolve/internal/envstruct"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/logging"
	"github.com/myrjola/snapsolve/internal/pprofserver"
	"github.com/myrjola/snapsolve/internal/present"
)

type application struct {
	logger    *slog.Logger
	engine    answer.Engine
	presenter *present.Presenter
	htmx      *htmx.HTMX
}

type config struct {
	Addr         string `env:"SNAPSOLVE_ADDR" envDefault:"localhost:4000"`
	PprofPort    string `env:"SNAPSOLVE_PPROF_PORT" envDefault:":6060"`
	Engine       string `env:"SNAPSOLVE_ENGINE" envDefault:"openai"`
	OpenAIAPIKey string `env:"SNAPSOLVE_OPENAI_API_KEY" envDefault:""`
	GeminiAPIKey string `env:"SNAPSOLVE_GEMINI_API_KEY" envDefault:""`
	Model        string `env:"SNAPSOLVE_MODEL" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	engine, err := answer.NewEngine(cfg.Engine, answer.Options{
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
		Model:        cfg.Model,
	})
	if err != nil {
		return errors.Wrap(err, "initialise answering engine")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "answering engine ready", slog.String("engine", engine.Name()))

	app := application{
		logger:    logger,
		engine:    engine,
		presenter: present.NewPresenter(diagram.NewSanitizer(), logger),
		htmx:      htmx.New(),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}

	return nil
}

func main() {
	// A missing .env file is fine, the environment can be set by other means.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("load .env", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   true,
		ReplaceAttr: nil,
	})))

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error("server error", errors.SlogError(err))
		os.Exit(1)
	}
}
