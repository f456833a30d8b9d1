package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/psychics/internal/concepts/ability"
	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	"github.com/KirkDiggler/psychics/internal/errors"
	"github.com/KirkDiggler/psychics/internal/manager"
	"github.com/KirkDiggler/psychics/internal/pkg/clock"
	"github.com/KirkDiggler/psychics/internal/pkg/idgen"
	"github.com/KirkDiggler/psychics/internal/redis"
	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
)

const (
	sourceFile  = "file"
	sourceRedis = "redis"
	pluginName  = "Psychics"
)

var (
	envFile    string
	sourceKind string
	conceptDir string
	redisAddr  string
	maxHealth  float64
	logLevel   string
)

// flag name -> environment variable consulted when the flag is not set
var envFallbacks = map[string]string{
	"source":     "PSYCHICS_SOURCE",
	"dir":        "PSYCHICS_DIR",
	"redis-addr": "PSYCHICS_REDIS_ADDR",
	"max-health": "PSYCHICS_MAX_HEALTH",
	"log-level":  "PSYCHICS_LOG_LEVEL",
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	flags := cmd.Root().PersistentFlags()
	for name, env := range envFallbacks {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	return nil
}

func newSource() (conceptconfig.Repository, func(), error) {
	switch sourceKind {
	case sourceFile:
		repo, err := conceptconfig.NewFile(&conceptconfig.FileConfig{Dir: conceptDir})
		return repo, func() {}, err
	case sourceRedis:
		return newRedisSource()
	default:
		return nil, nil, fmt.Errorf("unknown source %q, want %s or %s", sourceKind, sourceFile, sourceRedis)
	}
}

func newRedisSource() (conceptconfig.Repository, func(), error) {
	client, err := redis.NewClient(redisAddr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	cleanup := func() { _ = client.Close() }

	repo, err := conceptconfig.NewRedis(&conceptconfig.RedisConfig{Client: client})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

func newManager(source conceptconfig.Repository) (*manager.Manager, error) {
	return manager.New(&manager.Config{
		Plugin:      manager.NewPlugin(pluginName),
		Source:      source,
		Abilities:   ability.NewRegistry(),
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewUUID("psychic"),
		Clock:       clock.New(),
		Settings:    psychic.Settings{MaxHealth: maxHealth},
	})
}

// loadConcept loads the configured source and returns one concept
func loadConcept(ctx context.Context, name string) (*psychic.Concept, error) {
	source, cleanup, err := newSource()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	mgr, err := newManager(source)
	if err != nil {
		return nil, err
	}

	if _, err := mgr.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load concepts: %w", err)
	}

	return mgr.GetConcept(name)
}
