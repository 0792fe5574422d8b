package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/entity"
)

// Logger builds the CLI logger honoring the debug setting.
func Logger(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// Create constructs a governed entity from params (filling declared
// defaults from the config file) and persists it.
func Create(ctx context.Context, cfg Config, params entity.Params) (*entity.InfraConfig, error) {
	if params.Tier == "" {
		params.Tier = cfg.Defaults.Tier
	}
	if params.NumFilesPerMPCContainer == 0 {
		params.NumFilesPerMPCContainer = cfg.Defaults.NumFilesPerMPCContainer
	}
	if params.Concurrency == 0 {
		params.Concurrency = cfg.Defaults.Concurrency
	}

	ent, err := entity.New(params, entity.WithLogger(Logger(cfg)))
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, ent); err != nil {
		return nil, fmt.Errorf("persisting instance: %w", err)
	}
	return ent, nil
}

// SetField loads an entity, applies one governed write, and persists
// the result. The raw value is parsed as an integer when possible,
// boolean-looking values stay strings (no governed field is boolean).
func SetField(ctx context.Context, cfg Config, instanceID, field, raw string) (*entity.InfraConfig, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	ent, err := store.Load(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	ent.Configure(entity.WithLogger(Logger(cfg)))

	if err := ent.Set(field, parseValue(raw)); err != nil {
		return nil, err
	}

	if err := store.Save(ctx, ent); err != nil {
		return nil, fmt.Errorf("persisting instance: %w", err)
	}
	return ent, nil
}

// Show loads an entity and renders its summary.
func Show(ctx context.Context, cfg Config, instanceID string) (string, error) {
	ent, err := load(ctx, cfg, instanceID)
	if err != nil {
		return "", err
	}
	return Render(Summary(ent)), nil
}

// History loads an entity and renders its status history.
func History(ctx context.Context, cfg Config, instanceID string) (string, error) {
	ent, err := load(ctx, cfg, instanceID)
	if err != nil {
		return "", err
	}
	return Render(HistoryTable(ent)), nil
}

// List returns the stored instance IDs.
func List(ctx context.Context, cfg Config) ([]string, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

func load(ctx context.Context, cfg Config, instanceID string) (*entity.InfraConfig, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx, instanceID)
}

func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	return trimmed
}
