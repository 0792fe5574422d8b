package cli

import (
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/ports"
)

// OpenStore selects the entity store: Redis when a URL is configured,
// the filesystem otherwise.
func OpenStore(cfg Config) (ports.EntityStore, error) {
	if cfg.RedisURL != "" {
		opts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		return redis.NewFromClient(backend.NewClient(opts)), nil
	}
	return file.New(cfg.StorePath), nil
}
