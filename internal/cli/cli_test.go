package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

func testConfig(t *testing.T) cli.Config {
	t.Helper()
	return cli.Config{StorePath: t.TempDir()}
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "espalier.yaml")
	content := "store_path: /from/file\ndefaults:\n  tier: canary\n  mpc_compute_concurrency: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("ESPALIER_STORE_PATH", "/from/env")

	cfg, err := cli.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env", cfg.StorePath, "environment must override the file")
	require.Equal(t, "canary", cfg.Defaults.Tier)
	require.Equal(t, 4, cfg.Defaults.Concurrency)
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	cfg, err := cli.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, cli.Config{}, cfg)
}

func TestCreateSetShowRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	ent, err := cli.Create(ctx, cfg, entity.Params{
		InstanceID:       "cli-1",
		Role:             domain.RolePublisher,
		Status:           domain.StatusPending,
		GameType:         domain.GameTypeLift,
		NumPIDContainers: 2,
		NumMPCContainers: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "cli-1", ent.InstanceID())

	updated, err := cli.SetField(ctx, cfg, "cli-1", entity.FieldStatus, "RUNNING")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRunning, updated.Status())
	require.Len(t, updated.StatusUpdates(), 2)

	out, err := cli.Show(ctx, cfg, "cli-1")
	require.NoError(t, err)
	require.Contains(t, out, "cli-1")
	require.Contains(t, out, "RUNNING")

	history, err := cli.History(ctx, cfg, "cli-1")
	require.NoError(t, err)
	require.Contains(t, history, "PENDING")
	require.Contains(t, history, "RUNNING")

	ids, err := cli.List(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"cli-1"}, ids)
}

func TestCreate_AppliesConfigDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Defaults = cli.EntityDefaults{Tier: "rc", NumFilesPerMPCContainer: 8, Concurrency: 2}

	ent, err := cli.Create(context.Background(), cfg, entity.Params{
		InstanceID:       "cli-defaults",
		NumPIDContainers: 1,
		NumMPCContainers: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "rc", ent.Tier())
	require.Equal(t, 8, ent.NumFilesPerMPCContainer())
	require.Equal(t, 2, ent.Concurrency())
}

func TestSetField_GovernanceSurfacesToCaller(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	_, err := cli.Create(ctx, cfg, entity.Params{
		InstanceID:       "cli-guard",
		NumPIDContainers: 2,
		NumMPCContainers: 5,
	})
	require.NoError(t, err)

	_, err = cli.SetField(ctx, cfg, "cli-guard", entity.FieldNumPIDContainers, "6")
	var verr *domain.InvariantError
	require.ErrorAs(t, err, &verr)

	_, err = cli.SetField(ctx, cfg, "cli-guard", entity.FieldGameType, "ATTRIBUTION")
	var ferr *domain.ImmutableFieldError
	require.ErrorAs(t, err, &ferr)

	// The rejected writes must not have been persisted.
	shown, err := cli.Show(ctx, cfg, "cli-guard")
	require.NoError(t, err)
	require.True(t, strings.Contains(shown, "pid=2"), "persisted state changed: %s", shown)
}

func TestCreate_ConstructionFailureNothingPersisted(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	_, err := cli.Create(ctx, cfg, entity.Params{
		InstanceID:       "cli-bad",
		NumPIDContainers: 9,
		NumMPCContainers: 1,
	})
	var cerr *domain.ConstructionError
	require.ErrorAs(t, err, &cerr)

	ids, err := cli.List(ctx, cfg)
	require.NoError(t, err)
	require.Empty(t, ids)
}
