package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherweave/go-portalbus/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestCatalogCommand(t *testing.T) {
	out := execute(t, "catalog")

	assert.Contains(t, out, "portal:auth:logout")
	assert.Contains(t, out, "*types.PageNavigationEvent")
	assert.Contains(t, out, "module→host")
}

func TestCatalogCommand_JSON(t *testing.T) {
	out := execute(t, "catalog", "--json")

	var entries []catalogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 11)
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "go-portalbus")
}

func TestDemoCommand(t *testing.T) {
	out := execute(t, "demo")

	assert.Contains(t, out, "dashboard: late join received")
	assert.Contains(t, out, `host: title "Settings"`)
	assert.Contains(t, out, "theme state present = false")
}

func TestDemo_Degraded(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Bridge.Isolated = true
	cfg.State.Enabled = false

	var out bytes.Buffer
	require.NoError(t, runDemo(context.Background(), cfg, &out))

	assert.Contains(t, out.String(), "(degraded)")
	assert.NotContains(t, out.String(), "late join received")
}

func TestRootCommand_InvalidPreset(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"catalog", "--preset", "turbo", "--env-file", ""})
	assert.Error(t, cmd.Execute())
}
