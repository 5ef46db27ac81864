package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

type testCLI struct {
	flags *Flags
	out   *bytes.Buffer
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	out := &bytes.Buffer{}
	return &testCLI{
		out: out,
		flags: &Flags{
			Config: &config.Config{
				Storage: config.StorageConfig{
					Driver: "file",
					File:   config.FileStorageConfig{Path: filepath.Join(t.TempDir(), "inventory.json")},
				},
				Auth: config.AuthConfig{Enabled: true, JWTSecret: "test", TokenTTL: time.Hour},
			},
			Logger: zerolog.Nop(),
			Out:    out,
		},
	}
}

// run builds a fresh command tree per invocation, as a process would.
func (tc *testCLI) run(args ...string) error {
	app := &cli.Command{Name: "inventory-tracker"}
	app = NewSeedCmd(tc.flags).Register(app)
	app = NewSummaryCmd(tc.flags).Register(app)
	app = NewHashPasswordCmd(tc.flags).Register(app)
	return app.Run(context.Background(), append([]string{"inventory-tracker"}, args...))
}

func TestParseSeed_Demo(t *testing.T) {
	items, err := parseSeed(demoItems)
	require.NoError(t, err)
	require.Len(t, items, 7)
	assert.Equal(t, "Laptop Computer", items[0].Name)
	assert.Equal(t, "Discontinued", items[6].Status)
}

func TestParseSeed_Rejects(t *testing.T) {
	_, err := parseSeed([]byte("items: []"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("items: [name: x"))
	assert.Error(t, err)
}

func TestSeedThenSummary(t *testing.T) {
	tc := newTestCLI(t)

	require.NoError(t, tc.run("seed"))
	assert.Contains(t, tc.out.String(), "Seeded 7 items")

	raw, err := os.ReadFile(tc.flags.Config.Storage.File.Path)
	require.NoError(t, err)
	var onDisk []models.InventoryItem
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 7)

	tc.out.Reset()
	require.NoError(t, tc.run("summary", "--json"))

	var got struct {
		Summary string          `json:"summary"`
		Stats   inventory.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(tc.out.Bytes(), &got))
	assert.Equal(t, 7, got.Stats.TotalItems)
	// Office Chair (3), Printer Paper (0, Ordered), Standing Desk (2), Old Monitor (5, Discontinued)
	assert.Equal(t, 4, got.Stats.LowStock)
	assert.True(t, strings.HasPrefix(got.Summary, "Alert: 4 items need attention across 3 categories"), got.Summary)
}

func TestSeed_RefusesNonEmptyStoreWithoutReplace(t *testing.T) {
	tc := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, tc.run("seed"))
	err := tc.run("seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--replace")

	custom := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("items:\n  - name: Solo\n    quantity: 9\n    category: Misc\n    status: ordered\n"), 0o644))
	require.NoError(t, tc.run("seed", "--replace", "--file", custom))

	st, err := openStack(ctx, tc.flags.Config, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()
	items, err := st.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Solo", items[0].Name)
	assert.Equal(t, models.StatusOrdered, items[0].Status)
}

func TestSeed_InvalidItemFails(t *testing.T) {
	tc := newTestCLI(t)

	custom := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("items:\n  - name: Bad\n    quantity: -2\n    category: Misc\n"), 0o644))

	err := tc.run("seed", "--file", custom)
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrValidation)
}

func TestSummary_TextOutput(t *testing.T) {
	tc := newTestCLI(t)

	require.NoError(t, tc.run("summary"))
	assert.Contains(t, tc.out.String(), inventory.WellStockedSummary)
	assert.Contains(t, tc.out.String(), "Total items:    0")
}

func TestHashPassword(t *testing.T) {
	tc := newTestCLI(t)

	require.NoError(t, tc.run("hash-password", "s3cret"))
	hash := strings.TrimSpace(tc.out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	assert.Error(t, tc.run("hash-password"))
}
