package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg := &types.Config{}
	require.NoError(t, ReadConfig(cfg, ""))

	assert.Equal(t, "polkadot", cfg.Chain.Name)
	assert.Equal(t, "DOT", cfg.Chain.Config.TokenSymbol)
	assert.Equal(t, uint8(10), cfg.Chain.Config.TokenDecimals)
	assert.Equal(t, uint32(403200), cfg.Chain.Config.VoteLockingPeriod)
	assert.Equal(t, uint64(6), cfg.Chain.Config.SecondsPerBlock)
	assert.Equal(t, "wss://rpc.polkadot.io:443", cfg.Node.Endpoint)
	assert.Equal(t, 8, cfg.Report.Workers)
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("CHAIN_NAME", "kusama")
	t.Setenv("REPORT_WORKERS", "3")
	t.Setenv("NODE_ENDPOINT", "ws://localhost:9944")

	cfg := &types.Config{}
	require.NoError(t, ReadConfig(cfg, ""))

	assert.Equal(t, "kusama", cfg.Chain.Name)
	assert.Equal(t, uint16(2), cfg.Chain.Config.SS58Prefix)
	assert.Equal(t, uint32(100800), cfg.Chain.Config.VoteLockingPeriod)
	assert.Equal(t, 3, cfg.Report.Workers)
	assert.Equal(t, "ws://localhost:9944", cfg.Node.Endpoint)
}

func TestReadConfigChainFile(t *testing.T) {
	dir := t.TempDir()
	chainPath := filepath.Join(dir, "chain.yml")
	require.NoError(t, os.WriteFile(chainPath, []byte(`
CONFIG_NAME: devnet
TOKEN_SYMBOL: UNIT
TOKEN_DECIMALS: 12
SS58_PREFIX: 42
SECONDS_PER_BLOCK: 6
VOTE_LOCKING_PERIOD: 100
DEFAULT_ENDPOINT: "ws://127.0.0.1:9944"
`), 0o600))
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
chain:
  configPath: `+chainPath+`
report:
  workers: 2
`), 0o600))

	cfg := &types.Config{}
	require.NoError(t, ReadConfig(cfg, configPath))
	assert.Equal(t, "devnet", cfg.Chain.Name)
	assert.Equal(t, uint32(100), cfg.Chain.Config.VoteLockingPeriod)
	assert.Equal(t, "ws://127.0.0.1:9944", cfg.Node.Endpoint)
	assert.Equal(t, 2, cfg.Report.Workers)
}

func TestReadConfigRejectsUnknownChain(t *testing.T) {
	t.Setenv("CHAIN_NAME", "westend")
	cfg := &types.Config{}
	assert.Error(t, ReadConfig(cfg, ""))
}

func TestReadConfigRejectsZeroLockingPeriod(t *testing.T) {
	dir := t.TempDir()
	chainPath := filepath.Join(dir, "chain.yml")
	require.NoError(t, os.WriteFile(chainPath, []byte("CONFIG_NAME: broken\nSECONDS_PER_BLOCK: 6\n"), 0o600))
	t.Setenv("CHAIN_CONFIG_PATH", chainPath)

	cfg := &types.Config{}
	assert.Error(t, ReadConfig(cfg, ""))
}
