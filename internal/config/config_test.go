package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, StrategyDirect, cfg.Fetcher.Strategy)
	require.Equal(t, 15, cfg.Fetcher.TimeoutSeconds)
	require.Equal(t, 5000, cfg.Fetcher.MaxChars)
	require.Equal(t, "claude-3-haiku-20240307", cfg.Anthropic.Model)
	require.Equal(t, "https://app.smartsuite.com/api/v1", cfg.SmartSuite.Endpoint)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ALERTRELAY_SERVER_PORT", "9090")
	t.Setenv("ALERTRELAY_FETCHER_STRATEGY", "reader")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, StrategyReader, cfg.Fetcher.Strategy)
}

func TestLoad_CredentialsFromEnvOnly(t *testing.T) {
	t.Setenv("ALERTRELAY_SMARTSUITE_API_KEY", "ss-secret")
	t.Setenv("ALERTRELAY_SMARTSUITE_WORKSPACE", "ws-9")
	t.Setenv("ALERTRELAY_SMARTSUITE_TABLE_ID", "tbl-9")
	t.Setenv("ALERTRELAY_ANTHROPIC_API_KEY", "sk-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "ss-secret", cfg.SmartSuite.APIKey)
	require.Equal(t, "ws-9", cfg.SmartSuite.Workspace)
	require.Equal(t, "tbl-9", cfg.SmartSuite.TableID)
	require.Equal(t, "sk-secret", cfg.Anthropic.APIKey)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Parallel()

	valid := Config{
		Server: ServerConfig{Port: 8080},
		Fetcher: FetcherConfig{
			Strategy:       StrategyDirect,
			TimeoutSeconds: 15,
			MaxChars:       5000,
		},
	}
	require.NoError(t, valid.Validate())

	badPort := valid
	badPort.Server.Port = 0
	require.Error(t, badPort.Validate())

	badStrategy := valid
	badStrategy.Fetcher.Strategy = "headless"
	require.Error(t, badStrategy.Validate())

	noReaderEndpoint := valid
	noReaderEndpoint.Fetcher.Strategy = StrategyReader
	noReaderEndpoint.Fetcher.ReaderEndpoint = ""
	require.Error(t, noReaderEndpoint.Validate())

	badTokens := valid
	badTokens.Anthropic.APIKey = "sk-test"
	badTokens.Anthropic.MaxTokens = 0
	require.Error(t, badTokens.Validate())
}
