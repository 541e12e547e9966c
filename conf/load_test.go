package conf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lambda-feedback/deepmerge"
	"github.com/lambda-feedback/deepmerge/conf"
)

type serverConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
}

type testConfig struct {
	LogLevel string       `conf:"log_level"`
	Server   serverConfig `conf:"server"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	config, err := conf.Load[testConfig](conf.LoadOptions{
		Defaults: map[string]any{
			"log_level": "warn",
			"server":    map[string]any{"host": "0.0.0.0", "port": 80},
		},
		EnvPrefix: "DEEPMERGE_UNSET",
	})

	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 80, config.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	fileName := writeFile(t, "config.json",
		`{"log_level":"info","server":{"host":"localhost"}}`,
	)

	config, err := conf.Load[testConfig](conf.LoadOptions{
		Defaults: map[string]any{
			"log_level": "warn",
			"server":    map[string]any{"host": "0.0.0.0", "port": 80},
		},
		FileName:  fileName,
		EnvPrefix: "DEEPMERGE_UNSET",
	})

	require.NoError(t, err)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "localhost", config.Server.Host)

	// The file layer only set server.host; the default port survives the
	// recursive merge of the nested mapping.
	assert.Equal(t, 80, config.Server.Port)
}

func TestLoad_NullInFileKeepsDefault(t *testing.T) {
	fileName := writeFile(t, "config.json",
		`{"log_level":null,"server":{"host":"localhost"}}`,
	)

	config, err := conf.Load[testConfig](conf.LoadOptions{
		Defaults:  map[string]any{"log_level": "warn"},
		FileName:  fileName,
		EnvPrefix: "DEEPMERGE_UNSET",
	})

	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoad_EnvFileOverridesFile(t *testing.T) {
	fileName := writeFile(t, "config.json", `{"server":{"port":8080}}`)
	envFileName := writeFile(t, "config.env", "DM__SERVER__PORT=9090\n")

	config, err := conf.Load[testConfig](conf.LoadOptions{
		FileName:    fileName,
		EnvFileName: envFileName,
		EnvPrefix:   "DM",
	})

	require.NoError(t, err)
	assert.Equal(t, 9090, config.Server.Port)
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	t.Setenv("DM__LOG_LEVEL", "debug")

	fileName := writeFile(t, "config.json", `{"log_level":"info"}`)

	config, err := conf.Load[testConfig](conf.LoadOptions{
		Defaults:  map[string]any{"log_level": "warn"},
		FileName:  fileName,
		EnvPrefix: "DM",
		Log:       zap.NewNop(),
	})

	require.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	config, err := conf.Load[testConfig](conf.LoadOptions{
		Defaults:  map[string]any{"log_level": "warn"},
		FileName:  filepath.Join(t.TempDir(), "does-not-exist.json"),
		EnvPrefix: "DEEPMERGE_UNSET",
	})

	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoad_MergeOptions(t *testing.T) {
	type listConfig struct {
		Tags []string `conf:"tags"`
	}

	fileName := writeFile(t, "config.json", `{"tags":["c","d"]}`)

	config, err := conf.Load[listConfig](conf.LoadOptions{
		Defaults:  map[string]any{"tags": []any{"a", "b"}},
		FileName:  fileName,
		EnvPrefix: "DEEPMERGE_UNSET",
		Merge: []deepmerge.Option{
			deepmerge.WithSequenceMode(deepmerge.SequenceMerge),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, config.Tags)
}
