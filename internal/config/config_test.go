package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/focustasks/internal/config"
	"github.com/idilsaglam/focustasks/internal/kv"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Test_Load_Returns_Defaults_Without_Files_Or_Env(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := config.Load(config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "focustasks_0163", cfg.StorageKey)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, ".focustasks"), cfg.Storage.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Empty(t, cfg.Source)
}

func Test_Load_Reads_Project_TOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "focustasks.toml"), `
storage_key = "work_tasks"

[storage]
dir = "/var/lib/focustasks"

[log]
level = "debug"
format = "json"

[ui]
theme = "neon"
`)

	cfg, err := config.Load(config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "work_tasks", cfg.StorageKey)
	assert.Equal(t, "/var/lib/focustasks", cfg.Storage.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, filepath.Join(dir, "focustasks.toml"), cfg.Source)
}

func Test_Load_Reads_JSON_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".focustasks.json"), `{
  // keep tasks next to the repo
  "storage": {"dir": "tasks-data",},
  "ui": {"theme": "mono"},
}`)

	cfg, err := config.Load(config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tasks-data"), cfg.Storage.Dir)
	assert.Equal(t, "mono", cfg.UI.Theme)
}

func Test_Load_Falls_Back_To_User_Config(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	userDir := t.TempDir()
	writeFile(t, filepath.Join(userDir, "focustasks", "config.toml"), `[ui]
theme = "neon"
`)

	cfg, err := config.Load(config.LoadInput{WorkDir: dir, UserDir: userDir})
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.UI.Theme)
}

func Test_Load_Precedence_File_Then_Env_Then_Overrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "custom.toml"), `storage_key = "from_file"
[ui]
theme = "neon"
`)

	cfg, err := config.Load(config.LoadInput{
		WorkDir:    dir,
		ConfigPath: "custom.toml",
		Env: map[string]string{
			"FOCUSTASKS_KEY":   "from_env",
			"FOCUSTASKS_THEME": "mono",
			"NO_COLOR":         "1",
		},
		Overrides: config.Overrides{StorageKey: "from_flag"},
	})
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.StorageKey)
	assert.Equal(t, "mono", cfg.UI.Theme)
	assert.True(t, cfg.UI.NoColor)
}

func Test_Load_Returns_Error_For_Bad_Input(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "UnknownTOMLKey", file: "colour = \"red\"\n", wantErr: "unknown key"},
		{name: "BrokenTOML", file: "storage_key = \n", wantErr: "parse config"},
		{name: "UnknownBackend", env: map[string]string{"FOCUSTASKS_BACKEND": "redis"}, wantErr: "unknown storage.backend"},
		{name: "MySQLWithoutDSN", env: map[string]string{"FOCUSTASKS_BACKEND": "mysql"}, wantErr: "storage.dsn is required"},
		{name: "BadKey", env: map[string]string{"FOCUSTASKS_KEY": "../etc/passwd"}, wantErr: "storage_key"},
		{name: "BadLogLevel", env: map[string]string{"FOCUSTASKS_LOG_LEVEL": "loud"}, wantErr: "log.level"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if testCase.file != "" {
				writeFile(t, filepath.Join(dir, "focustasks.toml"), testCase.file)
			}

			_, err := config.Load(config.LoadInput{WorkDir: dir, Env: testCase.env})
			require.ErrorContains(t, err, testCase.wantErr)
		})
	}
}

func Test_Load_Missing_Explicit_File_Is_An_Error(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadInput{WorkDir: t.TempDir(), ConfigPath: "nope.toml"})
	require.ErrorContains(t, err, "config file not found")
}

func Test_Validate_Wraps_Invalid_Key(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.StorageKey = ""
	require.ErrorIs(t, cfg.Validate(), kv.ErrInvalidKey)
}

func Test_Load_Accepts_MySQL_With_DSN(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.LoadInput{
		WorkDir: t.TempDir(),
		Env: map[string]string{
			"FOCUSTASKS_BACKEND": "MySQL",
			"FOCUSTASKS_DSN":     "u:p@tcp(db:3306)/focus",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, config.BackendMySQL, cfg.Storage.Backend)
	assert.Equal(t, ".focustasks", cfg.Storage.Dir, "dir is only resolved for the file backend")
}
