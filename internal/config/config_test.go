package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Wipe.ChunkSize = 8 * 1024 * 1024
	cfg.Wipe.DefaultStandard = "dod"
	cfg.Security.ProtectedDevices = []string{"/dev/sda"}

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wipe: [not a map"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "дефолт",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "нулевой chunk size",
			mutate:  func(cfg *Config) { cfg.Wipe.ChunkSize = 0 },
			wantErr: true,
		},
		{
			name:    "слишком большой chunk size",
			mutate:  func(cfg *Config) { cfg.Wipe.ChunkSize = 256 * 1024 * 1024 },
			wantErr: true,
		},
		{
			name:    "нулевое количество проходов",
			mutate:  func(cfg *Config) { cfg.Wipe.DefaultPasses = 0 },
			wantErr: true,
		},
		{
			name:    "неизвестный стандарт",
			mutate:  func(cfg *Config) { cfg.Wipe.DefaultStandard = "shred" },
			wantErr: true,
		},
		{
			name:    "неизвестный уровень логирования",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "TRACE" },
			wantErr: true,
		},
		{
			name:    "пустой защищённый путь",
			mutate:  func(cfg *Config) { cfg.Security.ProtectedDevices = []string{""} },
			wantErr: true,
		},
		{
			name:    "корень как защищённый путь",
			mutate:  func(cfg *Config) { cfg.Security.ProtectedDevices = []string{"/"} },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Wipe.ChunkSize = -1

	err := Save(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
}
