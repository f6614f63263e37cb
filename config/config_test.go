package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewConfig_Defaults(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, DesktopFileName, conf.OutputPath)
	require.Equal(t, DefaultLoggerLevel, conf.LoggerLevel)
	require.Empty(t, conf.BaseDir)
	require.NoError(t, conf.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty_path", func(t *testing.T) {
		conf, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, NewConfig(), conf)
	})

	t.Run("missing_file", func(t *testing.T) {
		conf, err := LoadConfig(filepath.Join(dir, "missing.json"))
		require.NoError(t, err)
		require.Equal(t, NewConfig(), conf)
	})

	t.Run("partial_file", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"baseDir": "/opt/lm"}`), 0600))

		conf, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "/opt/lm", conf.BaseDir)
		require.Equal(t, DesktopFileName, conf.OutputPath)
		require.Equal(t, DefaultLoggerLevel, conf.LoggerLevel)
	})

	t.Run("invalid_json", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"baseDir": `), 0600))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    Config
		wantErr bool
	}{
		{name: "valid", conf: Config{LoggerLevel: "warn", OutputPath: "a.desktop"}},
		{name: "dev_level", conf: Config{LoggerLevel: "dev", OutputPath: "a.desktop"}},
		{name: "empty_level", conf: Config{OutputPath: "a.desktop"}},
		{name: "unknown_level", conf: Config{LoggerLevel: "verbose", OutputPath: "a.desktop"}, wantErr: true},
		{name: "empty_output", conf: Config{LoggerLevel: "info"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		devMode bool
	}{
		{level: "dev", want: zapcore.DebugLevel, devMode: true},
		{level: "debug", want: zapcore.DebugLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "error", want: zapcore.ErrorLevel},
		{level: "", want: zapcore.InfoLevel},
		{level: "nonsense", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			conf := Config{LoggerLevel: tt.level}
			require.Equal(t, tt.want, conf.LogLevel())
			require.Equal(t, tt.devMode, conf.DevMode())
		})
	}
}

func TestConfig_ResolveBaseDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	realDir := filepath.Join(dir, "realDir")
	require.NoError(t, os.Mkdir(realDir, 0700))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(realDir, link))

	// TempDir itself may live behind a symlink (macOS /var -> /private/var).
	wantRealDir, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)

	conf := &Config{BaseDir: link}
	got, err := conf.ResolveBaseDir()
	require.NoError(t, err)
	require.Equal(t, wantRealDir, got)

	conf = &Config{BaseDir: filepath.Join(dir, "missing")}
	_, err = conf.ResolveBaseDir()
	require.Error(t, err)

	conf = &Config{}
	got, err = conf.ResolveBaseDir()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
}
