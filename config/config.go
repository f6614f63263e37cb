package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"
)

const (
	AppName         = "lightmusic-desktop"
	BinDirName      = "build"
	DesktopFileName = "LightMusic.desktop"

	// Matches the launcher script: rwx for owner, group and others.
	DesktopFileMode = 0777

	ConfigPathEnvKey  = "LIGHTMUSIC_DESKTOP_CONFIG"
	BaseDirEnvKey     = "LIGHTMUSIC_DESKTOP_BASE_DIR"
	OutputPathEnvKey  = "LIGHTMUSIC_DESKTOP_OUTPUT"
	LoggerLevelEnvKey = "LIGHTMUSIC_DESKTOP_LOG_LEVEL"

	DefaultLoggerLevel = "info"
)

type Config struct {
	LoggerLevel string `json:"loggerLevel" validate:"omitempty,oneof=debug info warn error dev"`
	// Directory the build dir is looked up in. Empty means the directory of the running executable.
	BaseDir string `json:"baseDir"`
	// Where the desktop entry is written, relative paths are resolved against the working directory.
	OutputPath string `json:"outputPath" validate:"required"`
}

func NewConfig() *Config {
	conf := &Config{}
	setDefaults(conf)
	return conf
}

// LoadConfig reads config from path. A missing file is not an error, defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	conf := new(Config)
	if path == "" {
		setDefaults(conf)
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("config file %s does not exist, using defaults", path)
		setDefaults(conf)
		return conf, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	err = json.Unmarshal(data, conf)
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	setDefaults(conf)

	return conf, nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ResolveBaseDir returns BaseDir made absolute with symlinks resolved, or ExecutableDir when BaseDir is empty.
func (c *Config) ResolveBaseDir() (string, error) {
	if c.BaseDir == "" {
		return ExecutableDir()
	}

	return resolveDir(c.BaseDir)
}

func (c *Config) LogLevel() zapcore.Level {
	level := c.LoggerLevel
	if c.LoggerLevel == "dev" {
		level = "debug"
	}
	lvl := zapcore.InfoLevel
	_ = lvl.Set(level)
	return lvl
}

func (c *Config) DevMode() bool {
	return c.LoggerLevel == "dev"
}

func (c *Config) Export() []byte {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logger.DPanicf("Marshal config: %v", err)
	}
	return data
}

// ExecutableDir returns the symlink-resolved directory containing the running executable.
func ExecutableDir() (string, error) {
	ex, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("find executable path: %w", err)
	}

	ex, err = filepath.EvalSymlinks(ex)
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}

	return filepath.Dir(ex), nil
}

func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("get absolute path of %s: %w", dir, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}

	return resolved, nil
}

func setDefaults(conf *Config) {
	if conf.LoggerLevel == "" {
		conf.LoggerLevel = DefaultLoggerLevel
	}
	if conf.OutputPath == "" {
		conf.OutputPath = DesktopFileName
	}
}
