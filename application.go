package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/timre13/lightmusic-desktop/config"
	"github.com/timre13/lightmusic-desktop/embeds"
)

type Application struct {
	logger *log.ZapEventLogger

	Conf *config.Config
}

func New() *Application {
	return &Application{}
}

// NewWithConfig skips config loading and logger setup. Exists for testing purposes.
func NewWithConfig(conf *config.Config) *Application {
	return &Application{
		Conf:   conf,
		logger: log.Logger("lightmusic"),
	}
}

func (a *Application) SetupLoggerAndConfig(configPath string) (*log.ZapEventLogger, error) {
	// Config
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	a.Conf = conf

	a.logger = SetupLogger(conf)

	return a.logger, nil
}

// SetupLogger routes all named loggers to stderr, keeping stdout free for rendered output.
func SetupLogger(conf *config.Config) *log.ZapEventLogger {
	syncer := zapcore.Lock(zapcore.AddSync(os.Stderr))

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	zapCore := zapcore.NewCore(consoleEncoder, syncer, zapcore.DebugLevel)

	lvl := conf.LogLevel()
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if conf.DevMode() {
		opts = append(opts, zap.Development())
	}

	log.SetupLogging(zapCore, func(name string) zapcore.Level {
		switch {
		case strings.HasPrefix(name, "lightmusic"):
			return lvl
		default:
			return zapcore.InfoLevel
		}
	},
		opts...,
	)

	return log.Logger("lightmusic")
}

func (a *Application) BinDir() (string, error) {
	baseDir, err := a.Conf.ResolveBaseDir()
	if err != nil {
		return "", err
	}

	return embeds.BinDir(baseDir)
}

// Generate writes the desktop entry to the configured output path and returns its absolute path.
func (a *Application) Generate() (string, error) {
	binDir, err := a.BinDir()
	if err != nil {
		return "", fmt.Errorf("calculate bin dir: %w", err)
	}
	a.logger.Debugf("using bin dir %s", binDir)

	outPath := a.Conf.OutputPath
	err = embeds.EmbedDesktopFile(outPath, binDir)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}

	absPath, err := filepath.Abs(outPath)
	if err != nil {
		absPath = outPath
	}
	a.logger.Infof("desktop entry written to %s", absPath)

	return absPath, nil
}

func (a *Application) Render() ([]byte, error) {
	binDir, err := a.BinDir()
	if err != nil {
		return nil, fmt.Errorf("calculate bin dir: %w", err)
	}

	return embeds.RenderDesktopFile(binDir)
}

func (a *Application) Check() (embeds.Status, error) {
	binDir, err := a.BinDir()
	if err != nil {
		return 0, fmt.Errorf("calculate bin dir: %w", err)
	}

	status, err := embeds.CheckDesktopFile(a.Conf.OutputPath, binDir)
	if err != nil {
		return 0, fmt.Errorf("check %s: %w", a.Conf.OutputPath, err)
	}
	a.logger.Debugf("%s is %s", a.Conf.OutputPath, status)

	return status, nil
}
