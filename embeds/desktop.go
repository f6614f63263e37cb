package embeds

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anywherelan/ts-dns/util/lineread"
	"github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"

	"github.com/timre13/lightmusic-desktop/config"
)

//go:embed .desktop
var desktopFile []byte

const binDirPlaceholder = "{BINDIR}"

var ErrInvalidBinDir = errors.New("bin dir must be a single-line absolute path")

var logger = log.Logger("lightmusic/embeds")

// BinDir returns the absolute, symlink-resolved baseDir joined with the build dir name.
func BinDir(baseDir string) (string, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}

	binDir := filepath.Join(resolved, config.BinDirName)
	err = validateBinDir(binDir)
	if err != nil {
		return "", err
	}

	return binDir, nil
}

// RenderDesktopFile substitutes binDir into the embedded template as is, without escaping.
func RenderDesktopFile(binDir string) ([]byte, error) {
	err := validateBinDir(binDir)
	if err != nil {
		return nil, err
	}

	replacement := []byte(binDir)
	placeholder := []byte(binDirPlaceholder)

	buf := bytes.NewBuffer(make([]byte, 0, len(desktopFile)+2*len(replacement)))
	err = lineread.Reader(bytes.NewReader(desktopFile), func(line []byte) error {
		line = bytes.ReplaceAll(line, placeholder, replacement)
		buf.Write(line)
		return buf.WriteByte('\n')
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return buf.Bytes(), nil
}

// EmbedDesktopFile creates or truncates outPath, writes the rendered entry and sets DesktopFileMode on it.
func EmbedDesktopFile(outPath, binDir string) (err error) {
	data, err := RenderDesktopFile(binDir)
	if err != nil {
		return err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close file: %w", closeErr))
		}
	}()

	_, err = file.Write(data)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	// Explicit chmod: the mode passed on create is masked by umask and ignored for existing files.
	err = file.Chmod(config.DesktopFileMode)
	if err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}
	logger.Debugf("wrote %d bytes to %s", len(data), outPath)

	return nil
}

func validateBinDir(binDir string) error {
	if !filepath.IsAbs(binDir) || strings.ContainsAny(binDir, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidBinDir, binDir)
	}
	return nil
}
