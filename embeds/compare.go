package embeds

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/timre13/lightmusic-desktop/config"
)

type Status int

const (
	StatusUpToDate Status = iota
	StatusMissing
	StatusStale
	StatusWrongMode
)

func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusMissing:
		return "missing"
	case StatusStale:
		return "stale"
	case StatusWrongMode:
		return "wrong mode"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// CheckDesktopFile reports whether outPath holds exactly what EmbedDesktopFile would write for binDir.
func CheckDesktopFile(outPath, binDir string) (Status, error) {
	data, err := RenderDesktopFile(binDir)
	if err != nil {
		return 0, err
	}

	stat, err := os.Stat(outPath)
	if errors.Is(err, os.ErrNotExist) {
		return StatusMissing, nil
	} else if err != nil {
		return 0, fmt.Errorf("stat file: %w", err)
	}

	equal, err := checkIsFileEqual(outPath, stat.Size(), data)
	if err != nil {
		return 0, err
	}
	if !equal {
		return StatusStale, nil
	}

	// Only the read-only bit is meaningful on windows.
	if runtime.GOOS != "windows" && stat.Mode().Perm() != config.DesktopFileMode {
		logger.Debugf("%s has mode %v, want %v", outPath, stat.Mode().Perm(), config.DesktopFileMode)
		return StatusWrongMode, nil
	}

	return StatusUpToDate, nil
}

func checkIsFileEqual(path string, size int64, data []byte) (bool, error) {
	if size != int64(len(data)) {
		return false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warnf("close %s: %v", path, err)
		}
	}()

	equal, err := streamsEqual(bytes.NewReader(data), bufio.NewReader(file))
	if err != nil {
		return false, fmt.Errorf("compare %s: %w", path, err)
	}

	return equal, nil
}

func streamsEqual(s1 io.Reader, s2 io.Reader) (bool, error) {
	const chunkSize = 4096
	buf1 := make([]byte, chunkSize)
	buf2 := make([]byte, chunkSize)
	for {
		len1, err1 := io.ReadFull(s1, buf1)
		len2, err2 := io.ReadFull(s2, buf2)
		if (err1 != nil && err1 != io.ErrUnexpectedEOF) || (err2 != nil && err2 != io.ErrUnexpectedEOF) {
			if (err1 == io.EOF || err1 == nil) && (err2 == io.EOF || err2 == nil) {
				return err1 == io.EOF && err2 == io.EOF, nil
			}
			return false, fmt.Errorf("reading streams: source1 err: %v; source2 err: %v", err1, err2)
		}
		if !bytes.Equal(buf1[:len1], buf2[:len2]) {
			return false, nil
		}
	}
}
