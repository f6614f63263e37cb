package embeds

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/anywherelan/ts-dns/util/lineread"
)

const desktopEntryGroup = "[Desktop Entry]"

var ErrMissingGroupHeader = errors.New("missing " + desktopEntryGroup + " group header")

type EntryField struct {
	Key   string
	Value string
}

// ParseEntry splits a desktop entry into key/value pairs in file order.
// Blank lines and comments are skipped, and the first significant line must be the group header.
func ParseEntry(data []byte) ([]EntryField, error) {
	var (
		fields    []EntryField
		hasHeader bool
		lineNum   int
	)
	err := lineread.Reader(bytes.NewReader(data), func(line []byte) error {
		lineNum++
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			return nil
		}
		if !hasHeader {
			if string(line) != desktopEntryGroup {
				return ErrMissingGroupHeader
			}
			hasHeader = true
			return nil
		}

		key, value, found := bytes.Cut(line, []byte("="))
		if !found {
			return fmt.Errorf("line %d: expected key=value, got %q", lineNum, line)
		}
		fields = append(fields, EntryField{
			Key:   string(bytes.TrimSpace(key)),
			Value: string(bytes.TrimSpace(value)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !hasHeader {
		return nil, ErrMissingGroupHeader
	}

	return fields, nil
}
