package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/provability/provability/x/bounty/kernel"
)

// readRows loads a rows file: one hex encoded 32-byte hash per line. Blank
// lines and lines starting with '#' are skipped.
func readRows(path string) ([]kernel.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []kernel.Hash
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if uint64(len(rows)) == kernel.MaxRows {
			return nil, kernel.ErrTooManyRows
		}
		h, err := kernel.ParseHash(strings.TrimPrefix(text, "0x"))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rows = append(rows, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// hashFlag reads a required hex hash flag.
func hashFlag(flags *pflag.FlagSet, name string) (kernel.Hash, error) {
	raw, err := flags.GetString(name)
	if err != nil {
		return kernel.Hash{}, err
	}
	if raw == "" {
		return kernel.Hash{}, fmt.Errorf("--%s is required", name)
	}
	h, err := kernel.ParseHash(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return kernel.Hash{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return h, nil
}

// fileFlag reads a required path flag and returns the file's contents.
func fileFlag(flags *pflag.FlagSet, name string) ([]byte, error) {
	path, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("--%s is required", name)
	}
	return os.ReadFile(path)
}
