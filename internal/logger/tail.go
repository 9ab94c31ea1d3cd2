package logger

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

const DefaultTailLines = 100

// Tail returns the last n non-empty lines of the log file, oldest first.
// A missing file yields an empty slice.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultTailLines
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	ring := make([]string, 0, n)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(ring) == n {
			ring = append(ring[1:], line)
			continue
		}
		ring = append(ring, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return ring, nil
}
