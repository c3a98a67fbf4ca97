package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadEntries loads corpus commands from path in rank order, skipping
// blank lines and lines starting with '#'. The open error is returned
// unwrapped so callers can map a missing corpus to their own taxonomy.
func ReadEntries(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entries, nil
}
