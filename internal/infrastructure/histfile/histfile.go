// Package histfile reads zsh history logs in both plain and extended format.
package histfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// extendedLine matches zsh extended-history lines, ": <epoch>:<elapsed>;<command>".
var extendedLine = regexp.MustCompile(`^:\s*(\d+):(\d+);(.*)$`)

// maxLineBytes bounds a single history line; interactive heredocs and
// pasted scripts can exceed bufio.Scanner's default token size.
const maxLineBytes = 1024 * 1024

// ParseLine extracts the command from one history line. Extended-format
// lines yield their command portion with whitespace preserved. Any other
// non-blank line, including an extended-looking line whose numeric fields
// do not parse, is the command verbatim. Blank lines yield ok == false.
func ParseLine(line string) (command string, ok bool) {
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	matches := extendedLine.FindStringSubmatch(line)
	if matches == nil {
		return line, true
	}
	if _, err := strconv.ParseInt(matches[1], 10, 64); err != nil {
		return line, true
	}
	if _, err := strconv.ParseInt(matches[2], 10, 64); err != nil {
		return line, true
	}
	return matches[3], true
}

// ReadCommands parses every line of the log at path, in order, keeping
// duplicates. A command that contained a newline when logged reads back
// as separate entries. The open error is returned unwrapped so callers
// can map it to their own taxonomy.
func ReadCommands(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var commands []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if command, ok := ParseLine(scanner.Text()); ok {
			commands = append(commands, command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return commands, nil
}
