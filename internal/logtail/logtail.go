package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// stdlibLayout matches log.LstdFlags.
const stdlibLayout = "2006/01/02 15:04:05"

// Entry is one parsed log line.
type Entry struct {
	Time    time.Time // zero when the line has no timestamp
	Prefix  string
	Message string
	Raw     string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// ReadEntries is Read followed by Parse on every non-blank line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse splits a line written by the standard logger, optionally preceded
// by a single-word prefix, into its parts. Lines that do not match keep the
// whole text as Message.
func Parse(line string) Entry {
	entry := Entry{Message: line, Raw: line}

	rest := line
	if ts, ok := parseStamp(rest); ok {
		entry.Time = ts
		entry.Message = strings.TrimSpace(rest[len(stdlibLayout):])
		return entry
	}

	prefix, after, found := strings.Cut(rest, " ")
	if !found {
		return entry
	}
	if ts, ok := parseStamp(after); ok {
		entry.Time = ts
		entry.Prefix = prefix
		entry.Message = strings.TrimSpace(after[len(stdlibLayout):])
	}
	return entry
}

func parseStamp(s string) (time.Time, bool) {
	if len(s) < len(stdlibLayout) {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(stdlibLayout, s[:len(stdlibLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
