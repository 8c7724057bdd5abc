// Package jsonl reads the line-delimited JSON table files produced by the
// dump converter. One JSON object per line, blank lines ignored.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Post bodies can run to hundreds of kilobytes on a single line.
const maxLineSize = 16 * 1024 * 1024

// TablePath resolves a table name to its file under the data directory.
func TablePath(dataDir, name string) string {
	return filepath.Join(dataDir, "main", name+".jsonl")
}

// LoadTable reads every record of a table into a map keyed by the value
// id extracts from each record. A missing file is returned as-is so the
// caller can decide between failing and falling back to another table; a
// malformed line aborts the whole table.
func LoadTable[T any](path string, id func(*T) int) (map[int]*T, error) {
	records := make(map[int]*T)
	err := StreamTable(path, func(rec *T) error {
		records[id(rec)] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// StreamTable visits records in file order without building a map. Used
// for tables whose order of application matters, such as PostHistory.
func StreamTable[T any](path string, fn func(*T) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := new(T)
		if err := json.Unmarshal([]byte(line), rec); err != nil {
			return fmt.Errorf("jsonl: %s line %d: %w", path, lineno, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("jsonl: %s: %w", path, err)
	}
	return nil
}
