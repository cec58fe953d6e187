// Package memory keeps the small JSON scratch file of self-descriptions a
// user has volunteered ("my name is...", "i like..."). It predates the
// structured fact table and is kept for the "facts about me" answer.
package memory

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

type Entry struct {
	Facts    []string `json:"facts"`
	LastSeen string   `json:"last_seen"`
}

// File is a whole-file JSON store keyed by user email. Every write loads,
// mutates, and rewrites the file under one lock.
type File struct {
	mu   sync.Mutex
	path string
}

var selfPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is\b`),
	regexp.MustCompile(`(?i)\bi am\b`),
	regexp.MustCompile(`(?i)\bi'm\b`),
	regexp.MustCompile(`(?i)\bi like\b`),
	regexp.MustCompile(`(?i)\bmy role is\b`),
	regexp.MustCompile(`(?i)\bcall me\b`),
}

func Open(path string) *File {
	if path == "" {
		path = "memory.json"
	}
	return &File{path: path}
}

// Remember stores the raw message when it looks like a self-description and
// is not already recorded. Returns whether anything was saved.
func (f *File) Remember(email, text string) (bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !isSelfDescription(trimmed) {
		return false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return false, err
	}

	entry := data[email]
	for _, fact := range entry.Facts {
		if strings.EqualFold(fact, trimmed) {
			return false, nil
		}
	}
	entry.Facts = append(entry.Facts, trimmed)
	entry.LastSeen = time.Now().UTC().Format(time.RFC3339)
	data[email] = entry

	return true, f.save(data)
}

// Facts returns a copy of the stored lines for one user.
func (f *File) Facts(email string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}
	entry := data[email]
	out := make([]string, len(entry.Facts))
	copy(out, entry.Facts)
	return out, nil
}

func (f *File) load() (map[string]Entry, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	data := map[string]Entry{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt file should not brick chat, start fresh.
		return map[string]Entry{}, nil
	}
	return data, nil
}

func (f *File) save(data map[string]Entry) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}

func isSelfDescription(text string) bool {
	for _, p := range selfPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
