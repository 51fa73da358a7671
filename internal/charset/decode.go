package charset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecodeEntries parses a character set resource (a JSON array of entries)
// and validates every entry. The first malformed entry rejects the set.
func DecodeEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing character set: %w", err)
	}
	if err := validateAll(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadFile reads and decodes a character set resource from disk.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading character set file: %w", err)
	}
	return DecodeEntries(data)
}

func validateAll(entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			var malformed *MalformedEntryError
			if errors.As(err, &malformed) {
				malformed.Index = i
			}
			return err
		}
		if first, dup := seen[entry.ID]; dup {
			return &MalformedEntryError{
				Index:  i,
				ID:     entry.ID,
				Reason: fmt.Sprintf("duplicate id (first seen at index %d)", first),
			}
		}
		seen[entry.ID] = i
	}
	return nil
}
