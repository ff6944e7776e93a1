package templates

import (
	"encoding/json"
	"os"

	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// templateFile is the on-disk shape of templates.json.
type templateFile struct {
	Templates []*Template `json:"templates"`
}

// Parse decodes template definitions from JSON bytes.
func Parse(data []byte) ([]*Template, error) {
	var file templateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse template data")
	}
	return file.Templates, nil
}

// LoadFile reads and decodes a templates.json file.
func LoadFile(path string) ([]*Template, error) {
	data, err := os.ReadFile(path) // #nosec G304 // path comes from server config
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template file %s", path)
	}
	return Parse(data)
}

// NewInMemoryFromFile loads a templates.json file into a repository.
func NewInMemoryFromFile(path string) (*InMemoryRepository, error) {
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewInMemory(&Config{Templates: defs})
}
