package spells

import (
	"encoding/json"
	"os"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// spellFile is the on-disk shape of spells.json.
type spellFile struct {
	Spells []entities.Spell `json:"spells"`
}

// Parse decodes spell definitions from JSON bytes.
func Parse(data []byte) ([]entities.Spell, error) {
	var file spellFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse spell data")
	}
	return file.Spells, nil
}

// LoadFile reads and decodes a spells.json file.
func LoadFile(path string) ([]entities.Spell, error) {
	data, err := os.ReadFile(path) // #nosec G304 // path comes from server config
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read spell file %s", path)
	}
	return Parse(data)
}

// NewInMemoryFromFile loads a spells.json file into a repository.
func NewInMemoryFromFile(path string) (*InMemoryRepository, error) {
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewInMemory(&Config{Spells: defs})
}
