package recipes

import (
	"encoding/json"
	"os"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
)

// recipeFile is the on-disk shape of recipes.json. Recipes are a list,
// not a map, so definition order survives decoding.
type recipeFile struct {
	Recipes []*entities.Recipe `json:"recipes"`
}

// Parse decodes recipe definitions from JSON bytes.
func Parse(data []byte) ([]*entities.Recipe, error) {
	var file recipeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse recipe data")
	}
	return file.Recipes, nil
}

// LoadFile reads and decodes a recipes.json file.
func LoadFile(path string) ([]*entities.Recipe, error) {
	data, err := os.ReadFile(path) // #nosec G304 // path comes from server config
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read recipe file %s", path)
	}
	return Parse(data)
}

// NewInMemoryFromFile loads a recipes.json file into a repository.
func NewInMemoryFromFile(path string) (*InMemoryRepository, error) {
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewInMemory(&Config{Recipes: defs})
}
