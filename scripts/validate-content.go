// Offline linter for the JSON content files. Run it from the repo root
// (or pass a data directory) before shipping content changes; it
// catches the cross-file mistakes the individual loaders cannot see,
// like a recipe producing a template that does not exist.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
)

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	tpls, err := templates.LoadFile(filepath.Join(dataDir, "templates.json"))
	if err != nil {
		fmt.Println("✗", err)
		os.Exit(1)
	}
	spellDefs, err := spells.LoadFile(filepath.Join(dataDir, "spells.json"))
	if err != nil {
		fmt.Println("✗", err)
		os.Exit(1)
	}
	recipeDefs, err := recipes.LoadFile(filepath.Join(dataDir, "recipes.json"))
	if err != nil {
		fmt.Println("✗", err)
		os.Exit(1)
	}

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	templateByID := make(map[string]*templates.Template, len(tpls))
	for _, t := range tpls {
		if t.ID == "" {
			report("template with empty id (name %q)", t.Name)
			continue
		}
		if _, dup := templateByID[t.ID]; dup {
			report("duplicate template id %q", t.ID)
		}
		templateByID[t.ID] = t
		if t.Name == "" {
			report("template %s has no name", t.ID)
		}
		if t.Glyph == "" {
			report("template %s has no glyph", t.ID)
		}
	}

	spellByID := make(map[string]entities.Spell, len(spellDefs))
	for _, sp := range spellDefs {
		if sp.ID == "" {
			report("spell with empty id (name %q)", sp.Name)
			continue
		}
		if _, dup := spellByID[sp.ID]; dup {
			report("duplicate spell id %q", sp.ID)
		}
		spellByID[sp.ID] = sp
		if sp.Effect == entities.SpellEffectStatus && sp.StatusType == "" {
			report("spell %s applies a status but names no status_type", sp.ID)
		}
		if sp.Target == entities.TargetArea && sp.AreaRadius <= 0 {
			report("spell %s is area-targeted but has no area_radius", sp.ID)
		}
		if sp.Target != entities.TargetSelf && sp.Range <= 0 {
			report("spell %s needs a target but has no range", sp.ID)
		}
	}

	for _, t := range tpls {
		for _, id := range t.KnownSpells {
			if _, ok := spellByID[id]; !ok {
				report("template %s knows undefined spell %q", t.ID, id)
			}
		}
	}

	recipeByID := make(map[string]*entities.Recipe, len(recipeDefs))
	for _, r := range recipeDefs {
		if r.ID == "" {
			report("recipe with empty id (name %q)", r.Name)
			continue
		}
		if _, dup := recipeByID[r.ID]; dup {
			report("duplicate recipe id %q", r.ID)
		}
		recipeByID[r.ID] = r

		result, ok := templateByID[r.ResultTemplateID]
		if !ok {
			report("recipe %s produces unknown template %q", r.ID, r.ResultTemplateID)
		} else if result.Crafting == nil || !result.Crafting.Craftable {
			report("recipe %s produces %s, which is not flagged craftable", r.ID, r.ResultTemplateID)
		}

		if len(r.RequiredTags) == 0 {
			report("recipe %s has no ingredient slots", r.ID)
		}
		for i, slot := range r.RequiredTags {
			if slot.Len() == 0 {
				report("recipe %s slot %d requires no tags", r.ID, i+1)
				continue
			}
			if !slotSatisfiable(slot, tpls) {
				report("recipe %s slot %d (%v) matches no ingredient template", r.ID, i+1, slot.Tags())
			}
		}
	}

	if len(problems) > 0 {
		fmt.Printf("content validation failed with %d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Println("  ✗", p)
		}
		os.Exit(1)
	}
	fmt.Printf("content ok: %d templates, %d spells, %d recipes\n",
		len(tpls), len(spellDefs), len(recipeDefs))
}

// slotSatisfiable reports whether some template's ingredient tags cover
// every tag the slot requires.
func slotSatisfiable(slot entities.TagSet, tpls []*templates.Template) bool {
	for _, t := range tpls {
		if t.Crafting == nil {
			continue
		}
		if slot.IsSubsetOf(entities.NewTagSet(t.Crafting.Tags...)) {
			return true
		}
	}
	return false
}
