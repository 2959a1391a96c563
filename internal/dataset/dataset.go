// Package dataset loads an optional YAML dataset file that overrides
// the built-in seed. The file is read-only input: admin edits are never
// written back to it.
package dataset

import (
	"fmt"

	"github.com/starford/lingshu/internal/models"
	pkgconfig "github.com/starford/lingshu/pkg/config"
)

// Load reads and validates a YAML dataset file.
func Load(path string) (models.Dataset, error) {
	var ds models.Dataset
	if err := pkgconfig.Load(path, &ds); err != nil {
		return models.Dataset{}, err
	}
	if err := validate(ds); err != nil {
		return models.Dataset{}, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// validate checks that every record carries an id and that ids are
// unique within their own collection. Cross-references are deliberately
// not checked: dangling ids are tolerated and degrade at render time.
func validate(ds models.Dataset) error {
	if err := uniqueIDs("herbs", ids(ds.Herbs, func(h models.Herb) string { return h.ID })); err != nil {
		return err
	}
	if err := uniqueIDs("formulas", ids(ds.Formulas, func(f models.Formula) string { return f.ID })); err != nil {
		return err
	}
	if err := uniqueIDs("acupoints", ids(ds.Acupoints, func(a models.Acupoint) string { return a.ID })); err != nil {
		return err
	}
	if err := uniqueIDs("knowledge_points", ids(ds.KnowledgePoints, func(k models.KnowledgePoint) string { return k.ID })); err != nil {
		return err
	}
	return uniqueIDs("skills", ids(ds.Skills, func(s models.Skill) string { return s.ID }))
}

func ids[T any](list []T, id func(T) string) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = id(r)
	}
	return out
}

func uniqueIDs(collection string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%s: record with empty id", collection)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: duplicate id %q", collection, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
