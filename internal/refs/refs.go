// Package refs resolves weak cross-references between collections.
//
// Cross-references are plain id strings with no referential integrity:
// resolution is a best-effort label lookup that echoes the id back when
// the target is missing, so a dangling reference degrades in the UI
// instead of failing a render.
package refs

import "github.com/starford/lingshu/internal/models"

// HerbName returns the display name of the herb with the given id, or
// the id itself when no such herb exists.
func HerbName(herbs []models.Herb, id string) string {
	for _, h := range herbs {
		if h.ID == id {
			return h.Name
		}
	}
	return id
}

// FormulaName returns the display name of the formula with the given
// id, or the id itself when no such formula exists.
func FormulaName(formulas []models.Formula, id string) string {
	for _, f := range formulas {
		if f.ID == id {
			return f.Name
		}
	}
	return id
}

// Formula returns the formula with the given id, if present.
func Formula(formulas []models.Formula, id string) (models.Formula, bool) {
	for _, f := range formulas {
		if f.ID == id {
			return f, true
		}
	}
	return models.Formula{}, false
}
