// Package filter implements the per-category free-text filters.
//
// Matching is plain substring containment over a fixed field set per
// category: a record matches when ANY of its configured fields contains
// the query. Transliterated fields (pinyin, acupoint codes) compare
// case-insensitively; everything else compares byte-wise as given,
// which is correct for the primarily CJK data. Filters are stable: the
// result preserves the source collection's relative order and carries
// no ranking.
package filter

import (
	"strings"

	"github.com/starford/lingshu/internal/models"
)

// Herbs filters herbs by name, pinyin, category, nature, and effect
// descriptions. An empty or whitespace-only query returns the input
// unchanged.
func Herbs(list []models.Herb, query string) []models.Herb {
	q := strings.TrimSpace(query)
	if q == "" {
		return list
	}
	return keep(list, func(h models.Herb) bool {
		return strings.Contains(h.Name, q) ||
			containsFold(h.Pinyin, q) ||
			strings.Contains(h.Category, q) ||
			strings.Contains(h.Nature, q) ||
			anyEffect(h.Effects, q)
	})
}

// Formulas filters formulas by name, pinyin, category, functions, and
// ingredient names.
func Formulas(list []models.Formula, query string) []models.Formula {
	q := strings.TrimSpace(query)
	if q == "" {
		return list
	}
	return keep(list, func(f models.Formula) bool {
		if strings.Contains(f.Name, q) ||
			containsFold(f.Pinyin, q) ||
			strings.Contains(f.Category, q) ||
			strings.Contains(f.Functions, q) {
			return true
		}
		for _, ing := range f.Ingredients {
			if strings.Contains(ing.Name, q) {
				return true
			}
		}
		return false
	})
}

// Acupoints filters acupoints by name, code, location, functions, and
// indications.
func Acupoints(list []models.Acupoint, query string) []models.Acupoint {
	q := strings.TrimSpace(query)
	if q == "" {
		return list
	}
	return keep(list, func(a models.Acupoint) bool {
		return strings.Contains(a.Name, q) ||
			containsFold(a.Code, q) ||
			strings.Contains(a.Location, q) ||
			anyContains(a.Functions, q) ||
			anyContains(a.Indications, q)
	})
}

// KnowledgePoints filters knowledge points by title, content, and
// category.
func KnowledgePoints(list []models.KnowledgePoint, query string) []models.KnowledgePoint {
	q := strings.TrimSpace(query)
	if q == "" {
		return list
	}
	return keep(list, func(k models.KnowledgePoint) bool {
		return strings.Contains(k.Title, q) ||
			strings.Contains(k.Content, q) ||
			strings.Contains(k.Category, q)
	})
}

// Skills filters skills by title, description, and category.
func Skills(list []models.Skill, query string) []models.Skill {
	q := strings.TrimSpace(query)
	if q == "" {
		return list
	}
	return keep(list, func(s models.Skill) bool {
		return strings.Contains(s.Title, q) ||
			strings.Contains(s.Description, q) ||
			strings.Contains(s.Category, q)
	})
}

// Page slices a window out of list for the paginated admin search.
// limit <= 0 means no limit; offsets past the end yield an empty page.
func Page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	out := list[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func keep[T any](list []T, match func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, r := range list {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func anyContains(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}

func anyEffect(effects []models.HerbEffect, q string) bool {
	for _, e := range effects {
		if strings.Contains(e.Description, q) {
			return true
		}
	}
	return false
}

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}
