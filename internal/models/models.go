// Package models defines the domain types for Lingshu.
package models

import "fmt"

// Category identifies one of the five catalog collections.
type Category string

// Catalog categories.
const (
	CategoryHerbs     Category = "herbs"
	CategoryFormulas  Category = "formulas"
	CategoryAcupoints Category = "acupoints"
	CategoryKnowledge Category = "knowledge"
	CategorySkills    Category = "skills"
)

// Categories lists all catalog categories in display order.
var Categories = []Category{
	CategoryHerbs,
	CategoryFormulas,
	CategoryAcupoints,
	CategoryKnowledge,
	CategorySkills,
}

// ParseCategory converts a URL slug into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Difficulty grades a knowledge point.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// HerbEffect is one effect of a herb with an optional weak reference to
// a formula that demonstrates it. The reference is an id string only;
// it is resolved at render time and never validated.
type HerbEffect struct {
	Description      string `json:"description" yaml:"description"`
	RelatedFormulaID string `json:"related_formula_id,omitempty" yaml:"related_formula_id,omitempty"`
}

// Herb is a single medicinal herb record.
type Herb struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Pinyin   string       `json:"pinyin" yaml:"pinyin"`
	Nature   string       `json:"nature" yaml:"nature"`
	Flavor   []string     `json:"flavor" yaml:"flavor"`
	Channels []string     `json:"channels" yaml:"channels"`
	Effects  []HerbEffect `json:"effects" yaml:"effects"`
	Category string       `json:"category" yaml:"category"`
}

// Ingredient is one component of a formula. Dosage is a unit-bearing
// string (e.g. "9g", "3枚") and is never parsed as a number.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Dosage string `json:"dosage" yaml:"dosage"`
}

// Formula is a single prescription record.
type Formula struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Pinyin      string       `json:"pinyin" yaml:"pinyin"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Usage       string       `json:"usage" yaml:"usage"`
	Functions   string       `json:"functions" yaml:"functions"`
	Category    string       `json:"category" yaml:"category"`
}

// Acupoint is a single acupuncture point record. RelatedHerbIDs and
// RelatedFormulaIDs are weak references into the herb and formula
// collections.
type Acupoint struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Code              string   `json:"code" yaml:"code"`
	Location          string   `json:"location" yaml:"location"`
	Functions         []string `json:"functions" yaml:"functions"`
	Indications       []string `json:"indications" yaml:"indications"`
	RelatedHerbIDs    []string `json:"related_herb_ids,omitempty" yaml:"related_herb_ids,omitempty"`
	RelatedFormulaIDs []string `json:"related_formula_ids,omitempty" yaml:"related_formula_ids,omitempty"`
}

// KnowledgePoint is a single exam knowledge point.
type KnowledgePoint struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Category   string     `json:"category" yaml:"category"`
	Content    string     `json:"content" yaml:"content"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Skill is a single clinical skill record with ordered steps.
type Skill struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
}

// Dataset bundles all five collections. It is the unit of seeding and
// of snapshotting: collections preserve insertion order and ids are
// unique within their own collection only.
type Dataset struct {
	Herbs           []Herb           `json:"herbs" yaml:"herbs"`
	Formulas        []Formula        `json:"formulas" yaml:"formulas"`
	Acupoints       []Acupoint       `json:"acupoints" yaml:"acupoints"`
	KnowledgePoints []KnowledgePoint `json:"knowledge_points" yaml:"knowledge_points"`
	Skills          []Skill          `json:"skills" yaml:"skills"`
}

// Total returns the number of records across all collections.
func (d Dataset) Total() int {
	return len(d.Herbs) + len(d.Formulas) + len(d.Acupoints) + len(d.KnowledgePoints) + len(d.Skills)
}
