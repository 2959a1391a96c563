// Package transcoder converts between structured catalog records and
// their flat, human-editable admin form representations.
//
// Each record kind has its own encode/decode pair selected by an
// explicit category tag (see Form). Encoding joins list fields into
// editable text: comma for short tag-like lists, newline for longer
// ones, and "name:dosage" lines for formula ingredients. Decoding is
// the forgiving inverse: both ASCII and full-width separators are
// accepted, entries that are empty after trimming are dropped, and an
// ingredient line without a separator degrades to an empty dosage
// rather than rejecting the save.
package transcoder

import (
	"strconv"
	"strings"
	"time"

	"github.com/starford/lingshu/internal/models"
)

// now is a package-level hook so tests can pin id minting.
var now = time.Now

// MintID returns a fresh record identifier. Ids are timestamp tokens:
// distinguishable within a session, not globally unique.
func MintID() string {
	return strconv.FormatInt(now().UnixNano(), 10)
}

// EffectForm is one editable herb effect row. Effects stay structured
// in the form (not flattened to text) because each row carries an
// optional formula reference that must remain selectable against the
// live formula list during editing.
type EffectForm struct {
	Description      string `json:"description"`
	RelatedFormulaID string `json:"related_formula_id,omitempty"`
}

// HerbForm is the flat editable representation of a herb.
type HerbForm struct {
	Name     string       `json:"name"`
	Pinyin   string       `json:"pinyin"`
	Nature   string       `json:"nature"`
	Category string       `json:"category"`
	Flavor   string       `json:"flavor"`   // comma-joined
	Channels string       `json:"channels"` // comma-joined
	Effects  []EffectForm `json:"effects"`
}

// FormulaForm is the flat editable representation of a formula.
// Ingredients is one "name:dosage" line per ingredient.
type FormulaForm struct {
	Name        string `json:"name"`
	Pinyin      string `json:"pinyin"`
	Category    string `json:"category"`
	Ingredients string `json:"ingredients"`
	Usage       string `json:"usage"`
	Functions   string `json:"functions"`
}

// AcupointForm is the flat editable representation of an acupoint.
// The weak reference lists pass through structured; the admin form
// edits them against the live herb and formula lists.
type AcupointForm struct {
	Name              string   `json:"name"`
	Code              string   `json:"code"`
	Location          string   `json:"location"`
	Functions         string   `json:"functions"`   // newline-joined
	Indications       string   `json:"indications"` // newline-joined
	RelatedHerbIDs    []string `json:"related_herb_ids,omitempty"`
	RelatedFormulaIDs []string `json:"related_formula_ids,omitempty"`
}

// KnowledgeForm is the flat editable representation of a knowledge point.
type KnowledgeForm struct {
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Difficulty models.Difficulty `json:"difficulty"`
	Content    string            `json:"content"`
}

// SkillForm is the flat editable representation of a skill.
type SkillForm struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Steps       string `json:"steps"` // newline-joined
}

// Form is the tagged union carried over the admin API. Exactly one of
// the record fields is set, matching Category.
type Form struct {
	Category  models.Category `json:"category"`
	Herb      *HerbForm       `json:"herb,omitempty"`
	Formula   *FormulaForm    `json:"formula,omitempty"`
	Acupoint  *AcupointForm   `json:"acupoint,omitempty"`
	Knowledge *KnowledgeForm  `json:"knowledge,omitempty"`
	Skill     *SkillForm      `json:"skill,omitempty"`
}

// HerbToForm encodes a herb for editing.
func HerbToForm(h models.Herb) HerbForm {
	effects := make([]EffectForm, len(h.Effects))
	for i, e := range h.Effects {
		effects[i] = EffectForm{Description: e.Description, RelatedFormulaID: e.RelatedFormulaID}
	}
	return HerbForm{
		Name:     h.Name,
		Pinyin:   h.Pinyin,
		Nature:   h.Nature,
		Category: h.Category,
		Flavor:   strings.Join(h.Flavor, ","),
		Channels: strings.Join(h.Channels, ","),
		Effects:  effects,
	}
}

// HerbFromForm decodes an edited herb. Effect rows whose description is
// empty after trimming are dropped entirely: incomplete rows are
// silently discarded on save, not rejected. existingID keeps the id of
// the record being edited; empty mints a new one.
func HerbFromForm(f HerbForm, existingID string) models.Herb {
	effects := make([]models.HerbEffect, 0, len(f.Effects))
	for _, e := range f.Effects {
		desc := strings.TrimSpace(e.Description)
		if desc == "" {
			continue
		}
		effects = append(effects, models.HerbEffect{
			Description:      desc,
			RelatedFormulaID: strings.TrimSpace(e.RelatedFormulaID),
		})
	}
	return models.Herb{
		ID:       orMint(existingID),
		Name:     strings.TrimSpace(f.Name),
		Pinyin:   strings.TrimSpace(f.Pinyin),
		Nature:   strings.TrimSpace(f.Nature),
		Category: strings.TrimSpace(f.Category),
		Flavor:   SplitComma(f.Flavor),
		Channels: SplitComma(f.Channels),
		Effects:  effects,
	}
}

// FormulaToForm encodes a formula for editing.
func FormulaToForm(f models.Formula) FormulaForm {
	lines := make([]string, len(f.Ingredients))
	for i, ing := range f.Ingredients {
		lines[i] = ing.Name + ":" + ing.Dosage
	}
	return FormulaForm{
		Name:        f.Name,
		Pinyin:      f.Pinyin,
		Category:    f.Category,
		Ingredients: strings.Join(lines, "\n"),
		Usage:       f.Usage,
		Functions:   f.Functions,
	}
}

// FormulaFromForm decodes an edited formula.
func FormulaFromForm(f FormulaForm, existingID string) models.Formula {
	var ingredients []models.Ingredient
	for _, line := range SplitLines(f.Ingredients) {
		ingredients = append(ingredients, ParseIngredient(line))
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return models.Formula{
		ID:          orMint(existingID),
		Name:        strings.TrimSpace(f.Name),
		Pinyin:      strings.TrimSpace(f.Pinyin),
		Category:    strings.TrimSpace(f.Category),
		Ingredients: ingredients,
		Usage:       strings.TrimSpace(f.Usage),
		Functions:   strings.TrimSpace(f.Functions),
	}
}

// AcupointToForm encodes an acupoint for editing.
func AcupointToForm(a models.Acupoint) AcupointForm {
	return AcupointForm{
		Name:              a.Name,
		Code:              a.Code,
		Location:          a.Location,
		Functions:         strings.Join(a.Functions, "\n"),
		Indications:       strings.Join(a.Indications, "\n"),
		RelatedHerbIDs:    a.RelatedHerbIDs,
		RelatedFormulaIDs: a.RelatedFormulaIDs,
	}
}

// AcupointFromForm decodes an edited acupoint.
func AcupointFromForm(f AcupointForm, existingID string) models.Acupoint {
	return models.Acupoint{
		ID:                orMint(existingID),
		Name:              strings.TrimSpace(f.Name),
		Code:              strings.TrimSpace(f.Code),
		Location:          strings.TrimSpace(f.Location),
		Functions:         SplitLines(f.Functions),
		Indications:       SplitLines(f.Indications),
		RelatedHerbIDs:    f.RelatedHerbIDs,
		RelatedFormulaIDs: f.RelatedFormulaIDs,
	}
}

// KnowledgeToForm encodes a knowledge point for editing.
func KnowledgeToForm(k models.KnowledgePoint) KnowledgeForm {
	return KnowledgeForm{
		Title:      k.Title,
		Category:   k.Category,
		Difficulty: k.Difficulty,
		Content:    k.Content,
	}
}

// KnowledgeFromForm decodes an edited knowledge point. An unknown
// difficulty defaults to Easy rather than failing the save.
func KnowledgeFromForm(f KnowledgeForm, existingID string) models.KnowledgePoint {
	diff := f.Difficulty
	switch diff {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		diff = models.DifficultyEasy
	}
	return models.KnowledgePoint{
		ID:         orMint(existingID),
		Title:      strings.TrimSpace(f.Title),
		Category:   strings.TrimSpace(f.Category),
		Difficulty: diff,
		Content:    strings.TrimSpace(f.Content),
	}
}

// SkillToForm encodes a skill for editing.
func SkillToForm(s models.Skill) SkillForm {
	return SkillForm{
		Title:       s.Title,
		Category:    s.Category,
		Description: s.Description,
		Steps:       strings.Join(s.Steps, "\n"),
	}
}

// SkillFromForm decodes an edited skill.
func SkillFromForm(f SkillForm, existingID string) models.Skill {
	return models.Skill{
		ID:          orMint(existingID),
		Title:       strings.TrimSpace(f.Title),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Steps:       SplitLines(f.Steps),
	}
}

// SplitComma splits on ASCII or full-width commas, trims each entry,
// and drops entries that end up empty.
func SplitComma(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitLines splits on newlines, trims each line, and drops lines that
// end up empty.
func SplitLines(s string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseIngredient parses a "name:dosage" line, accepting the full-width
// colon as well. A line with no separator yields the whole line as the
// name and an empty dosage.
func ParseIngredient(line string) models.Ingredient {
	for i, r := range line {
		if r == ':' || r == '：' {
			return models.Ingredient{
				Name:   strings.TrimSpace(line[:i]),
				Dosage: strings.TrimSpace(line[i+len(string(r)):]),
			}
		}
	}
	return models.Ingredient{Name: strings.TrimSpace(line), Dosage: ""}
}

func orMint(existingID string) string {
	if existingID != "" {
		return existingID
	}
	return MintID()
}
