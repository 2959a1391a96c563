package refs

import (
	"testing"

	"github.com/starford/lingshu/internal/store"
)

func TestHerbName(t *testing.T) {
	herbs := store.Seed().Herbs
	if got := HerbName(herbs, "h1"); got != "麻黄" {
		t.Errorf("HerbName(h1) = %q", got)
	}
	// Dangling reference echoes the id, never errors.
	if got := HerbName(herbs, "h404"); got != "h404" {
		t.Errorf("HerbName(h404) = %q, want the id back", got)
	}
}

func TestFormulaName(t *testing.T) {
	formulas := store.Seed().Formulas
	if got := FormulaName(formulas, "f2"); got != "桂枝汤" {
		t.Errorf("FormulaName(f2) = %q", got)
	}
	if got := FormulaName(nil, "f1"); got != "f1" {
		t.Errorf("FormulaName on nil list = %q, want the id back", got)
	}
}

func TestFormula(t *testing.T) {
	formulas := store.Seed().Formulas
	f, ok := Formula(formulas, "f3")
	if !ok || f.Name != "四君子汤" {
		t.Errorf("Formula(f3) = %+v, %v", f, ok)
	}
	if _, ok := Formula(formulas, "nope"); ok {
		t.Error("missing id should report ok=false")
	}
}
