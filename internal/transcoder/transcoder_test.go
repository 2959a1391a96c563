package transcoder

import (
	"reflect"
	"testing"
	"time"

	"github.com/starford/lingshu/internal/models"
	"github.com/starford/lingshu/internal/store"
)

// pinNow fixes the id-minting clock for the duration of a test.
func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestMintID(t *testing.T) {
	pinNow(t, time.Unix(0, 1717406096000000000))
	if got := MintID(); got != "1717406096000000000" {
		t.Errorf("MintID() = %q", got)
	}
}

func TestHerbRoundTrip(t *testing.T) {
	for _, h := range store.Seed().Herbs {
		back := HerbFromForm(HerbToForm(h), h.ID)
		if !reflect.DeepEqual(back, h) {
			t.Errorf("herb %s round trip mismatch:\n got %+v\nwant %+v", h.ID, back, h)
		}
	}
}

func TestFormulaRoundTrip(t *testing.T) {
	for _, f := range store.Seed().Formulas {
		back := FormulaFromForm(FormulaToForm(f), f.ID)
		if !reflect.DeepEqual(back, f) {
			t.Errorf("formula %s round trip mismatch:\n got %+v\nwant %+v", f.ID, back, f)
		}
	}
}

func TestAcupointRoundTrip(t *testing.T) {
	for _, a := range store.Seed().Acupoints {
		back := AcupointFromForm(AcupointToForm(a), a.ID)
		if !reflect.DeepEqual(back, a) {
			t.Errorf("acupoint %s round trip mismatch:\n got %+v\nwant %+v", a.ID, back, a)
		}
	}
}

func TestKnowledgeAndSkillRoundTrip(t *testing.T) {
	ds := store.Seed()
	for _, k := range ds.KnowledgePoints {
		back := KnowledgeFromForm(KnowledgeToForm(k), k.ID)
		if !reflect.DeepEqual(back, k) {
			t.Errorf("knowledge %s round trip mismatch", k.ID)
		}
	}
	for _, s := range ds.Skills {
		back := SkillFromForm(SkillToForm(s), s.ID)
		if !reflect.DeepEqual(back, s) {
			t.Errorf("skill %s round trip mismatch", s.ID)
		}
	}
}

func TestHerbFromFormDropsEmptyEffects(t *testing.T) {
	f := HerbForm{
		Name: "麻黄",
		Effects: []EffectForm{
			{Description: "发汗解表", RelatedFormulaID: "f1"},
			{Description: "   "},
			{Description: ""},
			{Description: " 利水消肿 "},
		},
	}
	h := HerbFromForm(f, "h1")
	if len(h.Effects) != 2 {
		t.Fatalf("effects = %d, want 2 (empty rows dropped)", len(h.Effects))
	}
	if h.Effects[1].Description != "利水消肿" {
		t.Errorf("effect not trimmed: %q", h.Effects[1].Description)
	}
}

func TestFromFormMintsWhenIDEmpty(t *testing.T) {
	pinNow(t, time.Unix(0, 42))
	h := HerbFromForm(HerbForm{Name: "新药"}, "")
	if h.ID != "42" {
		t.Errorf("minted id = %q, want 42", h.ID)
	}
	h = HerbFromForm(HerbForm{Name: "旧药"}, "h7")
	if h.ID != "h7" {
		t.Errorf("existing id not kept: %q", h.ID)
	}
}

func TestSplitComma(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"辛,微苦", []string{"辛", "微苦"}},
		{"肺, 膀胱", []string{"肺", "膀胱"}},
		{"心，肺，膀胱", []string{"心", "肺", "膀胱"}},
		{"甘, ,，微苦,", []string{"甘", "微苦"}},
		{"", []string{}},
	}
	for _, c := range cases {
		if got := SplitComma(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitComma(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("宣肺解表\n\n  通经活络  \n")
	want := []string{"宣肺解表", "通经活络"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines = %v, want %v", got, want)
	}
}

func TestParseIngredient(t *testing.T) {
	cases := []struct {
		in   string
		want models.Ingredient
	}{
		{"麻黄:9g", models.Ingredient{Name: "麻黄", Dosage: "9g"}},
		{"桂枝：6g", models.Ingredient{Name: "桂枝", Dosage: "6g"}},
		{" 甘草 : 3g ", models.Ingredient{Name: "甘草", Dosage: "3g"}},
		{"大枣", models.Ingredient{Name: "大枣", Dosage: ""}},
		{"生姜:9g:备注", models.Ingredient{Name: "生姜", Dosage: "9g:备注"}},
	}
	for _, c := range cases {
		if got := ParseIngredient(c.in); got != c.want {
			t.Errorf("ParseIngredient(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestFormulaFromFormEmptyIngredients(t *testing.T) {
	f := FormulaFromForm(FormulaForm{Name: "空方", Ingredients: "\n  \n"}, "f9")
	if f.Ingredients == nil || len(f.Ingredients) != 0 {
		t.Errorf("ingredients = %#v, want empty non-nil slice", f.Ingredients)
	}
}

func TestKnowledgeFromFormDefaultsDifficulty(t *testing.T) {
	k := KnowledgeFromForm(KnowledgeForm{Title: "t", Difficulty: "impossible"}, "k9")
	if k.Difficulty != models.DifficultyEasy {
		t.Errorf("difficulty = %q, want easy", k.Difficulty)
	}
}
