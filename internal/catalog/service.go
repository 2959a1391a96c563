// Package catalog is the service layer over the entity store. It
// narrows collections with the filter engine, resolves weak
// cross-references into display labels, and owns the sole write path:
// admin saves go through the form transcoder before touching the store.
package catalog

import (
	"context"
	"strings"

	"github.com/starford/lingshu/internal/apperr"
	"github.com/starford/lingshu/internal/filter"
	"github.com/starford/lingshu/internal/models"
	"github.com/starford/lingshu/internal/refs"
	"github.com/starford/lingshu/internal/store"
	"github.com/starford/lingshu/internal/transcoder"
)

// EventCallback is invoked after each successful store mutation.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, category models.Category, id string)

// Service coordinates store, filter, resolver, and transcoder.
type Service struct {
	store  *store.Store
	notify EventCallback
}

// NewService creates a catalog service. cb may be nil.
func NewService(st *store.Store, cb EventCallback) *Service {
	if cb == nil {
		cb = func(string, models.Category, string) {}
	}
	return &Service{store: st, notify: cb}
}

// Dataset returns a consistent snapshot of all collections.
func (s *Service) Dataset(_ context.Context) models.Dataset {
	return s.store.Snapshot()
}

// EffectView is a herb effect with its formula reference resolved to a
// display name. A dangling reference shows the raw id.
type EffectView struct {
	Description        string `json:"description"`
	RelatedFormulaID   string `json:"related_formula_id,omitempty"`
	RelatedFormulaName string `json:"related_formula_name,omitempty"`
}

// HerbView is the herb browse model.
type HerbView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Pinyin   string       `json:"pinyin"`
	Nature   string       `json:"nature"`
	Flavor   []string     `json:"flavor"`
	Channels []string     `json:"channels"`
	Category string       `json:"category"`
	Effects  []EffectView `json:"effects"`
}

// RefView is a resolved weak reference.
type RefView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AcupointView is the acupoint browse model with related herb and
// formula references resolved.
type AcupointView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Location        string    `json:"location"`
	Functions       []string  `json:"functions"`
	Indications     []string  `json:"indications"`
	RelatedHerbs    []RefView `json:"related_herbs"`
	RelatedFormulas []RefView `json:"related_formulas"`
}

// Herbs returns herbs narrowed by query, with effect references
// resolved against the same snapshot.
func (s *Service) Herbs(_ context.Context, query string) []HerbView {
	ds := s.store.Snapshot()
	matched := filter.Herbs(ds.Herbs, query)
	out := make([]HerbView, len(matched))
	for i, h := range matched {
		effects := make([]EffectView, len(h.Effects))
		for j, e := range h.Effects {
			ev := EffectView{Description: e.Description, RelatedFormulaID: e.RelatedFormulaID}
			if e.RelatedFormulaID != "" {
				ev.RelatedFormulaName = refs.FormulaName(ds.Formulas, e.RelatedFormulaID)
			}
			effects[j] = ev
		}
		out[i] = HerbView{
			ID:       h.ID,
			Name:     h.Name,
			Pinyin:   h.Pinyin,
			Nature:   h.Nature,
			Flavor:   h.Flavor,
			Channels: h.Channels,
			Category: h.Category,
			Effects:  effects,
		}
	}
	return out
}

// Formulas returns formulas narrowed by query.
func (s *Service) Formulas(_ context.Context, query string) []models.Formula {
	ds := s.store.Snapshot()
	return filter.Formulas(ds.Formulas, query)
}

// Formula looks a single formula up by id.
func (s *Service) Formula(_ context.Context, id string) (models.Formula, error) {
	ds := s.store.Snapshot()
	if f, ok := refs.Formula(ds.Formulas, id); ok {
		return f, nil
	}
	return models.Formula{}, apperr.ErrNotFound
}

// Acupoints returns acupoints narrowed by query, with related herb and
// formula references resolved.
func (s *Service) Acupoints(_ context.Context, query string) []AcupointView {
	ds := s.store.Snapshot()
	matched := filter.Acupoints(ds.Acupoints, query)
	out := make([]AcupointView, len(matched))
	for i, a := range matched {
		out[i] = AcupointView{
			ID:              a.ID,
			Name:            a.Name,
			Code:            a.Code,
			Location:        a.Location,
			Functions:       a.Functions,
			Indications:     a.Indications,
			RelatedHerbs:    resolveRefs(a.RelatedHerbIDs, func(id string) string { return refs.HerbName(ds.Herbs, id) }),
			RelatedFormulas: resolveRefs(a.RelatedFormulaIDs, func(id string) string { return refs.FormulaName(ds.Formulas, id) }),
		}
	}
	return out
}

// KnowledgePoints returns knowledge points narrowed by query.
func (s *Service) KnowledgePoints(_ context.Context, query string) []models.KnowledgePoint {
	ds := s.store.Snapshot()
	return filter.KnowledgePoints(ds.KnowledgePoints, query)
}

// Skills returns skills narrowed by query.
func (s *Service) Skills(_ context.Context, query string) []models.Skill {
	ds := s.store.Snapshot()
	return filter.Skills(ds.Skills, query)
}

func resolveRefs(ids []string, name func(string) string) []RefView {
	out := make([]RefView, len(ids))
	for i, id := range ids {
		out[i] = RefView{ID: id, Name: name(id)}
	}
	return out
}

// AdminItem is one row in the admin listing.
type AdminItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// AdminSearch returns a filtered, paginated admin listing for the
// category. total counts matches before pagination.
func (s *Service) AdminSearch(_ context.Context, category models.Category, query string, limit, offset int) ([]AdminItem, int, error) {
	ds := s.store.Snapshot()

	var all []AdminItem
	switch category {
	case models.CategoryHerbs:
		for _, h := range filter.Herbs(ds.Herbs, query) {
			all = append(all, AdminItem{ID: h.ID, Title: h.Name + " (" + h.Pinyin + ")", Subtitle: h.Category})
		}
	case models.CategoryFormulas:
		for _, f := range filter.Formulas(ds.Formulas, query) {
			all = append(all, AdminItem{ID: f.ID, Title: f.Name, Subtitle: f.Usage})
		}
	case models.CategoryAcupoints:
		for _, a := range filter.Acupoints(ds.Acupoints, query) {
			all = append(all, AdminItem{ID: a.ID, Title: a.Code + " - " + a.Name, Subtitle: truncate(a.Location, 50)})
		}
	case models.CategoryKnowledge:
		for _, k := range filter.KnowledgePoints(ds.KnowledgePoints, query) {
			all = append(all, AdminItem{ID: k.ID, Title: k.Title, Subtitle: k.Category})
		}
	case models.CategorySkills:
		for _, sk := range filter.Skills(ds.Skills, query) {
			all = append(all, AdminItem{ID: sk.ID, Title: sk.Title, Subtitle: sk.Category})
		}
	default:
		return nil, 0, apperr.ErrBadCategory
	}

	return filter.Page(all, limit, offset), len(all), nil
}

// Form returns the flat editable form for the record with the given id.
func (s *Service) Form(_ context.Context, category models.Category, id string) (transcoder.Form, error) {
	ds := s.store.Snapshot()
	form := transcoder.Form{Category: category}
	switch category {
	case models.CategoryHerbs:
		for _, h := range ds.Herbs {
			if h.ID == id {
				f := transcoder.HerbToForm(h)
				form.Herb = &f
				return form, nil
			}
		}
	case models.CategoryFormulas:
		for _, r := range ds.Formulas {
			if r.ID == id {
				f := transcoder.FormulaToForm(r)
				form.Formula = &f
				return form, nil
			}
		}
	case models.CategoryAcupoints:
		for _, a := range ds.Acupoints {
			if a.ID == id {
				f := transcoder.AcupointToForm(a)
				form.Acupoint = &f
				return form, nil
			}
		}
	case models.CategoryKnowledge:
		for _, k := range ds.KnowledgePoints {
			if k.ID == id {
				f := transcoder.KnowledgeToForm(k)
				form.Knowledge = &f
				return form, nil
			}
		}
	case models.CategorySkills:
		for _, sk := range ds.Skills {
			if sk.ID == id {
				f := transcoder.SkillToForm(sk)
				form.Skill = &f
				return form, nil
			}
		}
	default:
		return transcoder.Form{}, apperr.ErrBadCategory
	}
	return transcoder.Form{}, apperr.ErrNotFound
}

// SaveForm decodes the form and writes the record into the store,
// replacing when existingID names a record and appending otherwise.
// This is the only write path into the store besides dataset reseeding.
func (s *Service) SaveForm(_ context.Context, form transcoder.Form, existingID string) (string, bool, error) {
	existingID = strings.TrimSpace(existingID)

	var (
		id      string
		created bool
	)
	switch form.Category {
	case models.CategoryHerbs:
		if form.Herb == nil {
			return "", false, apperr.ErrBadCategory
		}
		rec := transcoder.HerbFromForm(*form.Herb, existingID)
		created = s.store.UpsertHerb(rec)
		id = rec.ID
	case models.CategoryFormulas:
		if form.Formula == nil {
			return "", false, apperr.ErrBadCategory
		}
		rec := transcoder.FormulaFromForm(*form.Formula, existingID)
		created = s.store.UpsertFormula(rec)
		id = rec.ID
	case models.CategoryAcupoints:
		if form.Acupoint == nil {
			return "", false, apperr.ErrBadCategory
		}
		rec := transcoder.AcupointFromForm(*form.Acupoint, existingID)
		created = s.store.UpsertAcupoint(rec)
		id = rec.ID
	case models.CategoryKnowledge:
		if form.Knowledge == nil {
			return "", false, apperr.ErrBadCategory
		}
		rec := transcoder.KnowledgeFromForm(*form.Knowledge, existingID)
		created = s.store.UpsertKnowledgePoint(rec)
		id = rec.ID
	case models.CategorySkills:
		if form.Skill == nil {
			return "", false, apperr.ErrBadCategory
		}
		rec := transcoder.SkillFromForm(*form.Skill, existingID)
		created = s.store.UpsertSkill(rec)
		id = rec.ID
	default:
		return "", false, apperr.ErrBadCategory
	}

	kind := "updated"
	if created {
		kind = "created"
	}
	s.notify(kind, form.Category, id)
	return id, created, nil
}

// Delete removes the record with the given id from its collection.
// References pointing at it elsewhere are left dangling on purpose.
func (s *Service) Delete(_ context.Context, category models.Category, id string) error {
	var removed bool
	switch category {
	case models.CategoryHerbs:
		removed = s.store.DeleteHerb(id)
	case models.CategoryFormulas:
		removed = s.store.DeleteFormula(id)
	case models.CategoryAcupoints:
		removed = s.store.DeleteAcupoint(id)
	case models.CategoryKnowledge:
		removed = s.store.DeleteKnowledgePoint(id)
	case models.CategorySkills:
		removed = s.store.DeleteSkill(id)
	default:
		return apperr.ErrBadCategory
	}
	if !removed {
		return apperr.ErrNotFound
	}
	s.notify("deleted", category, id)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
