// Package store holds the five in-memory catalog collections.
//
// All state lives in memory and is discarded on process exit. Every
// mutation replaces the affected collection wholesale (copy-on-write at
// collection granularity), so a snapshot handed to a reader is never
// mutated underneath it. An RWMutex guards the swap because HTTP
// handlers read concurrently.
package store

import (
	"sync"

	"github.com/starford/lingshu/internal/models"
)

// Store is the in-memory entity store.
type Store struct {
	mu   sync.RWMutex
	data models.Dataset
}

// New creates a store seeded with the given dataset.
func New(seed models.Dataset) *Store {
	s := &Store{}
	s.Reset(seed)
	return s
}

// Snapshot returns a consistent copy of all five collections. The
// returned slices are private to the caller.
func (s *Store) Snapshot() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Dataset{
		Herbs:           cloneSlice(s.data.Herbs),
		Formulas:        cloneSlice(s.data.Formulas),
		Acupoints:       cloneSlice(s.data.Acupoints),
		KnowledgePoints: cloneSlice(s.data.KnowledgePoints),
		Skills:          cloneSlice(s.data.Skills),
	}
}

// Reset replaces all collections at once. Used at seeding and when a
// dataset override file is reloaded.
func (s *Store) Reset(ds models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = models.Dataset{
		Herbs:           cloneSlice(ds.Herbs),
		Formulas:        cloneSlice(ds.Formulas),
		Acupoints:       cloneSlice(ds.Acupoints),
		KnowledgePoints: cloneSlice(ds.KnowledgePoints),
		Skills:          cloneSlice(ds.Skills),
	}
}

// UpsertHerb replaces the herb with the same id in place, or appends
// when the id is new. Reports whether a new record was created.
func (s *Store) UpsertHerb(h models.Herb) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created bool
	s.data.Herbs, created = upsert(s.data.Herbs, func(r models.Herb) string { return r.ID }, h)
	return created
}

// DeleteHerb removes the herb with the given id. Reports whether a
// record was removed.
func (s *Store) DeleteHerb(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.data.Herbs, removed = remove(s.data.Herbs, func(r models.Herb) string { return r.ID }, id)
	return removed
}

// UpsertFormula replaces or appends a formula.
func (s *Store) UpsertFormula(f models.Formula) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created bool
	s.data.Formulas, created = upsert(s.data.Formulas, func(r models.Formula) string { return r.ID }, f)
	return created
}

// DeleteFormula removes a formula by id. Herb effects referencing it
// are left untouched; dangling references degrade at render time.
func (s *Store) DeleteFormula(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.data.Formulas, removed = remove(s.data.Formulas, func(r models.Formula) string { return r.ID }, id)
	return removed
}

// UpsertAcupoint replaces or appends an acupoint.
func (s *Store) UpsertAcupoint(a models.Acupoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created bool
	s.data.Acupoints, created = upsert(s.data.Acupoints, func(r models.Acupoint) string { return r.ID }, a)
	return created
}

// DeleteAcupoint removes an acupoint by id.
func (s *Store) DeleteAcupoint(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.data.Acupoints, removed = remove(s.data.Acupoints, func(r models.Acupoint) string { return r.ID }, id)
	return removed
}

// UpsertKnowledgePoint replaces or appends a knowledge point.
func (s *Store) UpsertKnowledgePoint(k models.KnowledgePoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created bool
	s.data.KnowledgePoints, created = upsert(s.data.KnowledgePoints, func(r models.KnowledgePoint) string { return r.ID }, k)
	return created
}

// DeleteKnowledgePoint removes a knowledge point by id.
func (s *Store) DeleteKnowledgePoint(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.data.KnowledgePoints, removed = remove(s.data.KnowledgePoints, func(r models.KnowledgePoint) string { return r.ID }, id)
	return removed
}

// UpsertSkill replaces or appends a skill.
func (s *Store) UpsertSkill(sk models.Skill) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created bool
	s.data.Skills, created = upsert(s.data.Skills, func(r models.Skill) string { return r.ID }, sk)
	return created
}

// DeleteSkill removes a skill by id.
func (s *Store) DeleteSkill(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.data.Skills, removed = remove(s.data.Skills, func(r models.Skill) string { return r.ID }, id)
	return removed
}

// upsert returns a new slice where the record with a matching id is
// replaced at its original position, preserving insertion order; an
// unmatched id appends. The input slice is never mutated.
func upsert[T any](list []T, id func(T) string, rec T) ([]T, bool) {
	target := id(rec)
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	for i := range out {
		if id(out[i]) == target {
			out[i] = rec
			return out, false
		}
	}
	return append(out, rec), true
}

// remove returns a new slice without the record whose id matches.
func remove[T any](list []T, id func(T) string, target string) ([]T, bool) {
	out := make([]T, 0, len(list))
	removed := false
	for _, r := range list {
		if id(r) == target {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out, removed
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
