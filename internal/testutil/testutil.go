// Package testutil provides shared test helpers for setting up seeded
// stores and catalog services.
package testutil

import (
	"context"
	"testing"

	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/models"
	"github.com/starford/lingshu/internal/store"
)

// SeededStore creates a store loaded with the built-in study dataset.
func SeededStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.Seed())
}

// SeededService creates a catalog service over the built-in dataset.
// Mutation events are appended to the returned slice.
func SeededService(t *testing.T) (*catalog.Service, *[]Event) {
	t.Helper()
	var events []Event
	svc := catalog.NewService(SeededStore(t), func(kind string, category models.Category, id string) {
		events = append(events, Event{Kind: kind, Category: category, ID: id})
	})
	return svc, &events
}

// Event records one catalog mutation notification.
type Event struct {
	Kind     string
	Category models.Category
	ID       string
}

// StaticAsker is a relay stub that returns a fixed answer and records
// the last question it was asked.
type StaticAsker struct {
	Answer    string
	LastQuery string
	LastCtx   string
}

func (a *StaticAsker) Ask(_ context.Context, query, contextBlock string) string {
	a.LastQuery = query
	a.LastCtx = contextBlock
	return a.Answer
}
