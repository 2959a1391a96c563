package relay

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAskWithoutCredentialFallsBack(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	r := New("", quietLogger())
	got := r.Ask(context.Background(), "什么是八纲辨证？", "")
	if got != FallbackAnswer {
		t.Errorf("Ask without credential = %q, want fallback", got)
	}
}

func TestNewDefaultsModel(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	r := New("", quietLogger())
	if r.model != DefaultModel {
		t.Errorf("model = %q, want %q", r.model, DefaultModel)
	}
}

func TestCredentialIsReadPerAsk(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	r := New(DefaultModel, quietLogger())

	// First ask: no key, so the client is never built and the relay
	// degrades to the fallback.
	if got := r.Ask(context.Background(), "q", ""); got != FallbackAnswer {
		t.Fatalf("first ask = %q, want fallback", got)
	}
	if r.client != nil {
		t.Error("client should not be constructed without a credential")
	}
}
