// Package relay forwards free-form questions to the Gemini API with a
// fixed TCM-expert persona.
//
// The relay never surfaces an error to its callers: any failure
// (missing credential, transport error, remote error response) is
// logged and converted into a fixed human-readable fallback answer, so
// the worst case for the chat surface is a degraded reply, never a
// crash.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"google.golang.org/genai"
)

var errMissingKey = errors.New("relay: " + APIKeyEnv + " is not set")

// APIKeyEnv is the environment variable holding the Gemini credential.
const APIKeyEnv = "GEMINI_API_KEY"

// DefaultModel is the generation model used when config leaves it empty.
const DefaultModel = "gemini-3-flash-preview"

const systemInstruction = `你是一位经验丰富的中医大师（灵枢）。
你的目标是帮助学生理解中医理论、中药、方剂、针灸和临床技能。
回答要权威且通俗易懂，适当使用比喻。
如果用户咨询医疗建议，请提供中医视角的分析，但必须包含免责声明，建议就医。
请使用 Markdown 格式回答，所有回答必须使用简体中文。`

// FallbackAnswer is returned on any relay failure.
const FallbackAnswer = "与智慧源泉的连接暂时中断，请检查您的 API 密钥。"

// EmptyAnswer is returned when the model responds with no text.
const EmptyAnswer = "大师正在入定中（无回应）。"

// Asker is the query interface the API and MCP layers depend on.
type Asker interface {
	Ask(ctx context.Context, query, contextBlock string) string
}

// Relay is the Gemini-backed Asker.
type Relay struct {
	model  string
	logger *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// New creates a relay for the given model. A missing credential is
// tolerated here: it logs a warning and surfaces later as the fallback
// answer, not as a startup failure. The credential is re-read from the
// environment on each ask, so a key exported after startup is picked
// up without a restart.
func New(model string, logger *slog.Logger) *Relay {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	if os.Getenv(APIKeyEnv) == "" {
		logger.Warn("relay: API key is missing, AI features will not work",
			slog.String("env", APIKeyEnv))
	}
	return &Relay{model: model, logger: logger}
}

// Ask sends the query, optionally prefixed with a context block, to the
// model under the fixed persona and returns the response text verbatim.
func (r *Relay) Ask(ctx context.Context, query, contextBlock string) string {
	client, err := r.getClient(ctx)
	if err != nil {
		r.logger.Error("relay: client init failed", slog.String("error", err.Error()))
		return FallbackAnswer
	}

	prompt := query
	if contextBlock != "" {
		prompt = "上下文信息: " + contextBlock + "\n\n问题: " + query
	}

	resp, err := client.Models.GenerateContent(ctx, r.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		r.logger.Error("relay: generate failed", slog.String("error", err.Error()))
		return FallbackAnswer
	}

	text := resp.Text()
	if text == "" {
		return EmptyAnswer
	}
	return text
}

// getClient lazily builds the genai client. Construction is deferred to
// the first ask so the credential is read at call time.
func (r *Relay) getClient(ctx context.Context) (*genai.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, errMissingKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	r.client = client
	return client, nil
}
