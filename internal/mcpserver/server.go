// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Lingshu catalog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/models"
	"github.com/starford/lingshu/internal/quiz"
	"github.com/starford/lingshu/internal/relay"
)

// Server wraps the MCP server with Lingshu tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *catalog.Service
	asker relay.Asker
}

// New creates a new MCP server with all Lingshu tools registered.
func New(svc *catalog.Service, asker relay.Asker) *Server {
	s := &Server{svc: svc, asker: asker}

	s.mcp = server.NewMCPServer(
		"Lingshu",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_catalog",
		mcp.WithDescription("Search one catalog collection by substring. "+
			"Chinese fields match case-sensitively, pinyin and acupoint codes ignore case."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Collection to search: herbs, formulas, acupoints, knowledge, or skills")),
		mcp.WithString("query", mcp.Description("Substring filter (empty returns the whole collection)")),
	), s.searchCatalog)

	s.mcp.AddTool(mcp.NewTool("get_formula",
		mcp.WithDescription("Fetch one formula with its full ingredient list by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Formula id")),
	), s.getFormula)

	s.mcp.AddTool(mcp.NewTool("generate_quiz",
		mcp.WithDescription("Generate a randomized question set sampled across all catalog collections."),
		mcp.WithNumber("size", mcp.Description("Number of questions (default 10, clamped to the catalog size)")),
	), s.generateQuiz)

	s.mcp.AddTool(mcp.NewTool("ask_expert",
		mcp.WithDescription("Ask the AI study expert a free-form question about traditional Chinese medicine."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to ask")),
		mcp.WithString("context", mcp.Description("Optional study context to ground the answer")),
	), s.askExpert)

	// Resource: the collection names the tools accept and their
	// searchable fields.
	s.mcp.AddResource(
		mcp.NewResource("lingshu://categories", "Catalog Categories",
			mcp.WithResourceDescription("The catalog collection names accepted by search_catalog, with their searchable fields."),
			mcp.WithMIMEType("text/plain"),
		),
		s.readCategoriesResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", raw)), nil
	}
	query := ""
	if q, qerr := req.RequireString("query"); qerr == nil {
		query = q
	}

	var items any
	switch category {
	case models.CategoryHerbs:
		items = s.svc.Herbs(ctx, query)
	case models.CategoryFormulas:
		items = s.svc.Formulas(ctx, query)
	case models.CategoryAcupoints:
		items = s.svc.Acupoints(ctx, query)
	case models.CategoryKnowledge:
		items = s.svc.KnowledgePoints(ctx, query)
	case models.CategorySkills:
		items = s.svc.Skills(ctx, query)
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getFormula(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := s.svc.Formula(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(f, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) generateQuiz(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size := 0
	if n, err := req.RequireFloat("size"); err == nil {
		size = int(n)
	}
	items := quiz.Generate(s.svc.Dataset(ctx), size)
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) askExpert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextBlock := ""
	if c, cerr := req.RequireString("context"); cerr == nil {
		contextBlock = c
	}
	return mcp.NewToolResultText(s.asker.Ask(ctx, question, contextBlock)), nil
}

// searchableFields documents, per collection, the fields search_catalog
// matches against. Pinyin and acupoint codes ignore case; the rest
// match byte-wise.
var searchableFields = map[models.Category]string{
	models.CategoryHerbs:     "name, pinyin, category, nature, effect descriptions",
	models.CategoryFormulas:  "name, pinyin, category, functions, ingredient names",
	models.CategoryAcupoints: "name, code, location, functions, indications",
	models.CategoryKnowledge: "title, content, category",
	models.CategorySkills:    "title, description, category",
}

func (s *Server) readCategoriesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	lines := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		lines[i] = string(c) + ": " + searchableFields[c]
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "lingshu://categories",
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		},
	}, nil
}
