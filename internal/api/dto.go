package api

import (
	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/quiz"
	"github.com/starford/lingshu/internal/transcoder"
)

// HerbView is the herb browse model (aliased from the domain layer).
type HerbView = catalog.HerbView

// AcupointView is the acupoint browse model (aliased from the domain layer).
type AcupointView = catalog.AcupointView

// AdminItem is a row in the admin listing (aliased from the domain layer).
type AdminItem = catalog.AdminItem

// AdminListResponse wraps paginated admin listings.
type AdminListResponse struct {
	Items []AdminItem `json:"items" validate:"required"`
	Total int         `json:"total" example:"42" validate:"required"`
}

// SaveRequest is the request body for creating or updating a record.
// Exactly one of the per-category form fields must be set, matching Category.
type SaveRequest = transcoder.Form

// SaveResponse is returned after a successful save.
type SaveResponse struct {
	ID      string `json:"id" example:"1717406096000000000" validate:"required"`
	Created bool   `json:"created" example:"true" validate:"required"`
}

// QuizRequest is the request body for generating a quiz.
type QuizRequest struct {
	Size int `json:"size,omitempty" example:"10"`
}

// QuizResponse wraps a generated question set.
type QuizResponse struct {
	Items []quiz.Item `json:"items" validate:"required"`
}

// AskRequest is the request body for querying the AI expert.
type AskRequest struct {
	Query   string `json:"query" example:"桂枝汤和麻黄汤的区别？" validate:"required"`
	Context string `json:"context,omitempty" example:"当前正在学习方剂学"`
}

// AskResponse wraps the expert's answer. A degraded backend still
// produces an answer string, never an error.
type AskResponse struct {
	Answer string `json:"answer" validate:"required"`
}
