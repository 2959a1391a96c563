package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/lingshu/internal/apperr"
	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/models"
	"github.com/starford/lingshu/internal/quiz"
	"github.com/starford/lingshu/internal/relay"
)

// Handler holds API route handlers.
type Handler struct {
	svc   *catalog.Service
	asker relay.Asker
}

// NewHandler creates a new Handler.
func NewHandler(svc *catalog.Service, asker relay.Asker) *Handler {
	return &Handler{svc: svc, asker: asker}
}

func requestCategory(r *http.Request) (models.Category, error) {
	return models.ParseCategory(chi.URLParam(r, "category"))
}

// ListCategory handles GET /api/{category}.
//
//	@Summary		List records in a category with optional filtering
//	@Tags			catalog
//	@Produce		json
//	@Param			category	path		string	true	"Collection name"	Enums(herbs, formulas, acupoints, knowledge, skills)
//	@Param			q			query		string	false	"Substring filter"
//	@Success		200			{object}	map[string]any
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/{category} [get]
func (h *Handler) ListCategory(w http.ResponseWriter, r *http.Request) {
	category, err := requestCategory(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown category"))
		return
	}
	q := r.URL.Query().Get("q")

	var items any
	switch category {
	case models.CategoryHerbs:
		items = h.svc.Herbs(r.Context(), q)
	case models.CategoryFormulas:
		items = h.svc.Formulas(r.Context(), q)
	case models.CategoryAcupoints:
		items = h.svc.Acupoints(r.Context(), q)
	case models.CategoryKnowledge:
		items = h.svc.KnowledgePoints(r.Context(), q)
	case models.CategorySkills:
		items = h.svc.Skills(r.Context(), q)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}

// AdminList handles GET /api/admin/{category}.
//
//	@Summary		Paginated admin listing for a category
//	@Tags			admin
//	@Produce		json
//	@Param			category	path		string	true	"Collection name"
//	@Param			q			query		string	false	"Substring filter"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	AdminListResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/{category} [get]
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	category, err := requestCategory(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown category"))
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.svc.AdminSearch(r.Context(), category, q.Get("q"), limit, offset)
	if err != nil {
		slog.Error("admin search failed", slog.String("category", string(category)), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

// GetForm handles GET /api/admin/{category}/{id}/form.
//
//	@Summary		Get the editable form for a record
//	@Tags			admin
//	@Produce		json
//	@Param			category	path		string	true	"Collection name"
//	@Param			id			path		string	true	"Record id"
//	@Success		200			{object}	SaveRequest
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/{category}/{id}/form [get]
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	category, err := requestCategory(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown category"))
		return
	}
	id := chi.URLParam(r, "id")
	form, err := h.svc.Form(r.Context(), category, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get form failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// CreateRecord handles POST /api/admin/{category}.
//
//	@Summary		Create a record from a form payload
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			category	path		string		true	"Collection name"
//	@Param			body		body		SaveRequest	true	"Form payload"
//	@Success		201			{object}	SaveResponse
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/{category} [post]
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// UpdateRecord handles PUT /api/admin/{category}/{id}.
//
//	@Summary		Update a record from a form payload
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			category	path		string		true	"Collection name"
//	@Param			id			path		string		true	"Record id"
//	@Param			body		body		SaveRequest	true	"Form payload"
//	@Success		200			{object}	SaveResponse
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/{category}/{id} [put]
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, existingID string) {
	category, err := requestCategory(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown category"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var form SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	// The URL, not the body, decides which collection is written.
	form.Category = category

	id, created, err := h.svc.SaveForm(r.Context(), form, existingID)
	if err != nil {
		if errors.Is(err, apperr.ErrBadCategory) {
			writeJSON(w, http.StatusBadRequest, errorBody("form does not match category"))
		} else {
			slog.Error("save failed", slog.String("category", string(category)), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, SaveResponse{ID: id, Created: created})
}

// DeleteRecord handles DELETE /api/admin/{category}/{id}.
//
//	@Summary		Delete a record
//	@Tags			admin
//	@Param			category	path	string	true	"Collection name"
//	@Param			id			path	string	true	"Record id"
//	@Success		204			"Record deleted"
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/{category}/{id} [delete]
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	category, err := requestCategory(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown category"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), category, id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateQuiz handles POST /api/quiz.
//
//	@Summary		Generate a randomized question set from the catalog
//	@Tags			quiz
//	@Accept			json
//	@Produce		json
//	@Param			body	body		QuizRequest	false	"Quiz options"
//	@Success		200		{object}	QuizResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/quiz [post]
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}
	items := quiz.Generate(h.svc.Dataset(r.Context()), req.Size)
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}

// Ask handles POST /api/ask.
//
//	@Summary		Ask the AI study expert a question
//	@Tags			ask
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AskRequest	true	"Question and optional context"
//	@Success		200		{object}	AskResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query is required"))
		return
	}
	// Backend failures surface as a canned answer, never an error status.
	answer := h.asker.Ask(r.Context(), req.Query, req.Context)
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}
