package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/service"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/transport/http/apierr"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// selectRequest — тело POST /v1/issues/{issue_id}/selection.
type selectRequest struct {
	PublicationID string `json:"publication_id"`
}

// SelectForIssue запускает отбор инструментов для выпуска.
// Идемпотентен: повторный POST возвращает уже зафиксированный отбор.
func (h *Handlers) SelectForIssue(w http.ResponseWriter, r *http.Request) {
	issueID, err := uuid.Parse(chi.URLParam(r, "issue_id"))
	if err != nil {
		apierr.WriteError(w, r, fmt.Errorf("bad issue_id: %w", service.ErrInvalidArgument))
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, r, fmt.Errorf("bad body: %w", service.ErrInvalidArgument))
		return
	}

	publicationID, err := uuid.Parse(req.PublicationID)
	if err != nil {
		apierr.WriteError(w, r, fmt.Errorf("bad publication_id: %w", service.ErrInvalidArgument))
		return
	}

	tools, err := h.Service.SelectToolsForIssue(r.Context(), issueID, publicationID)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSelectionResponse(issueID, tools))
}

// GetSelection возвращает зафиксированный отбор выпуска.
// 404, если отбор ещё не выполнялся.
func (h *Handlers) GetSelection(w http.ResponseWriter, r *http.Request) {
	issueID, err := uuid.Parse(chi.URLParam(r, "issue_id"))
	if err != nil {
		apierr.WriteError(w, r, fmt.Errorf("bad issue_id: %w", service.ErrInvalidArgument))
		return
	}

	tools, err := h.Service.SelectionForIssue(r.Context(), issueID)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSelectionResponse(issueID, tools))
}
