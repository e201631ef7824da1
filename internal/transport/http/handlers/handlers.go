// handlers содержит REST-обработчики promo-service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"

	"github.com/google/uuid"
)

// SelectionService — контракт сервисного слоя, нужный HTTP-обработчикам.
type SelectionService interface {
	// SelectToolsForIssue вычисляет (или возвращает готовый) отбор выпуска.
	SelectToolsForIssue(ctx context.Context, issueID, publicationID uuid.UUID) ([]models.PromoTool, error)
	// SelectionForIssue — чистое чтение зафиксированного отбора.
	SelectionForIssue(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, error)
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Service SelectionService
}

// New создаёт набор обработчиков поверх сервисного слоя.
func New(svc SelectionService) *Handlers {
	return &Handlers{Service: svc}
}

// toolResponse — представление инструмента в ответах API.
type toolResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	IsAffiliate bool       `json:"is_affiliate"`
	IsFeatured  bool       `json:"is_featured"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	TimesUsed   int32      `json:"times_used"`
}

// selectionResponse — ответ обоих эндпойнтов отбора: инструменты в порядке слотов.
type selectionResponse struct {
	IssueID string         `json:"issue_id"`
	Tools   []toolResponse `json:"tools"`
}

func toSelectionResponse(issueID uuid.UUID, tools []models.PromoTool) selectionResponse {
	resp := selectionResponse{
		IssueID: issueID.String(),
		Tools:   make([]toolResponse, 0, len(tools)),
	}

	for _, tool := range tools {
		resp.Tools = append(resp.Tools, toolResponse{
			ID:          tool.ID.String(),
			Name:        tool.Name,
			Category:    tool.Category.String(),
			IsAffiliate: tool.IsAffiliate,
			IsFeatured:  tool.IsFeatured,
			LastUsedAt:  tool.LastUsedAt,
			TimesUsed:   tool.TimesUsed,
		})
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
