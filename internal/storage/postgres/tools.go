package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/storage"

	"github.com/google/uuid"
)

// ActiveTools возвращает все активные инструменты издания.
// Сортировка фиксирована (created_at, id) — детерминированный порядок пула,
// сам отбор рандомизируется выше по стеку.
func (s *Storage) ActiveTools(ctx context.Context, publicationID uuid.UUID) ([]models.PromoTool, error) {
	const op = "storage.postgres.ActiveTools"

	rows, err := s.db.Query(ctx, `
	SELECT id, publication_id, name, category, is_affiliate, is_active, is_featured, last_used_at, times_used, created_at
	FROM promo_tools
	WHERE publication_id = $1 AND is_active
	ORDER BY created_at, id
	`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tools []models.PromoTool
	for rows.Next() {
		tool, scanErr := scanTool(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		tools = append(tools, tool)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return tools, nil
}

// MarkToolUsed обновляет бухгалтерию использования инструмента.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) MarkToolUsed(ctx context.Context, toolID uuid.UUID, usedAt time.Time) error {
	const op = "storage.postgres.MarkToolUsed"

	tag, err := s.db.Exec(ctx, `
	UPDATE promo_tools
	SET last_used_at = $2, times_used = times_used + 1
	WHERE id = $1
	`, toolID, usedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// scanTool — общий скан строки promo_tools; нормализует метки времени в UTC
// и категорию в закрытый перечень.
func scanTool(scan func(dest ...any) error) (models.PromoTool, error) {
	var (
		tool     models.PromoTool
		category string
		lastUsed *time.Time
	)

	if err := scan(
		&tool.ID,
		&tool.PublicationID,
		&tool.Name,
		&category,
		&tool.IsAffiliate,
		&tool.IsActive,
		&tool.IsFeatured,
		&lastUsed,
		&tool.TimesUsed,
		&tool.CreatedAt,
	); err != nil {
		return models.PromoTool{}, err
	}

	tool.Category = models.ParseCategory(category)
	tool.CreatedAt = tool.CreatedAt.UTC()
	if lastUsed != nil {
		t := lastUsed.UTC()
		tool.LastUsedAt = &t
	}

	return tool, nil
}
