package postgres

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SelectionForIssue возвращает инструменты выпуска в порядке позиций.
// Пустой срез — отбор для выпуска ещё не выполнялся (не ошибка).
func (s *Storage) SelectionForIssue(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, error) {
	const op = "storage.postgres.SelectionForIssue"

	rows, err := s.db.Query(ctx, `
	SELECT t.id, t.publication_id, t.name, t.category, t.is_affiliate, t.is_active, t.is_featured, t.last_used_at, t.times_used, t.created_at
	FROM issue_selections s
	JOIN promo_tools t ON t.id = s.tool_id
	WHERE s.issue_id = $1
	ORDER BY s.position
	`, issueID)
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

// RecentSelectionToolIDs возвращает не более limit последних идентификаторов
// инструментов из истории отборов издания (от новых к старым).
func (s *Storage) RecentSelectionToolIDs(ctx context.Context, publicationID uuid.UUID, limit int) ([]uuid.UUID, error) {
	const op = "storage.postgres.RecentSelectionToolIDs"

	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
	SELECT s.tool_id
	FROM issue_selections s
	JOIN promo_tools t ON t.id = s.tool_id
	WHERE t.publication_id = $1
	ORDER BY s.selected_at DESC, s.position DESC
	LIMIT $2
	`, publicationID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return ids, nil
}

// SaveSelection атомарно фиксирует отбор выпуска одной пачкой.
//
// Защита от гонки двух конкурентных запусков по одному выпуску:
//   - транзакционный advisory-лок по issue_id сериализует запуски;
//   - повторная проверка существующих записей уже под локом;
//   - уникальный индекс (issue_id, tool_id) — последний рубеж: нарушение
//     маппится в storage.ErrAlreadySelected, транзакция откатывается целиком.
func (s *Storage) SaveSelection(ctx context.Context, issueID uuid.UUID, records []models.SelectionRecord) error {
	const op = "storage.postgres.SaveSelection"

	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, issueLockKey(issueID)); err != nil {
		return fmt.Errorf("%s: advisory lock: %w", op, err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM issue_selections WHERE issue_id = $1)
	`, issueID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: recheck: %w", op, err)
	}
	if exists {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadySelected)
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
		INSERT INTO issue_selections (issue_id, tool_id, position, is_featured, selected_at)
		VALUES ($1, $2, $3, $4, $5)
		`, rec.IssueID, rec.ToolID, rec.Position, rec.IsFeatured, rec.SelectedAt.UTC())
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()

			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return fmt.Errorf("%s: batch item %d: %w", op, i, storage.ErrAlreadySelected)
			}

			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: batch close: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// issueLockKey сводит UUID выпуска к int64-ключу advisory-лока.
// Усечение до первых 8 байт достаточно: коллизия ключей лишь сериализует
// посторонние запуски, корректность не страдает.
func issueLockKey(issueID uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(issueID[:8]))
}
