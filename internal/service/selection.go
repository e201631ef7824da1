package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/storage"
	"github.com/Venture-Formations/aiprodaily-sub005/pkg/log"

	"github.com/google/uuid"
)

// SelectToolsForIssue вычисляет и фиксирует отбор промо-инструментов выпуска.
//
// Идемпотентность: отбор вычисляется ровно один раз на выпуск. Повторный вызов
// (или проигрыш гонки конкурентному запуску) возвращает уже зафиксированный
// отбор без повторной рандомизации.
//
// Классификация ошибок:
//   - ошибка чтения настроек — не фатальна: встроенный фолбэк, warning;
//   - пустой пул кандидатов — не ошибка: пустой отбор, warning;
//   - ошибка чтения кандидатов/истории — фатальна, запуск прерывается
//     без частичного состояния;
//   - ошибка пакетной вставки записей — фатальна, выпуск остаётся без отбора
//     и безопасен для ретрая;
//   - ошибка обновления бухгалтерии инструмента — не фатальна, логируется
//     поштучно.
func (s *Service) SelectToolsForIssue(ctx context.Context, issueID, publicationID uuid.UUID) ([]models.PromoTool, error) {
	const op = "service.selection.SelectToolsForIssue"

	if issueID == uuid.Nil || publicationID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	lg := log.From(ctx).With(
		slog.String("issue_id", issueID.String()),
		slog.String("publication_id", publicationID.String()),
	)

	// Идемпотентный короткий путь: отбор уже зафиксирован.
	existing, err := s.storage.SelectionForIssue(ctx, issueID)
	if err != nil {
		lg.Error("selection_precheck_failed", slog.String("op", op), slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(existing) > 0 {
		lg.Info("selection_replayed", slog.String("op", op), slog.Int("tools", len(existing)))
		selectionsTotal.WithLabelValues(outcomeReplayed).Inc()

		return existing, nil
	}

	settings := s.resolveSettings(ctx, publicationID)

	tools, err := s.storage.ActiveTools(ctx, publicationID)
	if err != nil {
		lg.Error("active_tools_failed", slog.String("op", op), slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(tools) == 0 {
		lg.Warn("no_active_tools", slog.String("op", op))
		selectionsTotal.WithLabelValues(outcomeEmpty).Inc()

		return []models.PromoTool{}, nil
	}

	history, err := s.storage.RecentSelectionToolIDs(ctx, publicationID, 2*len(tools))
	if err != nil {
		lg.Error("selection_history_failed", slog.String("op", op), slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	selected := newRun(settings, tools, history, now, s.newRNG()).allocate()
	if len(selected) == 0 {
		lg.Warn("allocation_empty", slog.String("op", op), slog.Int("pool", len(tools)))
		selectionsTotal.WithLabelValues(outcomeEmpty).Inc()

		return []models.PromoTool{}, nil
	}

	records := make([]models.SelectionRecord, 0, len(selected))
	for i, tool := range selected {
		records = append(records, models.SelectionRecord{
			IssueID:    issueID,
			ToolID:     tool.ID,
			Position:   int32(i + 1),
			IsFeatured: tool.IsFeatured,
			SelectedAt: now,
		})
	}

	if err := s.storage.SaveSelection(ctx, issueID, records); err != nil {
		if errors.Is(err, storage.ErrAlreadySelected) {
			// Проигрыш гонки: конкурентный запуск успел первым.
			// Возвращаем его результат — выпуск всё равно получает единственный отбор.
			lg.Info("selection_race_lost", slog.String("op", op))

			winner, readErr := s.storage.SelectionForIssue(ctx, issueID)
			if readErr != nil {
				return nil, fmt.Errorf("%s: reread after race: %w", op, readErr)
			}

			selectionsTotal.WithLabelValues(outcomeReplayed).Inc()

			return winner, nil
		}

		lg.Error("selection_persist_failed", slog.String("op", op), slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Бухгалтерия использования — fire-and-forget относительно фиксации отбора:
	// сбой ухудшает точность будущих циклов/кулдаунов, но не корректность выпуска.
	for _, tool := range selected {
		if err := s.storage.MarkToolUsed(ctx, tool.ID, now); err != nil {
			lg.Warn("mark_tool_used_failed",
				slog.String("op", op),
				slog.String("tool_id", tool.ID.String()),
				slog.String("err", err.Error()),
			)
		}
	}

	selectionsTotal.WithLabelValues(outcomeComputed).Inc()
	slotsFilledTotal.Add(float64(len(selected)))
	for _, tool := range selected {
		if tool.IsAffiliate {
			affiliateSlotsTotal.Inc()
		}
	}

	lg.Info("selection_computed",
		slog.String("op", op),
		slog.Int("tools", len(selected)),
		slog.Int("slots", settings.TotalSlots),
	)

	return selected, nil
}

// SelectionForIssue возвращает зафиксированный отбор выпуска (чистое чтение).
//
// Ошибки:
//   - ErrNotFound — отбор для выпуска ещё не выполнялся;
//   - прочие ошибки стораджа — обёрнутые и прокинутые наверх.
func (s *Service) SelectionForIssue(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, error) {
	const op = "service.selection.SelectionForIssue"

	if issueID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	lg := log.From(ctx)

	if s.cache != nil {
		tools, ok, err := s.cache.Get(ctx, issueID)
		if err != nil {
			// Кэш — ускорение, не источник истины.
			lg.Warn("selection_cache_get_failed", slog.String("op", op), slog.String("err", err.Error()))
		} else if ok {
			return tools, nil
		}
	}

	tools, err := s.storage.SelectionForIssue(ctx, issueID)
	if err != nil {
		lg.Error("selection_read_failed", slog.String("op", op), slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(tools) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	// Отбор после фиксации неизменяем, инвалидация кэша не нужна.
	if s.cache != nil {
		if err := s.cache.Set(ctx, issueID, tools, s.cfg.Redis.TTL); err != nil {
			lg.Warn("selection_cache_set_failed", slog.String("op", op), slog.String("err", err.Error()))
		}
	}

	return tools, nil
}

// resolveSettings читает настройки отбора издания; любая ошибка чтения
// деградирует во встроенный фолбэк (с переопределениями из конфигурации
// сервиса) — запуск из-за настроек не падает.
func (s *Service) resolveSettings(ctx context.Context, publicationID uuid.UUID) models.SelectionSettings {
	const op = "service.selection.resolveSettings"

	settings, err := s.storage.SelectionSettings(ctx, publicationID)
	if err != nil {
		log.From(ctx).Warn("settings_fallback",
			slog.String("op", op),
			slog.String("publication_id", publicationID.String()),
			slog.String("err", err.Error()),
		)

		fallback := models.DefaultSelectionSettings()
		if s.cfg.Selection.TotalSlots > 0 {
			fallback.TotalSlots = s.cfg.Selection.TotalSlots
		}
		if s.cfg.Selection.CooldownDays >= 0 {
			fallback.AffiliateCooldownDays = s.cfg.Selection.CooldownDays
		}

		return fallback
	}

	return *settings
}
