// storage определяет контракты доступа к БД для promo-service.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadySelected — отбор для выпуска уже зафиксирован (конкурентный
	// победитель успел раньше). Вызывающий должен перечитать готовый отбор.
	ErrAlreadySelected = errors.New("selection already exists")
)

// ToolsStorage описывает операции над сущностью models.PromoTool.
type ToolsStorage interface {
	// ActiveTools возвращает все активные инструменты издания.
	// Пустой результат — валидный ответ, не ошибка.
	ActiveTools(ctx context.Context, publicationID uuid.UUID) ([]models.PromoTool, error)
	// MarkToolUsed обновляет бухгалтерию использования инструмента:
	// last_used_at = usedAt, times_used += 1. Вызывается один раз на инструмент
	// за успешный отбор. ErrNotFound, если инструмент исчез из каталога.
	MarkToolUsed(ctx context.Context, toolID uuid.UUID, usedAt time.Time) error
}

// SettingsStorage описывает чтение настроек отбора издания.
type SettingsStorage interface {
	// SelectionSettings возвращает настройки отбора из key/value-хранилища издания.
	// ErrNotFound, если для издания нет ни одного ключа.
	SelectionSettings(ctx context.Context, publicationID uuid.UUID) (*models.SelectionSettings, error)
}

// SelectionsStorage описывает операции над записями отбора.
type SelectionsStorage interface {
	// SelectionForIssue возвращает инструменты выпуска в порядке позиций.
	// Пустой срез означает, что отбор для выпуска ещё не выполнялся.
	SelectionForIssue(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, error)
	// RecentSelectionToolIDs возвращает не более limit последних идентификаторов
	// инструментов из истории отборов издания (от новых к старым). Ограниченное
	// окно, не вся история.
	RecentSelectionToolIDs(ctx context.Context, publicationID uuid.UUID, limit int) ([]uuid.UUID, error)
	// SaveSelection атомарно фиксирует отбор выпуска одной пачкой.
	// Если записи для выпуска уже существуют (в т.ч. вставленные конкурентом
	// между проверкой и вставкой) — ErrAlreadySelected, частичные строки
	// не остаются.
	SaveSelection(ctx context.Context, issueID uuid.UUID, records []models.SelectionRecord) error
}

// Storage задаёт контракт доступа к хранилищу для promo-сервиса.
type Storage interface {
	ToolsStorage
	SettingsStorage
	SelectionsStorage
	Close()
}
