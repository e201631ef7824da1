// models содержит доменные сущности движка отбора промо-инструментов.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PromoTool — доменная сущность промо-инструмента (кандидата на слот выпуска).
//
// Особенности:
//   - ID — UUIDv4;
//   - Временные метки — в UTC;
//   - Движок мутирует только LastUsedAt и TimesUsed (ровно один раз
//     на инструмент за успешный отбор), остальное ведёт внешний каталог.
type PromoTool struct {
	// ID — уникальный идентификатор инструмента.
	ID uuid.UUID
	// PublicationID - издание, которому принадлежит инструмент.
	PublicationID uuid.UUID
	// Name - отображаемое название инструмента.
	Name string
	// Category - категория инструмента (закрытый перечень, Unknown как фолбэк).
	Category Category
	// IsAffiliate - монетизируемый инструмент; участвует в отборе с весом 3x
	// и подчиняется кулдауну вместо циклического исчерпания.
	IsAffiliate bool
	// IsActive - только активные инструменты попадают в пул кандидатов.
	IsActive bool
	// IsFeatured - признак «выделенного» инструмента; снимок попадает в запись отбора.
	IsFeatured bool
	// LastUsedAt - время последнего попадания в выпуск; nil — никогда не использовался.
	LastUsedAt *time.Time
	// TimesUsed - счётчик попаданий в выпуски.
	TimesUsed int32
	// CreatedAt - время создания записи в каталоге (UTC).
	CreatedAt time.Time
}

// CategoryQuota — пара «категория, квота» из настроек издания.
// Квота 0 означает filler-категорию: она не получает гарантированных слотов
// и участвует только в добивке остатка.
type CategoryQuota struct {
	Category Category
	Quota    int
}

// SelectionSettings — настройки отбора для издания.
type SelectionSettings struct {
	// TotalSlots - итоговое число слотов в выпуске.
	TotalSlots int
	// Quotas - упорядоченный список квот по категориям.
	// Сумма ненулевых квот может быть меньше, равна или больше TotalSlots.
	Quotas []CategoryQuota
	// AffiliateCooldownDays - длина кулдауна аффилиатов в днях.
	AffiliateCooldownDays int
}

// Встроенные значения по умолчанию: применяются при любой ошибке чтения настроек.
const (
	DefaultTotalSlots            = 6
	DefaultAffiliateCooldownDays = 7
)

// DefaultSelectionSettings возвращает встроенный фолбэк настроек.
// Квоты по одному слоту на Payroll и HR, остальные категории — filler.
func DefaultSelectionSettings() SelectionSettings {
	return SelectionSettings{
		TotalSlots: DefaultTotalSlots,
		Quotas: []CategoryQuota{
			{Category: CategoryPayroll, Quota: 1},
			{Category: CategoryHR, Quota: 1},
			{Category: CategoryRecruiting, Quota: 0},
			{Category: CategoryBenefits, Quota: 0},
			{Category: CategoryCompliance, Quota: 0},
			{Category: CategoryProductivity, Quota: 0},
		},
		AffiliateCooldownDays: DefaultAffiliateCooldownDays,
	}
}

// SelectionRecord — запись отбора: инструмент, закреплённый за слотом выпуска.
//
// Записи создаются один раз на выпуск и далее не мутируются; это append-only
// история, из которой будущие запуски читают состояние циклов.
type SelectionRecord struct {
	// IssueID - идентификатор выпуска.
	IssueID uuid.UUID
	// ToolID - идентификатор инструмента.
	ToolID uuid.UUID
	// Position - порядковый номер слота (с 1).
	Position int32
	// IsFeatured - снимок признака featured на момент отбора.
	IsFeatured bool
	// SelectedAt - время фиксации отбора (UTC).
	SelectedAt time.Time
}
