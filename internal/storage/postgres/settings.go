package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/storage"

	"github.com/google/uuid"
)

// Ключи key/value-хранилища настроек издания.
const (
	settingTotalSlots     = "total_slots"
	settingCooldownDays   = "affiliate_cooldown_days"
	settingCategoryQuotas = "category_quotas"
)

// SelectionSettings возвращает настройки отбора издания из key/value-таблицы.
//
// Поведение:
//   - нет ни одного ключа — storage.ErrNotFound;
//   - отсутствующий ключ берётся из встроенных значений по умолчанию;
//   - кривое значение любого ключа — ошибка целиком (вызывающий уходит
//     на встроенный фолбэк).
func (s *Storage) SelectionSettings(ctx context.Context, publicationID uuid.UUID) (*models.SelectionSettings, error) {
	const op = "storage.postgres.SelectionSettings"

	rows, err := s.db.Query(ctx, `
	SELECT key, value
	FROM publication_settings
	WHERE publication_id = $1
	`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if scanErr := rows.Scan(&k, &v); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}
		kv[k] = v
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	if len(kv) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	settings := models.DefaultSelectionSettings()

	if v, ok := kv[settingTotalSlots]; ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(v))
		if convErr != nil || n <= 0 {
			return nil, fmt.Errorf("%s: bad %s value %q", op, settingTotalSlots, v)
		}
		settings.TotalSlots = n
	}

	if v, ok := kv[settingCooldownDays]; ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(v))
		if convErr != nil || n < 0 {
			return nil, fmt.Errorf("%s: bad %s value %q", op, settingCooldownDays, v)
		}
		settings.AffiliateCooldownDays = n
	}

	if v, ok := kv[settingCategoryQuotas]; ok {
		quotas, parseErr := parseCategoryQuotas(v)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", op, parseErr)
		}
		settings.Quotas = quotas
	}

	return &settings, nil
}

// parseCategoryQuotas разбирает упорядоченный список квот вида
// "Payroll:1,HR:1,Recruiting:0". Порядок пар сохраняется — он задаёт
// порядок обхода категорий аллокатором.
func parseCategoryQuotas(raw string) ([]models.CategoryQuota, error) {
	parts := strings.Split(raw, ",")
	quotas := make([]models.CategoryQuota, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("bad category quota entry %q", part)
		}

		quota, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || quota < 0 {
			return nil, fmt.Errorf("bad quota in entry %q", part)
		}

		quotas = append(quotas, models.CategoryQuota{
			Category: models.ParseCategory(strings.TrimSpace(name)),
			Quota:    quota,
		})
	}

	if len(quotas) == 0 {
		return nil, fmt.Errorf("empty category quota list %q", raw)
	}

	return quotas, nil
}
