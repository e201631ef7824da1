package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Файл unit-тестов движка ротации (rotation.go).
//
// Покрываем ключевые гарантии:
//  - selectOne: вес 3:1 для аффилиатов; исключение кулдауна; фолбэк без
//    нарушения кулдауна; nil на пустом пуле;
//  - inCooldown: целодневная гранулярность, аффилиаты-only, nil last_used;
//  - unusedForCategory: правило цикла, перезапуск цикла, исключение уже
//    выбранных этим запуском;
//  - allocate: точное число слотов, отсутствие дублей, переполнение квот,
//    цикл из трёх выпусков без повторов, последний рубеж, сценарий из
//    настроек Payroll/HR.

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

var testNow = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

// makeTool — фабрика инструмента для фикстур.
func makeTool(name string, cat models.Category, affiliate bool, lastUsed *time.Time) models.PromoTool {
	return models.PromoTool{
		ID:          uuid.New(),
		Name:        name,
		Category:    cat,
		IsAffiliate: affiliate,
		IsActive:    true,
		LastUsedAt:  lastUsed,
	}
}

func daysAgo(n int) *time.Time {
	t := testNow.Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

func settingsWith(slots int, cooldown int, quotas ...models.CategoryQuota) models.SelectionSettings {
	return models.SelectionSettings{
		TotalSlots:            slots,
		Quotas:                quotas,
		AffiliateCooldownDays: cooldown,
	}
}

// TestInCooldown_DayGranularity — прошедшие дни считаются целочисленным floor.
func TestInCooldown_DayGranularity(t *testing.T) {
	t.Parallel()

	used := testNow.Add(-6*24*time.Hour - 23*time.Hour) // 6 полных дней
	aff := makeTool("aff", models.CategoryPayroll, true, &used)
	require.True(t, inCooldown(aff, 7, testNow))

	exact := testNow.Add(-7 * 24 * time.Hour) // ровно 7 дней
	aff.LastUsedAt = &exact
	require.False(t, inCooldown(aff, 7, testNow))

	// Обычный инструмент не бывает в кулдауне.
	non := makeTool("non", models.CategoryPayroll, false, daysAgo(1))
	require.False(t, inCooldown(non, 7, testNow))

	// Никогда не использованный аффилиат — не в кулдауне.
	fresh := makeTool("fresh", models.CategoryPayroll, true, nil)
	require.False(t, inCooldown(fresh, 7, testNow))

	// Нулевой кулдаун отключает проверку.
	aff.LastUsedAt = daysAgo(0)
	require.False(t, inCooldown(aff, 0, testNow))
}

// TestUsedNonAffiliateIDs — аффилиаты и чужие id в множество не попадают.
func TestUsedNonAffiliateIDs(t *testing.T) {
	t.Parallel()

	aff := makeTool("aff", models.CategoryHR, true, nil)
	non := makeTool("non", models.CategoryHR, false, nil)
	pool := []models.PromoTool{aff, non}

	history := []uuid.UUID{aff.ID, non.ID, uuid.New()}

	used := usedNonAffiliateIDs(history, pool)
	require.Len(t, used, 1)
	require.Contains(t, used, non.ID)
}

// TestSelectOne_WeightedRatio — на паре аффилиат+обычный доля аффилиата
// близка к 75% (вес 3:1).
func TestSelectOne_WeightedRatio(t *testing.T) {
	t.Parallel()

	aff := makeTool("aff", models.CategoryPayroll, true, nil)
	non := makeTool("non", models.CategoryPayroll, false, nil)

	r := &run{
		settings: settingsWith(1, 7),
		now:      testNow,
		rng:      testRNG(),
	}

	const draws = 10000
	affHits := 0
	for i := 0; i < draws; i++ {
		chosen := r.selectOne([]models.PromoTool{aff, non})
		require.NotNil(t, chosen)
		if chosen.ID == aff.ID {
			affHits++
		}
	}

	share := float64(affHits) / draws
	require.InDelta(t, 0.75, share, 0.03, "affiliate share %.4f out of tolerance", share)
}

// TestSelectOne_CooldownExcluded — аффилиат, использованный вчера при кулдауне
// 7 дней, не выбирается никогда; тот же аффилиат 10 дней назад — снова в игре.
func TestSelectOne_CooldownExcluded(t *testing.T) {
	t.Parallel()

	aff := makeTool("aff", models.CategoryPayroll, true, daysAgo(1))
	non := makeTool("non", models.CategoryPayroll, false, nil)

	r := &run{settings: settingsWith(1, 7), now: testNow, rng: testRNG()}

	for i := 0; i < 200; i++ {
		chosen := r.selectOne([]models.PromoTool{aff, non})
		require.NotNil(t, chosen)
		require.Equal(t, non.ID, chosen.ID, "cooldown affiliate must never be drawn")
	}

	// Кулдаун истёк — аффилиат должен попадаться (и с перевесом).
	aff.LastUsedAt = daysAgo(10)
	affHits := 0
	for i := 0; i < 200; i++ {
		chosen := r.selectOne([]models.PromoTool{aff, non})
		require.NotNil(t, chosen)
		if chosen.ID == aff.ID {
			affHits++
		}
	}
	require.Greater(t, affHits, 0, "expired cooldown affiliate must be eligible again")
}

// TestSelectOne_FallbackNeverViolatesCooldown — если весь пул в кулдауне,
// фолбэк отбрасывает аффилиаты целиком, а не нарушает кулдаун.
func TestSelectOne_FallbackNeverViolatesCooldown(t *testing.T) {
	t.Parallel()

	onlyAff := makeTool("aff", models.CategoryPayroll, true, daysAgo(1))
	r := &run{settings: settingsWith(1, 7), now: testNow, rng: testRNG()}

	require.Nil(t, r.selectOne([]models.PromoTool{onlyAff}))
	require.Nil(t, r.selectOne(nil))
}

// TestUnusedForCategory_CycleRule — обычный инструмент не повторяется, пока
// все его одноклассники не были использованы; затем цикл перезапускается.
func TestUnusedForCategory_CycleRule(t *testing.T) {
	t.Parallel()

	a := makeTool("a", models.CategoryHR, false, nil)
	b := makeTool("b", models.CategoryHR, false, nil)
	c := makeTool("c", models.CategoryHR, false, nil)
	aff := makeTool("aff", models.CategoryHR, true, nil)

	r := &run{
		settings:         settingsWith(6, 7),
		pool:             []models.PromoTool{a, b, c, aff},
		usedNonAffiliate: map[uuid.UUID]struct{}{a.ID: {}, b.ID: {}},
		selectedIDs:      map[uuid.UUID]struct{}{},
		now:              testNow,
		rng:              testRNG(),
	}

	// Использованы a и b: кандидаты — аффилиат и «несожжённый» c.
	got := r.unusedForCategory(models.CategoryHR)
	ids := toolIDs(got)
	require.ElementsMatch(t, []uuid.UUID{aff.ID, c.ID}, ids)

	// Использованы все обычные: цикл перезапускается, вся категория в игре.
	r.usedNonAffiliate[c.ID] = struct{}{}
	got = r.unusedForCategory(models.CategoryHR)
	require.Len(t, got, 4)

	// Уже выбранные этим запуском исключаются всегда.
	r.selectedIDs[aff.ID] = struct{}{}
	got = r.unusedForCategory(models.CategoryHR)
	require.NotContains(t, toolIDs(got), aff.ID)

	// Пустая категория — nil.
	require.Nil(t, r.unusedForCategory(models.CategoryCompliance))
}

// TestAllocate_ExactCountAndNoDuplicates — при достаточном пуле выбирается
// ровно TotalSlots различных инструментов.
func TestAllocate_ExactCountAndNoDuplicates(t *testing.T) {
	t.Parallel()

	var pool []models.PromoTool
	for i := 0; i < 5; i++ {
		pool = append(pool, makeTool("p", models.CategoryPayroll, i == 0, nil))
	}
	for i := 0; i < 5; i++ {
		pool = append(pool, makeTool("h", models.CategoryHR, false, nil))
	}

	settings := settingsWith(6, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 2},
		models.CategoryQuota{Category: models.CategoryHR, Quota: 2},
		models.CategoryQuota{Category: models.CategoryProductivity, Quota: 0},
	)

	selected := newRun(settings, pool, nil, testNow, testRNG()).allocate()
	require.Len(t, selected, 6)

	seen := map[uuid.UUID]struct{}{}
	for _, tool := range selected {
		_, dup := seen[tool.ID]
		require.False(t, dup, "tool %s selected twice", tool.ID)
		seen[tool.ID] = struct{}{}
	}
}

// TestAllocate_QuotaOverflowStopsEarly — сумма квот больше числа слотов:
// аллокация останавливается на TotalSlots.
func TestAllocate_QuotaOverflowStopsEarly(t *testing.T) {
	t.Parallel()

	var pool []models.PromoTool
	for i := 0; i < 4; i++ {
		pool = append(pool, makeTool("p", models.CategoryPayroll, false, nil))
	}
	for i := 0; i < 4; i++ {
		pool = append(pool, makeTool("h", models.CategoryHR, false, nil))
	}

	settings := settingsWith(3, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 4},
		models.CategoryQuota{Category: models.CategoryHR, Quota: 4},
	)

	selected := newRun(settings, pool, nil, testNow, testRNG()).allocate()
	require.Len(t, selected, 3)
}

// TestAllocate_EmptyPool — пустой пул кандидатов даёт пустой отбор.
func TestAllocate_EmptyPool(t *testing.T) {
	t.Parallel()

	settings := settingsWith(6, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
	)

	selected := newRun(settings, nil, nil, testNow, testRNG()).allocate()
	require.Empty(t, selected)
}

// TestAllocate_PoolSmallerThanSlots — пул меньше числа слотов: выбирается
// весь пул без дублей, без зацикливания.
func TestAllocate_PoolSmallerThanSlots(t *testing.T) {
	t.Parallel()

	pool := []models.PromoTool{
		makeTool("a", models.CategoryPayroll, false, nil),
		makeTool("b", models.CategoryHR, false, nil),
	}

	settings := settingsWith(6, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
		models.CategoryQuota{Category: models.CategoryHR, Quota: 0},
	)

	selected := newRun(settings, pool, nil, testNow, testRNG()).allocate()
	require.Len(t, selected, 2)
	require.ElementsMatch(t, []uuid.UUID{pool[0].ID, pool[1].ID}, toolIDs(selected))
}

// TestAllocate_ExampleScenario — сценарий: слоты 3, квоты Payroll:1 и HR:1,
// кулдаун 7; Payroll-аффилиат использован 2 дня назад и потому исключён.
// Ожидаются ровно три обычных инструмента.
func TestAllocate_ExampleScenario(t *testing.T) {
	t.Parallel()

	payrollAff := makeTool("payroll-aff", models.CategoryPayroll, true, daysAgo(2))
	payrollNon := makeTool("payroll-non", models.CategoryPayroll, false, nil)
	hrNon := makeTool("hr-non", models.CategoryHR, false, nil)
	fillerNon := makeTool("filler-non", models.CategoryProductivity, false, nil)

	settings := settingsWith(3, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
		models.CategoryQuota{Category: models.CategoryHR, Quota: 1},
		models.CategoryQuota{Category: models.CategoryProductivity, Quota: 0},
	)

	pool := []models.PromoTool{payrollAff, payrollNon, hrNon, fillerNon}

	selected := newRun(settings, pool, nil, testNow, testRNG()).allocate()
	require.ElementsMatch(t,
		[]uuid.UUID{payrollNon.ID, hrNon.ID, fillerNon.ID},
		toolIDs(selected),
	)
}

// TestAllocate_CyclingAcrossIssues — категория из трёх обычных инструментов,
// квота 1: за три последовательных выпуска каждый выбирается ровно один раз.
func TestAllocate_CyclingAcrossIssues(t *testing.T) {
	t.Parallel()

	a := makeTool("a", models.CategoryPayroll, false, nil)
	b := makeTool("b", models.CategoryPayroll, false, nil)
	c := makeTool("c", models.CategoryPayroll, false, nil)
	pool := []models.PromoTool{a, b, c}

	settings := settingsWith(1, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
	)

	rng := testRNG()
	var history []uuid.UUID
	picked := map[uuid.UUID]int{}

	for issue := 0; issue < 3; issue++ {
		selected := newRun(settings, pool, history, testNow, rng).allocate()
		require.Len(t, selected, 1)

		picked[selected[0].ID]++
		history = append([]uuid.UUID{selected[0].ID}, history...)
	}

	require.Len(t, picked, 3, "each of the 3 tools must be selected exactly once per cycle")
	for id, n := range picked {
		require.Equal(t, 1, n, "tool %s repeated within the first cycle", id)
	}

	// Четвёртый выпуск: цикл перезапускается, снова выбирается кто-то из трёх.
	selected := newRun(settings, pool, history, testNow, rng).allocate()
	require.Len(t, selected, 1)
}

// TestAllocate_LastResortFillsFromLRU — когда filler-категории исчерпаны,
// остаток добивается наиболее давно использованными кандидатами; никогда
// не использованные идут первыми.
func TestAllocate_LastResortFillsFromLRU(t *testing.T) {
	t.Parallel()

	payroll := makeTool("payroll", models.CategoryPayroll, false, nil)
	// Категории вне списка квот достижимы только через последний рубеж.
	neverUsed := makeTool("never", models.CategoryBenefits, false, nil)
	usedLongAgo := makeTool("old", models.CategoryCompliance, false, daysAgo(30))
	usedRecently := makeTool("recent", models.CategoryRecruiting, false, daysAgo(1))

	settings := settingsWith(3, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
	)

	pool := []models.PromoTool{usedRecently, usedLongAgo, neverUsed, payroll}

	selected := newRun(settings, pool, nil, testNow, testRNG()).allocate()
	require.Len(t, selected, 3)
	require.Equal(t, payroll.ID, selected[0].ID)

	// Шорт-лист из трёх наиболее давних содержит все оставшиеся —
	// проверяем только отсутствие дублей и полноту.
	require.NotContains(t, toolIDs(selected[1:]), payroll.ID)
}

// TestAllocate_LastResortRespectsCooldown — последний рубеж не нарушает
// кулдаун: если весь шорт-лист — аффилиаты в кулдауне, слоты остаются пустыми.
func TestAllocate_LastResortRespectsCooldown(t *testing.T) {
	t.Parallel()

	payroll := makeTool("payroll", models.CategoryPayroll, false, nil)
	affA := makeTool("aff-a", models.CategoryBenefits, true, daysAgo(1))
	affB := makeTool("aff-b", models.CategoryCompliance, true, daysAgo(2))

	settings := settingsWith(3, 7,
		models.CategoryQuota{Category: models.CategoryPayroll, Quota: 1},
	)

	selected := newRun(settings, []models.PromoTool{payroll, affA, affB}, nil, testNow, testRNG()).allocate()
	require.Len(t, selected, 1)
	require.Equal(t, payroll.ID, selected[0].ID)
}

func toolIDs(tools []models.PromoTool) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tools))
	for _, tool := range tools {
		ids = append(ids, tool.ID)
	}
	return ids
}
