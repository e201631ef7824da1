package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"

	"github.com/google/uuid"
)

// Вес аффилиата в пуле взвешенного розыгрыша: 3 записи против 1 у обычного
// инструмента, то есть троекратная относительная вероятность выбора.
const affiliateWeight = 3

// Размер шорт-листа последнего рубежа добивки: берём 3 наиболее давно
// использованных кандидата и разыгрываем слот среди них.
const lastResortShortlist = 3

// run — состояние одного запуска аллокации.
//
// Все множества локальны для запуска и умирают вместе с ним: никакого
// процесс-глобального состояния «использованных» инструментов.
type run struct {
	settings models.SelectionSettings
	pool     []models.PromoTool

	// usedNonAffiliate - обычные (не аффилиатные) инструменты, уже «сожжённые»
	// в текущем цикле своей категории: из истории плюс выбранные этим запуском.
	usedNonAffiliate map[uuid.UUID]struct{}
	// selectedIDs - инструменты, уже выбранные этим запуском.
	selectedIDs map[uuid.UUID]struct{}
	selected    []models.PromoTool

	now time.Time
	rng *rand.Rand
}

// newRun подготавливает состояние запуска из пула кандидатов и ограниченного
// окна истории отборов.
func newRun(settings models.SelectionSettings, pool []models.PromoTool, history []uuid.UUID, now time.Time, rng *rand.Rand) *run {
	return &run{
		settings:         settings,
		pool:             pool,
		usedNonAffiliate: usedNonAffiliateIDs(history, pool),
		selectedIDs:      make(map[uuid.UUID]struct{}, settings.TotalSlots),
		now:              now,
		rng:              rng,
	}
}

// usedNonAffiliateIDs строит множество обычных инструментов, встречающихся
// в окне истории. Аффилиаты в множество не попадают: ими управляет
// исключительно кулдаун, а не циклическое исчерпание.
func usedNonAffiliateIDs(history []uuid.UUID, pool []models.PromoTool) map[uuid.UUID]struct{} {
	byID := make(map[uuid.UUID]models.PromoTool, len(pool))
	for _, tool := range pool {
		byID[tool.ID] = tool
	}

	used := make(map[uuid.UUID]struct{}, len(history))
	for _, id := range history {
		tool, ok := byID[id]
		if !ok || tool.IsAffiliate {
			continue
		}

		used[id] = struct{}{}
	}

	return used
}

// inCooldown сообщает, находится ли инструмент в кулдауне на момент now.
// Только аффилиат с непустым last_used_at может быть в кулдауне; гранулярность —
// целые дни (floor прошедшего времени).
func inCooldown(tool models.PromoTool, cooldownDays int, now time.Time) bool {
	if !tool.IsAffiliate || tool.LastUsedAt == nil || cooldownDays <= 0 {
		return false
	}

	elapsedDays := int(now.Sub(*tool.LastUsedAt).Hours() / 24)

	return elapsedDays < cooldownDays
}

// allocate выполняет полный проход аллокации: квотные категории, затем
// добивка filler-категориями и последним рубежом. Возвращает отобранные
// инструменты в порядке слотов.
func (r *run) allocate() []models.PromoTool {
	r.allocateQuotas()
	r.allocateFiller()

	return r.selected
}

// allocateQuotas разыгрывает по quota слотов для каждой категории с ненулевой
// квотой, в порядке следования квот. При переполнении (сумма квот больше
// общего числа слотов) останавливается досрочно.
func (r *run) allocateQuotas() {
	for _, cq := range r.settings.Quotas {
		if cq.Quota <= 0 {
			continue
		}

		for i := 0; i < cq.Quota; i++ {
			if len(r.selected) >= r.settings.TotalSlots {
				return
			}

			tool := r.selectOne(r.unusedForCategory(cq.Category))
			if tool == nil {
				// Категория исчерпана — остаток добьют filler/последний рубеж.
				break
			}

			r.take(*tool)
		}
	}
}

// allocateFiller добивает свободные слоты:
//  1. round-robin по filler-категориям (квота 0) в порядке следования квот;
//  2. круг без прогресса завершает round-robin;
//  3. остаток — последний рубеж: розыгрыш среди наиболее давно использованных.
func (r *run) allocateFiller() {
	var fillers []models.Category
	for _, cq := range r.settings.Quotas {
		if cq.Quota == 0 {
			fillers = append(fillers, cq.Category)
		}
	}

	for len(r.selected) < r.settings.TotalSlots && len(r.selected) < len(r.pool) {
		progress := false

		for _, cat := range fillers {
			if len(r.selected) >= r.settings.TotalSlots {
				break
			}

			tool := r.selectOne(r.unusedForCategory(cat))
			if tool == nil {
				continue
			}

			r.take(*tool)
			progress = true
		}

		if !progress {
			break
		}
	}

	r.lastResort()
}

// lastResort добивает остаток слотов без оглядки на квоты категорий:
// сортировка всех оставшихся кандидатов по давности использования
// (никогда не использованные — первыми), розыгрыш среди трёх наиболее давних.
func (r *run) lastResort() {
	for len(r.selected) < r.settings.TotalSlots {
		remaining := make([]models.PromoTool, 0, len(r.pool))
		for _, tool := range r.pool {
			if _, taken := r.selectedIDs[tool.ID]; taken {
				continue
			}

			remaining = append(remaining, tool)
		}

		if len(remaining) == 0 {
			return
		}

		sort.SliceStable(remaining, func(i, j int) bool {
			li, lj := remaining[i].LastUsedAt, remaining[j].LastUsedAt
			switch {
			case li == nil && lj == nil:
				return false
			case li == nil:
				return true
			case lj == nil:
				return false
			default:
				return li.Before(*lj)
			}
		})

		if len(remaining) > lastResortShortlist {
			remaining = remaining[:lastResortShortlist]
		}

		tool := r.selectOne(remaining)
		if tool == nil {
			// Весь шорт-лист — аффилиаты в кулдауне; слоты остаются пустыми.
			return
		}

		r.take(*tool)
	}
}

// unusedForCategory возвращает пул кандидатов категории по правилу цикла:
//  1. обычный инструмент не повторяется, пока все его «одноклассники»
//     не были использованы хотя бы раз;
//  2. если все обычные инструменты категории использованы — цикл
//     перезапускается, возвращается вся категория;
//  3. аффилиаты исключены из учёта исчерпания (ими управляет кулдаун);
//  4. пустой результат при непустой категории невозможен — на крайний случай
//     возвращается вся категория.
//
// Уже выбранные этим запуском инструменты исключаются всегда.
func (r *run) unusedForCategory(category models.Category) []models.PromoTool {
	var categoryTools []models.PromoTool
	for _, tool := range r.pool {
		if tool.Category != category {
			continue
		}
		if _, taken := r.selectedIDs[tool.ID]; taken {
			continue
		}

		categoryTools = append(categoryTools, tool)
	}

	if len(categoryTools) == 0 {
		return nil
	}

	var (
		affiliates         []models.PromoTool
		nonAffiliates      int
		unusedNonAffiliate []models.PromoTool
	)
	for _, tool := range categoryTools {
		if tool.IsAffiliate {
			affiliates = append(affiliates, tool)
			continue
		}

		nonAffiliates++
		if _, used := r.usedNonAffiliate[tool.ID]; !used {
			unusedNonAffiliate = append(unusedNonAffiliate, tool)
		}
	}

	// Перезапуск цикла: каждый обычный инструмент категории уже был
	// использован — вся категория снова в игре.
	if nonAffiliates > 0 && len(unusedNonAffiliate) == 0 {
		return categoryTools
	}

	candidates := append(affiliates, unusedNonAffiliate...)
	if len(candidates) == 0 {
		return categoryTools
	}

	return candidates
}

// selectOne разыгрывает один инструмент из пула.
//
// Порядок:
//  1. отфильтровать аффилиаты в кулдауне;
//  2. при пустом остатке — фолбэк на обычные инструменты пула
//     (кулдаун не нарушается даже ценой потери аффилиатного слота);
//  3. взвешенный розыгрыш: аффилиат кладётся в пул розыгрыша трижды.
//
// nil — если выбрать некого.
func (r *run) selectOne(pool []models.PromoTool) *models.PromoTool {
	if len(pool) == 0 {
		return nil
	}

	eligible := pool
	if r.settings.AffiliateCooldownDays > 0 {
		eligible = make([]models.PromoTool, 0, len(pool))
		for _, tool := range pool {
			if inCooldown(tool, r.settings.AffiliateCooldownDays, r.now) {
				continue
			}

			eligible = append(eligible, tool)
		}
	}

	if len(eligible) == 0 {
		for _, tool := range pool {
			if !tool.IsAffiliate {
				eligible = append(eligible, tool)
			}
		}
	}

	if len(eligible) == 0 {
		return nil
	}

	weighted := make([]int, 0, len(eligible)*affiliateWeight)
	for i, tool := range eligible {
		weight := 1
		if tool.IsAffiliate {
			weight = affiliateWeight
		}

		for w := 0; w < weight; w++ {
			weighted = append(weighted, i)
		}
	}

	chosen := eligible[weighted[r.rng.Intn(len(weighted))]]

	return &chosen
}

// take фиксирует выбор инструмента в текущем запуске.
// Обычный инструмент немедленно помечается использованным, чтобы последующие
// розыгрыши этого же запуска видели его «сожжённым».
func (r *run) take(tool models.PromoTool) {
	r.selected = append(r.selected, tool)
	r.selectedIDs[tool.ID] = struct{}{}

	if !tool.IsAffiliate {
		r.usedNonAffiliate[tool.ID] = struct{}{}
	}
}
