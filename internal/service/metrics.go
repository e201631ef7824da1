package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы запуска отбора для метрики promo_selections_total.
const (
	outcomeComputed = "computed"
	outcomeReplayed = "replayed"
	outcomeEmpty    = "empty"
)

var (
	selectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_selections_total",
		Help: "Запуски отбора по исходам: computed/replayed/empty.",
	}, []string{"outcome"})

	slotsFilledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promo_slots_filled_total",
		Help: "Суммарное число заполненных слотов выпусков.",
	})

	affiliateSlotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promo_affiliate_slots_total",
		Help: "Число слотов, занятых аффилиатными инструментами.",
	})
)
