// service содержит бизнес-логику promo-сервиса: движок отбора и ротации
// промо-инструментов по выпускам.
package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/cache"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/config"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/storage"
)

var (
	// ErrNotFound — отбор/сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service — описывает бизнес-логику promo-service.
type Service struct {
	storage storage.Storage
	cache   cache.SelectionCache
	cfg     config.Config

	// now и newRNG вынесены в поля ради детерминированных тестов.
	now    func() time.Time
	newRNG func() *rand.Rand
}

// New создает новый экземпляр Service.
// cache может быть nil — тогда чтения идут напрямую в хранилище.
func New(storage storage.Storage, selCache cache.SelectionCache, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cache:   selCache,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}
