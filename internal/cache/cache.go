// cache — опциональный read-through кэш готовых отборов для GET-чтений
// отправщика. Отбор после фиксации неизменяем, поэтому кэшу достаточно TTL —
// инвалидация не нужна.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SelectionCache — минимальный контракт кэша отборов.
type SelectionCache interface {
	// Get возвращает отбор выпуска и признак его наличия в кэше.
	Get(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, bool, error)
	// Set сохраняет отбор выпуска с TTL.
	Set(ctx context.Context, issueID uuid.UUID, tools []models.PromoTool, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "promo:sel:".
func NewRedisCache(redisURL, prefix string) (SelectionCache, error) {
	if prefix == "" {
		prefix = "promo:sel:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(issueID uuid.UUID) string { return c.prefix + issueID.String() }

// cachedTool — сериализуемое представление инструмента в кэше.
type cachedTool struct {
	ID            uuid.UUID  `json:"id"`
	PublicationID uuid.UUID  `json:"publication_id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	IsAffiliate   bool       `json:"is_affiliate"`
	IsActive      bool       `json:"is_active"`
	IsFeatured    bool       `json:"is_featured"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
	TimesUsed     int32      `json:"times_used"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (c *redisCache) Get(ctx context.Context, issueID uuid.UUID) ([]models.PromoTool, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(issueID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, err
	}

	var cached []cachedTool
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, err
	}

	tools := make([]models.PromoTool, 0, len(cached))
	for _, ct := range cached {
		tools = append(tools, models.PromoTool{
			ID:            ct.ID,
			PublicationID: ct.PublicationID,
			Name:          ct.Name,
			Category:      models.ParseCategory(ct.Category),
			IsAffiliate:   ct.IsAffiliate,
			IsActive:      ct.IsActive,
			IsFeatured:    ct.IsFeatured,
			LastUsedAt:    ct.LastUsedAt,
			TimesUsed:     ct.TimesUsed,
			CreatedAt:     ct.CreatedAt,
		})
	}

	return tools, true, nil
}

func (c *redisCache) Set(ctx context.Context, issueID uuid.UUID, tools []models.PromoTool, ttl time.Duration) error {
	cached := make([]cachedTool, 0, len(tools))
	for _, tool := range tools {
		cached = append(cached, cachedTool{
			ID:            tool.ID,
			PublicationID: tool.PublicationID,
			Name:          tool.Name,
			Category:      tool.Category.String(),
			IsAffiliate:   tool.IsAffiliate,
			IsActive:      tool.IsActive,
			IsFeatured:    tool.IsFeatured,
			LastUsedAt:    tool.LastUsedAt,
			TimesUsed:     tool.TimesUsed,
			CreatedAt:     tool.CreatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(issueID), raw, ttl).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
