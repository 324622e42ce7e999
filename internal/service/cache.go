// cache.go — LRU-кэш записей файлов по ID с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docvault/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dv_cache_hits_total",
		Help: "Общее количество попаданий в кэш записей.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dv_cache_misses_total",
		Help: "Общее количество промахов кэша записей.",
	})
)

// CacheService — кэш записей FileRecord по ID.
// Надёжны только неизменяемые поля версии (имя, версия, путь, размер);
// поля анализа из кэша не отдаются.
type CacheService struct {
	cache *expirable.LRU[int64, *model.FileRecord]
}

// NewCacheService создаёт кэш. maxSize == 0 отключает кэширование
// (expirable трактует 0 как «без ограничения», поэтому кэш не создаётся).
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	if maxSize <= 0 {
		return &CacheService{}
	}
	return &CacheService{cache: expirable.NewLRU[int64, *model.FileRecord](maxSize, nil, ttl)}
}

// Get возвращает копию записи из кэша.
func (c *CacheService) Get(id int64) (*model.FileRecord, bool) {
	if c == nil || c.cache == nil {
		return nil, false
	}
	val, ok := c.cache.Get(id)
	if !ok {
		cacheMissesTotal.Inc()
		return nil, false
	}
	cacheHitsTotal.Inc()
	cp := *val
	return &cp, true
}

// Set сохраняет копию записи.
func (c *CacheService) Set(record *model.FileRecord) {
	if c == nil || c.cache == nil || record == nil {
		return
	}
	cp := *record
	c.cache.Add(record.ID, &cp)
}

// Delete удаляет запись из кэша.
func (c *CacheService) Delete(id int64) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Remove(id)
}

// size возвращает количество записей в кэше (для тестов).
func (c *CacheService) size() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
