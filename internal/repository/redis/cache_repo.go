package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/metrics"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/redis/converter"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/clients"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
	versionTTL              = 24 * time.Hour
)

var errStaleVersion = errors.New("product cache version changed")

// CacheRepo кэширует собранные представления товаров.
// Все обращения к Redis идут через circuit breaker: при недоступном Redis
// запросы сразу уходят в БД, не дожидаясь таймаутов.
type CacheRepo struct {
	client  *clients.RedisClient
	conv    converter.ProductConverter
	cfg     *cfg.RedisCfg
	breaker *gobreaker.CircuitBreaker[any]
	logger  logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "redis-cache",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &CacheRepo{
		client:  client,
		conv:    conv,
		cfg:     cfg,
		breaker: breaker,
		logger:  logger,
	}
}

// GetProducts возвращает закэшированные товары по ID, пропуская промахи.
func (r *CacheRepo) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	result := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := r.buildProductCacheKeys(ids)

	raw, err := r.breaker.Execute(func() (any, error) {
		return r.client.Client.MGet(ctx, keys...).Result()
	})
	if err != nil {
		metrics.RecordCacheError()
		r.logger.Warnf("Redis MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	values, _ := raw.([]any)
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			r.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		product, err := r.unmarshalProductFromCache(data)
		if err != nil {
			r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if product.ID != ids[i] {
			r.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", ids[i], product.ID)
			r.del(ctx, keys[i])
			continue // cache miss
		}

		result[ids[i]] = *product
	}

	metrics.RecordCacheLookup(len(result), len(ids)-len(result))
	return result, nil
}

// ProductVersion возвращает счётчик инвалидаций товара; отсутствующий ключ — версия 0.
// Читается до загрузки товара из БД и передаётся в SetProduct.
func (r *CacheRepo) ProductVersion(ctx context.Context, id string) (int64, error) {
	raw, err := r.breaker.Execute(func() (any, error) {
		version, err := r.client.Client.Get(ctx, r.versionKey(id)).Int64()
		if errors.Is(err, goredis.Nil) {
			return int64(0), nil
		}
		return version, err
	})
	if err != nil {
		metrics.RecordCacheError()
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	version, _ := raw.(int64)
	return version, nil
}

// SetProduct кэширует товар с TTL из конфигурации, только если с момента чтения version
// товар не инвалидировался: иначе в кэш попало бы устаревшее представление.
// Ошибки сериализации и записи только логируются.
func (r *CacheRepo) SetProduct(ctx context.Context, product domain.Product, version int64) error {
	data, err := json.Marshal(r.conv.ToRedisModel(&product))
	if err != nil {
		r.logger.Warnf("Failed to marshal product for caching (Product ID: %s): %v", product.ID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	versionKey := r.versionKey(product.ID)
	_, err = r.breaker.Execute(func() (any, error) {
		err := r.client.Client.Watch(ctx, func(tx *goredis.Tx) error {
			current, err := tx.Get(ctx, versionKey).Int64()
			if err != nil && !errors.Is(err, goredis.Nil) {
				return err
			}
			if current != version {
				return errStaleVersion
			}

			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, r.productKey(product.ID), data, r.cfg.ProductTTL)
				return nil
			})
			return err
		}, versionKey)

		// Гонку с инвалидацией проигрывает запись в кэш, Redis при этом исправен
		if errors.Is(err, errStaleVersion) || errors.Is(err, goredis.TxFailedErr) {
			r.logger.Debugf("Skip caching stale product %s", product.ID)
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		metrics.RecordCacheError()
		r.logger.Warnf("Cache write failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts удаляет товары из кэша и увеличивает их версии.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.breaker.Execute(func() (any, error) {
		return r.client.Client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			for _, id := range ids {
				pipe.Incr(ctx, r.versionKey(id))
				pipe.Expire(ctx, r.versionKey(id), versionTTL)
			}
			pipe.Del(ctx, r.buildProductCacheKeys(ids)...)
			return nil
		})
	})
	if err != nil {
		metrics.RecordCacheError()
		r.logger.Warnf("Redis invalidation failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (r *CacheRepo) del(ctx context.Context, keys ...string) {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.client.Client.Del(ctx, keys...).Err()
	})
	if err != nil {
		metrics.RecordCacheError()
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// unmarshalProductFromCache десериализует JSON из кэша в товар
func (r *CacheRepo) unmarshalProductFromCache(data []byte) (*domain.Product, error) {
	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return r.conv.ToDomain(&model)
}

// buildProductCacheKeys формирует Redis-ключи из ID товаров
func (r *CacheRepo) buildProductCacheKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	return keys
}

// productKey возвращает Redis-ключ для одного товара
func (r *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *CacheRepo) versionKey(id string) string {
	return fmt.Sprintf("product:%s:version", id)
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val any, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
