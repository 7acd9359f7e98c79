package usecase

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
)

// Репозитории PostgreSQL отдают сырые строки; сущности из них собирает пакет catalog.

type ProductRepository interface {
	All(ctx context.Context) ([]catalog.Row, error)
	ByID(ctx context.Context, id string) ([]catalog.Row, error)
	// LockByID блокирует строку товара до конца транзакции; false — товара нет.
	LockByID(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string, args []any) ([]catalog.Row, error)
	Create(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, product domain.Product) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type CommentRepository interface {
	All(ctx context.Context) ([]catalog.Row, error)
	ByID(ctx context.Context, id string) ([]catalog.Row, error)
	ByProduct(ctx context.Context, productID string) ([]catalog.Row, error)
	Create(ctx context.Context, comment domain.Comment) error
	Update(ctx context.Context, id string, patch domain.CommentPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type ImageRepository interface {
	catalog.ThumbnailStore

	All(ctx context.Context) ([]catalog.Row, error)
	ByProduct(ctx context.Context, productID string) ([]catalog.Row, error)
	Insert(ctx context.Context, images []domain.Image) error
	// DeleteByIDs и DeleteByProduct возвращают удалённые строки: по object_key
	// из них удаляются файлы в MinIO.
	DeleteByIDs(ctx context.Context, productID string, ids []string) ([]catalog.Row, error)
	DeleteByProduct(ctx context.Context, productID string) ([]catalog.Row, error)
}

type SimilarityRepository interface {
	catalog.SimilarityStore

	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// MarkAsFailed возвращает событие в очередь или, после maxAttempts, помечает его failed.
	MarkAsFailed(ctx context.Context, id int64, maxAttempts int) error
	// ReleaseStuck возвращает в очередь события, зависшие в processing.
	ReleaseStuck(ctx context.Context, olderThanSeconds int) (int64, error)
}

// CacheRepository кэширует собранные представления товаров.
// DeleteProducts увеличивает версию товара; SetProduct пишет, только если версия
// не изменилась с момента ProductVersion.
type CacheRepository interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
	ProductVersion(ctx context.Context, id string) (int64, error)
	SetProduct(ctx context.Context, product domain.Product, version int64) error
	DeleteProducts(ctx context.Context, ids []string) error
}

// ObjectRepository хранит файлы изображений.
type ObjectRepository interface {
	Upload(ctx context.Context, object *domain.ImageObject) (string, error)
	Delete(ctx context.Context, key string) error
}
