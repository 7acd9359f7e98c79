package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/google/uuid"
)

const (
	entityProduct = "product"
	entityComment = "comment"
	entityImage   = "image"
	entityOutbox  = "outbox"
)

// ProductUseCase реализует операции каталога над товарами, изображениями и похожими товарами.
type ProductUseCase struct {
	productRepo    ProductRepository
	commentRepo    CommentRepository
	imageRepo      ImageRepository
	similarityRepo SimilarityRepository
	outboxRepo     OutboxRepository
	cacheRepo      CacheRepository
	imagesInfra    ImagesInfra // nil, если MinIO не настроен
	tx             TxRunner
	graph          *catalog.SimilarityGraph
	swapper        *catalog.ThumbnailSwapper
	logger         logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	commentRepo CommentRepository,
	imageRepo ImageRepository,
	similarityRepo SimilarityRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	tx TxRunner,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:    productRepo,
		commentRepo:    commentRepo,
		imageRepo:      imageRepo,
		similarityRepo: similarityRepo,
		outboxRepo:     outboxRepo,
		cacheRepo:      cacheRepo,
		imagesInfra:    imagesInfra,
		tx:             tx,
		graph:          catalog.NewSimilarityGraph(similarityRepo),
		swapper:        catalog.NewThumbnailSwapper(imageRepo),
		logger:         logger,
	}
}

// ListProducts возвращает все товары с комментариями, изображениями и обложкой.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	productRows, err := p.productRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityProduct, err))
	}

	commentRows, err := p.commentRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityComment, err))
	}

	imageRows, err := p.imageRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityImage, err))
	}

	products, err := catalog.BuildProductViewsFromRows(productRows, commentRows, imageRows)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар по id, сначала заглядывая в кэш.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	if err := catalog.ValidateID(entityProduct, id); err != nil {
		return nil, err
	}

	if cached := p.cachedProduct(ctx, id); cached != nil {
		return cached, nil
	}

	// Версия читается до БД: если товар изменится во время загрузки, запись в кэш не пройдёт
	version, versionErr := p.cacheRepo.ProductVersion(ctx, id)

	product, err := p.loadProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if versionErr != nil {
		return product, nil
	}

	if err := p.cacheRepo.SetProduct(ctx, *product, version); err != nil {
		p.logger.Warnf("Failed to cache product %s: %v", id, e.Wrap(op, err))
	}

	return product, nil
}

// SearchProducts ищет товары по фильтру; критерии объединяются через OR.
func (p *ProductUseCase) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const op = "ProductUseCase.SearchProducts"

	query, args, err := catalog.CompileFilter(filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	productRows, err := p.productRepo.Search(ctx, query, args)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityProduct, err))
	}

	if len(productRows) == 0 {
		return nil, e.NotFound(entityProduct, "", "Products are not found")
	}

	commentRows, err := p.commentRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityComment, err))
	}

	imageRows, err := p.imageRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityImage, err))
	}

	products, err := catalog.BuildProductViewsFromRows(productRows, commentRows, imageRows)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// CreateProduct создаёт товар вместе с изображениями и событием product.created в одной транзакции.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := validateNewProduct(req); err != nil {
		return nil, err
	}

	product := domain.NewProduct(uuid.NewString(), strings.TrimSpace(req.Title), req.Description, req.Price)
	images := newImages(product.ID, req.Images)

	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := p.productRepo.Create(ctx, *product); err != nil {
			return e.Storage(entityProduct, err)
		}

		if len(images) > 0 {
			if err := p.imageRepo.Insert(ctx, images); err != nil {
				return e.Storage(entityImage, err)
			}
		}

		return p.recordEvent(ctx, ProductCreated, product.ID, productEventData(*product))
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := p.loadProduct(ctx, product.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct частично обновляет title, description и price; отсутствующие поля сохраняют значения.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if err := catalog.ValidateID(entityProduct, id); err != nil {
		return nil, err
	}

	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, e.Validation(entityProduct, "Price must not be negative")
	}

	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := p.productRepo.LockByID(ctx, id)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if !exists {
			return productNotFound(id)
		}

		rows, err := p.productRepo.ByID(ctx, id)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if len(rows) == 0 {
			return productNotFound(id)
		}

		current, err := catalog.MapProduct(rows[0])
		if err != nil {
			return err
		}

		updated := patch.Apply(current)
		affected, err := p.productRepo.Update(ctx, updated)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if affected == 0 {
			return productNotFound(id)
		}

		return p.recordEvent(ctx, ProductUpdated, id, productEventData(updated))
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, id)

	product, err := p.loadProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// DeleteProduct удаляет товар каскадно: комментарии, изображения, связи похожести, сам товар.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	if err := catalog.ValidateID(entityProduct, id); err != nil {
		return err
	}

	var objectKeys []string
	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := p.commentRepo.DeleteByProduct(ctx, id); err != nil {
			return e.Storage(entityComment, err)
		}

		imageRows, err := p.imageRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return e.Storage(entityImage, err)
		}
		if objectKeys, err = imageObjectKeys(imageRows); err != nil {
			return err
		}

		if _, err := p.similarityRepo.DeleteByProduct(ctx, id); err != nil {
			return e.Storage(entityProduct, err)
		}

		affected, err := p.productRepo.Delete(ctx, id)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if affected == 0 {
			return productNotFound(id)
		}

		return p.recordEvent(ctx, ProductDeleted, id, map[string]any{"id": id})
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	p.cleanupObjects(objectKeys)
	return nil
}

// AddImages добавляет изображения к товару по готовым URL.
func (p *ProductUseCase) AddImages(ctx context.Context, req *AddImagesReq) ([]domain.Image, error) {
	const op = "ProductUseCase.AddImages"

	if err := catalog.ValidateID(entityProduct, req.ProductID); err != nil {
		return nil, err
	}

	if len(req.Images) == 0 {
		return nil, e.Validation(entityImage, "Images array is empty")
	}

	for _, img := range req.Images {
		if strings.TrimSpace(img.URL) == "" {
			return nil, e.Validation(entityImage, `Field "url" is absent`)
		}
	}

	images := newImages(req.ProductID, req.Images)
	if err := p.insertImages(ctx, req.ProductID, images); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, req.ProductID)
	return images, nil
}

// RemoveImages удаляет изображения товара; изображения других товаров не затрагиваются.
func (p *ProductUseCase) RemoveImages(ctx context.Context, req *RemoveImagesReq) (int64, error) {
	const op = "ProductUseCase.RemoveImages"

	if err := catalog.ValidateID(entityProduct, req.ProductID); err != nil {
		return 0, err
	}

	if len(req.ImageIDs) == 0 {
		return 0, e.Validation(entityImage, "Images array is empty or malformed")
	}

	for _, id := range req.ImageIDs {
		if err := catalog.ValidateID(entityImage, id); err != nil {
			return 0, err
		}
	}

	deletedRows, err := p.imageRepo.DeleteByIDs(ctx, req.ProductID, req.ImageIDs)
	if err != nil {
		return 0, e.Wrap(op, e.Storage(entityImage, err))
	}

	if len(deletedRows) == 0 {
		return 0, e.NotFound(entityImage, req.ProductID,
			fmt.Sprintf("No images found for product id %s", req.ProductID))
	}

	p.invalidate(ctx, req.ProductID)

	objectKeys, err := imageObjectKeys(deletedRows)
	if err != nil {
		// строки уже удалены, без ключей останутся только файлы в бакете
		p.logger.Warnf("Failed to read object keys of removed images. product_id: %s, error: %v", req.ProductID, e.Wrap(op, err))
	}
	p.cleanupObjects(objectKeys)

	return int64(len(deletedRows)), nil
}

func (p *ProductUseCase) UploadsEnabled() bool {
	return p.imagesInfra != nil
}

// UploadImages загружает файлы в MinIO и сохраняет их публичные URL как изображения товара.
// Первый файл становится обложкой, только если у товара её ещё нет.
func (p *ProductUseCase) UploadImages(ctx context.Context, req *UploadProductImagesReq) (images []domain.Image, err error) {
	const op = "ProductUseCase.UploadImages"

	if p.imagesInfra == nil {
		return nil, e.Wrap(op, e.ErrUploadsDisabled)
	}

	if err := catalog.ValidateID(entityProduct, req.ProductID); err != nil {
		return nil, err
	}

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	rows, err := p.productRepo.ByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityProduct, err))
	}
	if len(rows) == 0 {
		return nil, productNotFound(req.ProductID)
	}

	uploaded, err := p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.ProductID, req.Images))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если сохранить строки не удалось, загруженные объекты удаляются в фоне
	defer func() {
		if err != nil {
			p.logger.Warnf("Cleaning up orphaned images after failure. product_id: %s, error: %v", req.ProductID, err)
			p.imagesInfra.CleanupImages(uploaded.Keys())
		}
	}()

	err = p.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := p.productRepo.LockByID(ctx, req.ProductID)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if !exists {
			return productNotFound(req.ProductID)
		}

		mainRows, err := p.imageRepo.MainImages(ctx, req.ProductID)
		if err != nil {
			return e.Storage(entityImage, err)
		}

		images = make([]domain.Image, 0, len(uploaded.Images))
		for i, obj := range uploaded.Images {
			img := domain.NewImage(uuid.NewString(), obj.URL, req.ProductID, i == 0 && len(mainRows) == 0)
			img.ObjectKey = obj.Key
			images = append(images, *img)
		}

		if err := p.imageRepo.Insert(ctx, images); err != nil {
			return e.Storage(entityImage, err)
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, req.ProductID)
	return images, nil
}

// UpdateThumbnail делает newImageID обложкой товара.
func (p *ProductUseCase) UpdateThumbnail(ctx context.Context, productID, newImageID string) (*catalog.SwapResult, error) {
	const op = "ProductUseCase.UpdateThumbnail"

	if err := catalog.ValidateID(entityProduct, productID); err != nil {
		return nil, err
	}

	var res *catalog.SwapResult
	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Параллельные смены обложки одного товара выполняются по очереди
		exists, err := p.productRepo.LockByID(ctx, productID)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if !exists {
			return e.Validation(entityProduct, "Incorrect product id")
		}

		res, err = p.swapper.Swap(ctx, productID, newImageID)
		if err != nil {
			return err
		}

		if res.AlreadyActive {
			return nil
		}

		return p.recordEvent(ctx, ProductThumbnailChanged, productID, map[string]any{
			"old_image_id": res.OldID,
			"new_image_id": res.NewID,
		})
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, productID)
	return res, nil
}

// SimilarProducts возвращает товары, связанные с productID в любом направлении.
func (p *ProductUseCase) SimilarProducts(ctx context.Context, productID string) (*SimilarProductsRes, error) {
	const op = "ProductUseCase.SimilarProducts"

	neighbors, err := p.graph.NeighborsOf(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SimilarProductsRes{SimilarProducts: neighbors}, nil
}

func (p *ProductUseCase) AddSimilar(ctx context.Context, pairs []domain.SimilarityEdge) (int64, error) {
	const op = "ProductUseCase.AddSimilar"

	inserted, err := p.graph.AddEdges(ctx, pairs)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	return inserted, nil
}

func (p *ProductUseCase) RemoveSimilar(ctx context.Context, productID, similarProductID string) error {
	const op = "ProductUseCase.RemoveSimilar"

	if err := p.graph.RemoveEdge(ctx, productID, similarProductID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// insertImages вставляет изображения, не допуская второй обложки у товара.
func (p *ProductUseCase) insertImages(ctx context.Context, productID string, images []domain.Image) error {
	return p.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := p.productRepo.LockByID(ctx, productID)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if !exists {
			return productNotFound(productID)
		}

		mainRows, err := p.imageRepo.MainImages(ctx, productID)
		if err != nil {
			return e.Storage(entityImage, err)
		}

		if len(mainRows)+countMain(images) > 1 {
			return e.Validation(entityImage, "Product can have only one main image")
		}

		if err := p.imageRepo.Insert(ctx, images); err != nil {
			return e.Storage(entityImage, err)
		}

		return nil
	})
}

// loadProduct собирает представление товара из БД, минуя кэш.
func (p *ProductUseCase) loadProduct(ctx context.Context, id string) (*domain.Product, error) {
	rows, err := p.productRepo.ByID(ctx, id)
	if err != nil {
		return nil, e.Storage(entityProduct, err)
	}
	if len(rows) == 0 {
		return nil, productNotFound(id)
	}

	commentRows, err := p.commentRepo.ByProduct(ctx, id)
	if err != nil {
		return nil, e.Storage(entityComment, err)
	}

	imageRows, err := p.imageRepo.ByProduct(ctx, id)
	if err != nil {
		return nil, e.Storage(entityImage, err)
	}

	products, err := catalog.BuildProductViewsFromRows(rows[:1], commentRows, imageRows)
	if err != nil {
		return nil, err
	}

	return &products[0], nil
}

func (p *ProductUseCase) cachedProduct(ctx context.Context, id string) *domain.Product {
	products, err := p.cacheRepo.GetProducts(ctx, []string{id})
	if err != nil {
		return nil
	}

	if product, ok := products[id]; ok {
		return &product
	}

	return nil
}

// cleanupObjects удаляет из MinIO файлы удалённых изображений; изображения,
// добавленные по URL, ключа не имеют.
func (p *ProductUseCase) cleanupObjects(keys []string) {
	if p.imagesInfra == nil || len(keys) == 0 {
		return
	}

	p.imagesInfra.CleanupImages(keys)
}

func imageObjectKeys(rows []catalog.Row) ([]string, error) {
	images, err := catalog.MapImages(rows)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(images))
	for _, img := range images {
		if img.ObjectKey != "" {
			keys = append(keys, img.ObjectKey)
		}
	}

	return keys, nil
}

func (p *ProductUseCase) invalidate(ctx context.Context, ids ...string) {
	if err := p.cacheRepo.DeleteProducts(ctx, ids); err != nil {
		p.logger.Warnf("Failed to delete products from cache: %v", err)
	}
}

func (p *ProductUseCase) recordEvent(ctx context.Context, eventType OutboxEventType, productID string, data map[string]any) error {
	return recordEvent(ctx, p.outboxRepo, eventType, productID, data)
}

func recordEvent(ctx context.Context, repo OutboxRepository, eventType OutboxEventType, productID string, data map[string]any) error {
	event, err := NewOutboxEvent(eventType, productID, data)
	if err != nil {
		return e.Wrap(string(eventType), err)
	}

	if _, err := repo.Create(ctx, event); err != nil {
		return e.Storage(entityOutbox, err)
	}

	return nil
}

func validateNewProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Title) == "" {
		return e.Validation(entityProduct, `Field "title" is absent`)
	}

	if req.Price.IsNegative() {
		return e.Validation(entityProduct, "Price must not be negative")
	}

	for _, img := range req.Images {
		if strings.TrimSpace(img.URL) == "" {
			return e.Validation(entityImage, `Field "url" is absent`)
		}
	}

	mains := 0
	for _, img := range req.Images {
		if img.Main {
			mains++
		}
	}
	if mains > 1 {
		return e.Validation(entityImage, "Product can have only one main image")
	}

	return nil
}

func newImages(productID string, in []NewImage) []domain.Image {
	images := make([]domain.Image, 0, len(in))
	for _, img := range in {
		images = append(images, *domain.NewImage(uuid.NewString(), img.URL, productID, img.Main))
	}

	return images
}

func countMain(images []domain.Image) int {
	n := 0
	for _, img := range images {
		if img.Main {
			n++
		}
	}

	return n
}

func productNotFound(id string) error {
	return e.NotFound(entityProduct, id, fmt.Sprintf("Product with id %s is not found", id))
}
