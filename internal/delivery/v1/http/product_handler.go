package http

import (
	"fmt"
	"net/http"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultUploadLimit  = 10
	defaultMaxImageSize = 15 << 20
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
	uploadLimit    int
	maxImageSize   int64
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger, uploadLimit int, maxImageSize int64) *ProductHandler {
	if uploadLimit <= 0 {
		uploadLimit = defaultUploadLimit
	}
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}

	return &ProductHandler{
		productUsecase: productUsecase,
		logger:         logger,
		uploadLimit:    uploadLimit,
		maxImageSize:   maxImageSize,
	}
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		domain.Product
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Критерии объединяются через OR; цена — открытый интервал (priceFrom, priceTo)
//	@Tags			products
//	@Produce		json
//	@Param			title		query		string	false	"Подстрока названия"
//	@Param			description	query		string	false	"Подстрока описания"
//	@Param			priceFrom	query		number	false	"Нижняя граница цены"
//	@Param			priceTo		query		number	false	"Верхняя граница цены"
//	@Success		200			{array}		domain.Product
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/products/search [get]
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	products, err := p.productUsecase.SearchProducts(r.Context(), filter)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	domain.Product
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := p.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, product)
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		ProductCreateRequest	true	"Товар с изображениями"
//	@Success	201		{object}	domain.Product
//	@Failure	400		{object}	ErrorResponse
//	@Router		/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("product", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	price := decimal.Zero
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			p.fail(w, r, err)
			return
		}
		price = *req.Price
	}

	product, err := p.productUsecase.CreateProduct(r.Context(),
		usecase.NewCreateProductReq(req.Title, req.Description, price, toNewImages(req.Images)))
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, product)
}

// updateProduct
//
//	@Summary	Частичное обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID товара"
//	@Param		product	body		ProductUpdateRequest	true	"Изменяемые поля"
//	@Success	200		{object}	domain.Product
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			p.fail(w, r, err)
			return
		}
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, product)
}

// deleteProduct
//
//	@Summary	Удаление товара вместе с комментариями, изображениями и связями
//	@Tags		products
//	@Param		id	path	string	true	"ID товара"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.fail(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Product id:%s has been deleted", id))
}

// addImages
//
//	@Summary	Добавление изображений по URL
//	@Tags		images
//	@Accept		json
//	@Produce	json
//	@Param		images	body		AddImagesRequest	true	"Изображения"
//	@Success	201		{array}		domain.Image
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/add-images [post]
func (p *ProductHandler) addImages(w http.ResponseWriter, r *http.Request) {
	var req AddImagesRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("image", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	images, err := p.productUsecase.AddImages(r.Context(), &usecase.AddImagesReq{
		ProductID: req.ProductID,
		Images:    toNewImages(req.Images),
	})
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, images)
}

// removeImages
//
//	@Summary	Удаление изображений товара
//	@Tags		images
//	@Accept		json
//	@Produce	json
//	@Param		images	body		RemoveImagesRequest	true	"ID изображений"
//	@Success	200		{object}	AffectedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/remove-images [post]
func (p *ProductHandler) removeImages(w http.ResponseWriter, r *http.Request) {
	var req RemoveImagesRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("image", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	affected, err := p.productUsecase.RemoveImages(r.Context(), &usecase.RemoveImagesReq{
		ProductID: req.ProductID,
		ImageIDs:  req.ImageIDs,
	})
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &AffectedResponse{
		Message:  fmt.Sprintf("Images for product id %s have been deleted", req.ProductID),
		Affected: affected,
	})
}

// uploadImages
//
//	@Summary		Загрузка файлов изображений
//	@Description	Файлы сохраняются в MinIO, их публичные URL — как изображения товара
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"ID товара"
//	@Param			images	formData	file	true	"Изображения товара (jpeg, png, webp)"
//	@Success		201		{array}		domain.Image
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/products/{id}/images/upload [post]
func (p *ProductHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	maxTotalRequestSize := int64(p.uploadLimit)*p.maxImageSize + maxMemory
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		p.fail(w, r, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	images, err := parseImages(r.MultipartForm.File["images"], p.uploadLimit, p.maxImageSize)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	created, err := p.productUsecase.UploadImages(r.Context(), &usecase.UploadProductImagesReq{
		ProductID: chi.URLParam(r, "id"),
		Images:    images,
	})
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, created)
}

// updateThumbnail
//
//	@Summary	Смена обложки товара
//	@Tags		images
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string					true	"ID товара"
//	@Param		thumbnail	body		UpdateThumbnailRequest	true	"Новая обложка"
//	@Success	200			{object}	ThumbnailResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/update-thumbnail/{id} [post]
func (p *ProductHandler) updateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req UpdateThumbnailRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("image", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	res, err := p.productUsecase.UpdateThumbnail(r.Context(), chi.URLParam(r, "id"), req.NewThumbnailID)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ThumbnailResponse{
		ProductID:     res.ProductID,
		ThumbnailID:   res.NewID,
		AlreadyActive: res.AlreadyActive,
	})
}

// similarProducts
//
//	@Summary	Похожие товары
//	@Tags		similar
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	usecase.SimilarProductsRes
//	@Failure	400	{object}	ErrorResponse
//	@Router		/products/similar/{id} [get]
func (p *ProductHandler) similarProducts(w http.ResponseWriter, r *http.Request) {
	res, err := p.productUsecase.SimilarProducts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// addSimilar
//
//	@Summary	Добавление связей похожих товаров
//	@Tags		similar
//	@Accept		json
//	@Produce	json
//	@Param		pairs	body		AddSimilarRequest	true	"Пары товаров"
//	@Success	201		{object}	AffectedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/products/add-similar [post]
func (p *ProductHandler) addSimilar(w http.ResponseWriter, r *http.Request) {
	var req AddSimilarRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("similarity", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	inserted, err := p.productUsecase.AddSimilar(r.Context(), req.toEdges())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &AffectedResponse{
		Message:  "Pairs have been added successfully",
		Affected: inserted,
	})
}

// removeSimilar
//
//	@Summary	Удаление связи похожих товаров
//	@Tags		similar
//	@Accept		json
//	@Produce	json
//	@Param		pair	body		RemoveSimilarRequest	true	"Пара товаров"
//	@Success	200		{object}	MessageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/remove-similar [post]
func (p *ProductHandler) removeSimilar(w http.ResponseWriter, r *http.Request) {
	var req RemoveSimilarRequest
	if err := decodeJSON(r, &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := validateStruct("similarity", &req); err != nil {
		p.fail(w, r, err)
		return
	}

	if err := p.productUsecase.RemoveSimilar(r.Context(), req.ProductID, req.SimilarProductID); err != nil {
		p.fail(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Similar product for product id %s has been deleted", req.ProductID))
}

func (p *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logError(p.logger, r, err)
	WriteError(w, err)
}

// logError пишет 5xx как ошибки, остальное — как предупреждения.
func logError(log logger.Logger, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s", r.Method, r.URL.Path)
		return
	}

	log.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()

	var filter domain.ProductFilter
	if q.Has("title") {
		title := q.Get("title")
		filter.Title = &title
	}
	if q.Has("description") {
		description := q.Get("description")
		filter.Description = &description
	}

	for _, bound := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"priceFrom", &filter.PriceFrom},
		{"priceTo", &filter.PriceTo},
	} {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}

		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, e.Validation("product", fmt.Sprintf(`Field "%s" is not a number`, bound.name))
		}
		*bound.dst = &price
	}

	return filter, nil
}
