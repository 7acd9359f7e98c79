package usecase

import (
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/shopspring/decimal"
)

// PRODUCT USECASE

// CreateProductReq — запрос на создание товара с изображениями, заданными ссылками.
type CreateProductReq struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Images      []NewImage
}

// NewImage — изображение, добавляемое к товару по готовому URL.
type NewImage struct {
	URL  string
	Main bool
}

// AddImagesReq — добавление изображений к существующему товару.
type AddImagesReq struct {
	ProductID string
	Images    []NewImage
}

// RemoveImagesReq — удаление изображений товара по идентификаторам.
type RemoveImagesReq struct {
	ProductID string
	ImageIDs  []string
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// UploadProductImagesReq — загрузка файлов изображений товара в объектное хранилище.
type UploadProductImagesReq struct {
	ProductID string
	Images    []ProductImage
}

// SimilarProductsRes — ответ со списком похожих товаров.
type SimilarProductsRes struct {
	SimilarProducts []domain.SimilarProduct `json:"similarProducts"`
}

// COMMENT USECASE

// CreateCommentReq — новый комментарий покупателя.
type CreateCommentReq struct {
	Name      string
	Email     string
	Body      string
	ProductID string
}

// UpdateCommentReq — административное изменение комментария.
type UpdateCommentReq struct {
	ID    string
	Patch domain.CommentPatch
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений товара в MinIO.
type UploadImagesReq struct {
	Prefix string
	Images []ProductImage
}

// UploadedImage — загруженный объект: ключ в бакете и публичный адрес.
type UploadedImage struct {
	Key string
	URL string
}

// UploadImagesRes — результат загрузки изображений, в порядке запроса.
type UploadImagesRes struct {
	Images []UploadedImage
}

// Keys возвращает ключи загруженных объектов.
func (r *UploadImagesRes) Keys() []string {
	keys := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		keys = append(keys, img.Key)
	}

	return keys
}

// WriteRawMessageReq — готовое к отправке сообщение в Kafka.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

type OutboxEventType string

const (
	ProductCreated          OutboxEventType = "product.created"
	ProductUpdated          OutboxEventType = "product.updated"
	ProductDeleted          OutboxEventType = "product.deleted"
	ProductThumbnailChanged OutboxEventType = "product.thumbnail_changed"
	CommentCreated          OutboxEventType = "comment.created"
)

// OutboxEvent — событие, записанное в outbox_events в транзакции изменения.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   string
	Payload     []byte
	Status      OutboxStatus
	Attempts    int
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewCreateProductReq(title, description string, price decimal.Decimal, images []NewImage) *CreateProductReq {
	return &CreateProductReq{
		Title:       title,
		Description: description,
		Price:       price,
		Images:      images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(prefix string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Prefix: prefix,
		Images: images,
	}
}

func NewUploadImagesRes(images []UploadedImage) *UploadImagesRes {
	return &UploadImagesRes{
		Images: images,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
