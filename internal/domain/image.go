package domain

// Image описывает изображение товара. Main помечает обложку товара.
type Image struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ProductID string `json:"productId"`
	Main      bool   `json:"main"`
	ObjectKey string `json:"-"` // ключ в MinIO, если файл загружен через сервис
}

func NewImage(id, url, productID string, main bool) *Image {
	return &Image{
		ID:        id,
		URL:       url,
		ProductID: productID,
		Main:      main,
	}
}

// ImageObject описывает загружаемый в S3 файл изображения
type ImageObject struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Bytes       []byte
	Size        *int64
	ContentType *string // Example: "image/png"
}

func NewImageObject(id string, bucket string, objectKey string, data []byte, size *int64, contentType *string) *ImageObject {
	return &ImageObject{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}
