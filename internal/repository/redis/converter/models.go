package converter

// ProductRedisModel — представление товара в кэше Redis.
// Обложка хранится ссылкой на изображение, чтобы после чтения снова указывать на элемент Images.
type ProductRedisModel struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       string              `json:"price"`
	Comments    []CommentRedisModel `json:"comments,omitempty"`
	Images      []ImageRedisModel   `json:"images,omitempty"`
	ThumbnailID string              `json:"thumbnail_id,omitempty"`
}

type CommentRedisModel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

type ImageRedisModel struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Main      bool   `json:"main"`
	ObjectKey string `json:"object_key,omitempty"`
}
