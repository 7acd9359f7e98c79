package domain

// Comment описывает отзыв покупателя о товаре.
type Comment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	ProductID string `json:"productId"`
}

func NewComment(id, name, email, body, productID string) *Comment {
	return &Comment{
		ID:        id,
		Name:      name,
		Email:     email,
		Body:      body,
		ProductID: productID,
	}
}

// CommentPatch — административное частичное обновление комментария.
type CommentPatch struct {
	Name  *string
	Email *string
	Body  *string
}

func (p CommentPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Body == nil
}
