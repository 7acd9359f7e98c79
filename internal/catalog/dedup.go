package catalog

import (
	"strings"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
)

const (
	entityProduct = "product"
	entityComment = "comment"
	entityImage   = "image"
)

// CheckDuplicateComment возвращает ErrConflict, если среди existing есть комментарий
// к тому же товару с теми же email, name и body без учёта регистра.
func CheckDuplicateComment(candidate domain.Comment, existing []domain.Comment) error {
	for _, c := range existing {
		if c.ProductID != candidate.ProductID {
			continue
		}

		if strings.EqualFold(c.Email, candidate.Email) &&
			strings.EqualFold(c.Name, candidate.Name) &&
			strings.EqualFold(c.Body, candidate.Body) {
			return e.Conflict(entityComment, c.ID, "Comment with the same fields already exists")
		}
	}

	return nil
}

// ValidateComment проверяет обязательные поля нового комментария.
func ValidateComment(c domain.Comment) error {
	required := [...]struct{ name, value string }{
		{"name", c.Name},
		{"email", c.Email},
		{"body", c.Body},
		{"productId", c.ProductID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return e.Validation(entityComment, `Field "`+f.name+`" is absent`)
		}
	}

	return ValidateID(entityProduct, c.ProductID)
}
