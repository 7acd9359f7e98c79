package catalog

import (
	"fmt"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/google/uuid"
)

// ValidateID проверяет, что идентификатор сущности — корректный UUID.
func ValidateID(entity, id string) error {
	_, err := NormalizeID(entity, id)
	return err
}

// NormalizeID приводит UUID к каноническому виду (нижний регистр, без скобок и urn:uuid:),
// в котором его хранит PostgreSQL.
func NormalizeID(entity, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", e.Validation(entity, fmt.Sprintf("%s id %q is not UUID", entity, id))
	}

	return parsed.String(), nil
}
