package catalog

import (
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestCheckDuplicateComment(t *testing.T) {
	existing := []domain.Comment{
		{ID: "c1", Email: "A@x.com", Name: "Bob", Body: "Nice", ProductID: productA},
	}

	tests := []struct {
		name      string
		candidate domain.Comment
		conflict  bool
	}{
		{
			name:      "same fields ignoring case",
			candidate: domain.Comment{Email: "a@x.com", Name: "bob", Body: "nice", ProductID: productA},
			conflict:  true,
		},
		{
			name:      "different product",
			candidate: domain.Comment{Email: "a@x.com", Name: "bob", Body: "nice", ProductID: productB},
		},
		{
			name:      "same email different body",
			candidate: domain.Comment{Email: "a@x.com", Name: "bob", Body: "awful", ProductID: productA},
		},
		{
			name:      "same body different name",
			candidate: domain.Comment{Email: "a@x.com", Name: "alice", Body: "nice", ProductID: productA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDuplicateComment(tt.candidate, existing)
			if tt.conflict {
				assert.ErrorIs(t, err, e.ErrConflict)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateComment(t *testing.T) {
	valid := domain.Comment{Name: "Bob", Email: "bob@x.com", Body: "Nice", ProductID: productA}
	assert.NoError(t, ValidateComment(valid))

	missingBody := valid
	missingBody.Body = "  "
	err := ValidateComment(missingBody)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), `"body"`)

	badProduct := valid
	badProduct.ProductID = "p1"
	assert.ErrorIs(t, ValidateComment(badProduct), e.ErrValidation)
}
