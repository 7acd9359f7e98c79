package converter

import (
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует собранное представление товара в модель кэша и обратно.
type ProductConverter struct{}

func (ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	model := &ProductRedisModel{
		ID:          entity.ID,
		Title:       entity.Title,
		Description: entity.Description,
		Price:       entity.Price.String(),
	}

	for _, c := range entity.Comments {
		model.Comments = append(model.Comments, CommentRedisModel{ID: c.ID, Name: c.Name, Email: c.Email, Body: c.Body})
	}

	for _, img := range entity.Images {
		model.Images = append(model.Images, ImageRedisModel{ID: img.ID, URL: img.URL, Main: img.Main, ObjectKey: img.ObjectKey})
	}

	if entity.Thumbnail != nil {
		model.ThumbnailID = entity.Thumbnail.ID
	}

	return model
}

func (ProductConverter) ToDomain(model *ProductRedisModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, err
	}

	product := domain.NewProduct(model.ID, model.Title, model.Description, price)

	if model.Comments != nil {
		product.Comments = make([]domain.Comment, 0, len(model.Comments))
		for _, c := range model.Comments {
			product.Comments = append(product.Comments, *domain.NewComment(c.ID, c.Name, c.Email, c.Body, model.ID))
		}
	}

	if model.Images != nil {
		product.Images = make([]domain.Image, 0, len(model.Images))
		for _, img := range model.Images {
			image := domain.NewImage(img.ID, img.URL, model.ID, img.Main)
			image.ObjectKey = img.ObjectKey
			product.Images = append(product.Images, *image)
		}
	}

	for i := range product.Images {
		if product.Images[i].ID == model.ThumbnailID {
			product.Thumbnail = &product.Images[i]
			break
		}
	}

	return product, nil
}
