package catalog

import (
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
)

// AttachComments раскладывает комментарии по товарам по product_id в порядке строк.
// Товару без комментариев поле Comments не присваивается.
// Товары изменяются на месте и возвращаются тем же срезом.
func AttachComments(products []domain.Product, commentRows []Row) ([]domain.Product, error) {
	comments, err := MapComments(commentRows)
	if err != nil {
		return nil, e.Wrap("catalog.AttachComments", err)
	}

	byProduct := make(map[string][]domain.Comment)
	for _, c := range comments {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}

	for i := range products {
		if list, ok := byProduct[products[i].ID]; ok {
			products[i].Comments = list
		}
	}

	return products, nil
}

// AttachImages раскладывает изображения по товарам и выбирает обложку:
// изображение с main=true, иначе первое изображение товара, иначе обложки нет.
// Если main=true у нескольких изображений, берётся первое из них.
func AttachImages(products []domain.Product, imageRows []Row) ([]domain.Product, error) {
	images, err := MapImages(imageRows)
	if err != nil {
		return nil, e.Wrap("catalog.AttachImages", err)
	}

	byProduct := make(map[string][]domain.Image)
	mainIdx := make(map[string]int)
	for _, img := range images {
		list := byProduct[img.ProductID]
		if _, seen := mainIdx[img.ProductID]; img.Main && !seen {
			mainIdx[img.ProductID] = len(list)
		}
		byProduct[img.ProductID] = append(list, img)
	}

	for i := range products {
		p := &products[i]
		p.Thumbnail = nil

		list, ok := byProduct[p.ID]
		if !ok {
			continue
		}

		p.Images = list
		if idx, ok := mainIdx[p.ID]; ok {
			p.Thumbnail = &p.Images[idx]
		} else if len(p.Images) > 0 {
			p.Thumbnail = &p.Images[0]
		}
	}

	return products, nil
}

// BuildProductViews собирает полное представление товаров: комментарии, изображения, обложку.
func BuildProductViews(products []domain.Product, commentRows, imageRows []Row) ([]domain.Product, error) {
	products, err := AttachComments(products, commentRows)
	if err != nil {
		return nil, err
	}

	return AttachImages(products, imageRows)
}

// BuildProductViewsFromRows маппит строки товаров и собирает их представления.
func BuildProductViewsFromRows(productRows, commentRows, imageRows []Row) ([]domain.Product, error) {
	products, err := MapProducts(productRows)
	if err != nil {
		return nil, e.Wrap("catalog.BuildProductViewsFromRows", err)
	}

	return BuildProductViews(products, commentRows, imageRows)
}
