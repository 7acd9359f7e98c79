package catalog

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
)

// ThumbnailStore — порт хранилища для смены обложки.
type ThumbnailStore interface {
	// MainImages возвращает строки изображений товара с main = true.
	MainImages(ctx context.Context, productID string) ([]Row, error)
	// ProductImage возвращает строку изображения imageID, если оно принадлежит productID.
	ProductImage(ctx context.Context, productID, imageID string) ([]Row, error)
	// SwapMain одним условным UPDATE снимает main с oldID и ставит на newID;
	// возвращает число изменённых строк.
	SwapMain(ctx context.Context, productID, oldID, newID string) (int64, error)
}

// SwapResult описывает выполненную смену обложки.
type SwapResult struct {
	ProductID     string
	OldID         string
	NewID         string
	RowsAffected  int64
	AlreadyActive bool
}

// ThumbnailSwapper — единственный разрешённый способ сменить обложку товара.
type ThumbnailSwapper struct {
	store ThumbnailStore
}

func NewThumbnailSwapper(store ThumbnailStore) *ThumbnailSwapper {
	return &ThumbnailSwapper{store: store}
}

// Swap делает newImageID обложкой товара productID.
// Ровно одно изображение товара должно быть обложкой до смены.
func (s *ThumbnailSwapper) Swap(ctx context.Context, productID, newImageID string) (*SwapResult, error) {
	const op = "ThumbnailSwapper.Swap"

	if err := ValidateID(entityProduct, productID); err != nil {
		return nil, err
	}
	if err := ValidateID(entityImage, newImageID); err != nil {
		return nil, err
	}

	mainRows, err := s.store.MainImages(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityImage, err))
	}
	if len(mainRows) != 1 {
		return nil, e.Validation(entityProduct, "Incorrect product id")
	}

	current, err := MapImage(mainRows[0])
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	candidateRows, err := s.store.ProductImage(ctx, productID, newImageID)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityImage, err))
	}
	if len(candidateRows) != 1 {
		return nil, e.Validation(entityImage, "Incorrect new thumbnail id")
	}

	res := &SwapResult{ProductID: productID, OldID: current.ID, NewID: newImageID}
	if current.ID == newImageID {
		res.AlreadyActive = true
		return res, nil
	}

	affected, err := s.store.SwapMain(ctx, productID, current.ID, newImageID)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityImage, err))
	}
	if affected == 0 {
		return nil, e.NotFound(entityImage, newImageID, "No image has been updated")
	}

	res.RowsAffected = affected
	return res, nil
}
