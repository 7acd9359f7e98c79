package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockThumbnailStore struct {
	mock.Mock
}

func (m *mockThumbnailStore) MainImages(ctx context.Context, productID string) ([]Row, error) {
	args := m.Called(ctx, productID)
	rows, _ := args.Get(0).([]Row)
	return rows, args.Error(1)
}

func (m *mockThumbnailStore) ProductImage(ctx context.Context, productID, imageID string) ([]Row, error) {
	args := m.Called(ctx, productID, imageID)
	rows, _ := args.Get(0).([]Row)
	return rows, args.Error(1)
}

func (m *mockThumbnailStore) SwapMain(ctx context.Context, productID, oldID, newID string) (int64, error) {
	args := m.Called(ctx, productID, oldID, newID)
	return args.Get(0).(int64), args.Error(1)
}

func TestThumbnailSwapper_Swap(t *testing.T) {
	ctx := context.Background()
	store := &mockThumbnailStore{}
	store.On("MainImages", ctx, productA).Return([]Row{imageRow(imageOne, productA, true)}, nil)
	store.On("ProductImage", ctx, productA, imageTwo).Return([]Row{imageRow(imageTwo, productA, false)}, nil)
	store.On("SwapMain", ctx, productA, imageOne, imageTwo).Return(int64(2), nil)

	res, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageTwo)
	require.NoError(t, err)
	assert.Equal(t, imageOne, res.OldID)
	assert.Equal(t, imageTwo, res.NewID)
	assert.EqualValues(t, 2, res.RowsAffected)
	store.AssertExpectations(t)
}

func TestThumbnailSwapper_IncorrectProduct(t *testing.T) {
	ctx := context.Background()

	for name, mains := range map[string][]Row{
		"no main image":        nil,
		"several main images": {imageRow(imageOne, productA, true), imageRow(imageTwo, productA, true)},
	} {
		t.Run(name, func(t *testing.T) {
			store := &mockThumbnailStore{}
			store.On("MainImages", ctx, productA).Return(mains, nil)

			_, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageTwo)
			require.ErrorIs(t, err, e.ErrValidation)
			assert.Contains(t, err.Error(), "Incorrect product id")
			store.AssertNotCalled(t, "SwapMain", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestThumbnailSwapper_ImageOfAnotherProduct(t *testing.T) {
	ctx := context.Background()
	store := &mockThumbnailStore{}
	store.On("MainImages", ctx, productA).Return([]Row{imageRow(imageOne, productA, true)}, nil)
	store.On("ProductImage", ctx, productA, imageSix).Return([]Row{}, nil)

	_, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageSix)
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Incorrect new thumbnail id")
	store.AssertNotCalled(t, "SwapMain", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestThumbnailSwapper_NoRowsUpdated(t *testing.T) {
	ctx := context.Background()
	store := &mockThumbnailStore{}
	store.On("MainImages", ctx, productA).Return([]Row{imageRow(imageOne, productA, true)}, nil)
	store.On("ProductImage", ctx, productA, imageTwo).Return([]Row{imageRow(imageTwo, productA, false)}, nil)
	store.On("SwapMain", ctx, productA, imageOne, imageTwo).Return(int64(0), nil)

	_, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageTwo)
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestThumbnailSwapper_AlreadyMain(t *testing.T) {
	ctx := context.Background()
	store := &mockThumbnailStore{}
	store.On("MainImages", ctx, productA).Return([]Row{imageRow(imageOne, productA, true)}, nil)
	store.On("ProductImage", ctx, productA, imageOne).Return([]Row{imageRow(imageOne, productA, true)}, nil)

	res, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageOne)
	require.NoError(t, err)
	assert.True(t, res.AlreadyActive)
	store.AssertNotCalled(t, "SwapMain", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestThumbnailSwapper_Validation(t *testing.T) {
	store := &mockThumbnailStore{}
	swapper := NewThumbnailSwapper(store)

	_, err := swapper.Swap(context.Background(), "p1", imageOne)
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = swapper.Swap(context.Background(), productA, "")
	assert.ErrorIs(t, err, e.ErrValidation)

	store.AssertNotCalled(t, "MainImages", mock.Anything, mock.Anything)
}

func TestThumbnailSwapper_StorageError(t *testing.T) {
	ctx := context.Background()
	store := &mockThumbnailStore{}
	store.On("MainImages", ctx, productA).Return(nil, errors.New("db down"))

	_, err := NewThumbnailSwapper(store).Swap(ctx, productA, imageTwo)
	require.ErrorIs(t, err, e.ErrStorage)
}
