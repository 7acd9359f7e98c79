package catalog

import (
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshProducts(t *testing.T) []domain.Product {
	t.Helper()

	products, err := MapProducts([]Row{
		productRow(productA, "lamp", "10"),
		productRow(productB, "desk", "20"),
		productRow(productC, "chair", "30"),
	})
	require.NoError(t, err)

	return products
}

func TestAttachComments_GroupsByProductInRowOrder(t *testing.T) {
	products, err := AttachComments(freshProducts(t), []Row{
		commentRow("c2", productB, "Ann", "ann@x.com", "second"),
		commentRow("c1", productA, "Bob", "bob@x.com", "first"),
		commentRow("c3", productB, "Eve", "eve@x.com", "third"),
	})
	require.NoError(t, err)

	require.Len(t, products[0].Comments, 1)
	assert.Equal(t, "c1", products[0].Comments[0].ID)

	require.Len(t, products[1].Comments, 2)
	assert.Equal(t, "c2", products[1].Comments[0].ID)
	assert.Equal(t, "c3", products[1].Comments[1].ID)

	assert.Nil(t, products[2].Comments, "product without comments keeps comments unset")
}

func TestAttachComments_MutatesInPlace(t *testing.T) {
	products := freshProducts(t)
	out, err := AttachComments(products, []Row{commentRow("c1", productA, "Bob", "bob@x.com", "hi")})
	require.NoError(t, err)

	assert.Same(t, &products[0], &out[0])
	assert.Len(t, products[0].Comments, 1)
}

func TestAttachImages_ThumbnailPolicy(t *testing.T) {
	tests := []struct {
		name      string
		rows      []Row
		wantImgs  int
		wantThumb string
	}{
		{
			name:      "main image wins over order",
			rows:      []Row{imageRow(imageOne, productA, false), imageRow(imageTwo, productA, true)},
			wantImgs:  2,
			wantThumb: imageTwo,
		},
		{
			name:      "first image when none is main",
			rows:      []Row{imageRow(imageTwo, productA, false), imageRow(imageOne, productA, false)},
			wantImgs:  2,
			wantThumb: imageTwo,
		},
		{
			name:      "first main image when several are main",
			rows:      []Row{imageRow(imageOne, productA, false), imageRow(imageTwo, productA, true), imageRow(imageSix, productA, true)},
			wantImgs:  3,
			wantThumb: imageTwo,
		},
		{
			name:     "no images",
			rows:     []Row{imageRow(imageOne, productB, true)},
			wantImgs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := AttachImages(freshProducts(t), tt.rows)
			require.NoError(t, err)

			p := products[0]
			assert.Len(t, p.Images, tt.wantImgs)
			if tt.wantThumb == "" {
				assert.Nil(t, p.Thumbnail)
				assert.Nil(t, p.Images)
				return
			}

			require.NotNil(t, p.Thumbnail)
			assert.Equal(t, tt.wantThumb, p.Thumbnail.ID)
		})
	}
}

func TestAttachImages_ThumbnailReferencesImagesSlice(t *testing.T) {
	products, err := AttachImages(freshProducts(t), []Row{
		imageRow(imageOne, productA, false),
		imageRow(imageTwo, productA, true),
	})
	require.NoError(t, err)

	p := products[0]
	require.NotNil(t, p.Thumbnail)
	assert.Same(t, &p.Images[1], p.Thumbnail)
}

func TestBuildProductViews_Idempotent(t *testing.T) {
	productRows := []Row{productRow(productA, "lamp", "10"), productRow(productB, "desk", "20")}
	commentRows := []Row{commentRow("c1", productA, "Bob", "bob@x.com", "Nice")}
	imageRows := []Row{imageRow(imageOne, productA, false), imageRow(imageTwo, productB, true)}

	first, err := BuildProductViewsFromRows(productRows, commentRows, imageRows)
	require.NoError(t, err)
	second, err := BuildProductViewsFromRows(productRows, commentRows, imageRows)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := BuildProductViews(first, commentRows, imageRows)
	require.NoError(t, err)
	assert.Len(t, again[0].Comments, 1, "no accumulation across calls")
	assert.Len(t, again[0].Images, 1)
	assert.Equal(t, second, again)
}

func TestBuildProductViews_MalformedRows(t *testing.T) {
	_, err := BuildProductViews(freshProducts(t), []Row{{"comment_id": "c1"}}, nil)
	require.Error(t, err)

	_, err = BuildProductViews(freshProducts(t), nil, []Row{{"image_id": imageOne, "product_id": productA, "main": 3.5}})
	require.Error(t, err)
}
