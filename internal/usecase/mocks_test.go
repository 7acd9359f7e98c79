package usecase

import (
	"context"
	"io"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/stretchr/testify/mock"
)

const (
	productID = "11111111-1111-4111-8111-111111111111"
	otherID   = "22222222-2222-4222-8222-222222222222"
	imageOne  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa1"
	imageTwo  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa2"
	commentID = "cccccccc-cccc-4ccc-8ccc-ccccccccccc1"
)

func quietLogger() logger.Logger {
	return logger.NewSlogLoggerWithWriter(io.Discard, "error", "json")
}

// inlineTx выполняет fn без настоящей транзакции.
type inlineTx struct{ calls int }

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func rowsArg(args mock.Arguments, i int) []catalog.Row {
	rows, _ := args.Get(i).([]catalog.Row)
	return rows
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) All(ctx context.Context) ([]catalog.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args, 0), args.Error(1)
}

func (m *productRepoMock) ByID(ctx context.Context, id string) ([]catalog.Row, error) {
	args := m.Called(ctx, id)
	return rowsArg(args, 0), args.Error(1)
}

func (m *productRepoMock) LockByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *productRepoMock) Search(ctx context.Context, query string, qargs []any) ([]catalog.Row, error) {
	args := m.Called(ctx, query, qargs)
	return rowsArg(args, 0), args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *productRepoMock) Update(ctx context.Context, product domain.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *productRepoMock) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type commentRepoMock struct{ mock.Mock }

func (m *commentRepoMock) All(ctx context.Context) ([]catalog.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args, 0), args.Error(1)
}

func (m *commentRepoMock) ByID(ctx context.Context, id string) ([]catalog.Row, error) {
	args := m.Called(ctx, id)
	return rowsArg(args, 0), args.Error(1)
}

func (m *commentRepoMock) ByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID)
	return rowsArg(args, 0), args.Error(1)
}

func (m *commentRepoMock) Create(ctx context.Context, comment domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *commentRepoMock) Update(ctx context.Context, id string, patch domain.CommentPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *commentRepoMock) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *commentRepoMock) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type imageRepoMock struct{ mock.Mock }

func (m *imageRepoMock) MainImages(ctx context.Context, productID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID)
	return rowsArg(args, 0), args.Error(1)
}

func (m *imageRepoMock) ProductImage(ctx context.Context, productID, imageID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID, imageID)
	return rowsArg(args, 0), args.Error(1)
}

func (m *imageRepoMock) SwapMain(ctx context.Context, productID, oldID, newID string) (int64, error) {
	args := m.Called(ctx, productID, oldID, newID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *imageRepoMock) All(ctx context.Context) ([]catalog.Row, error) {
	args := m.Called(ctx)
	return rowsArg(args, 0), args.Error(1)
}

func (m *imageRepoMock) ByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID)
	return rowsArg(args, 0), args.Error(1)
}

func (m *imageRepoMock) Insert(ctx context.Context, images []domain.Image) error {
	return m.Called(ctx, images).Error(0)
}

func (m *imageRepoMock) DeleteByIDs(ctx context.Context, productID string, ids []string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID, ids)
	return rowsArg(args, 0), args.Error(1)
}

func (m *imageRepoMock) DeleteByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID)
	return rowsArg(args, 0), args.Error(1)
}

type similarityRepoMock struct{ mock.Mock }

func (m *similarityRepoMock) FindNeighbors(ctx context.Context, productID string) ([]catalog.Row, error) {
	args := m.Called(ctx, productID)
	return rowsArg(args, 0), args.Error(1)
}

func (m *similarityRepoMock) InsertEdges(ctx context.Context, edges []domain.SimilarityEdge) (int64, error) {
	args := m.Called(ctx, edges)
	return args.Get(0).(int64), args.Error(1)
}

func (m *similarityRepoMock) DeleteEdge(ctx context.Context, a, b string) (int64, error) {
	args := m.Called(ctx, a, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *similarityRepoMock) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// outboxRepoMock запоминает созданные события.
type outboxRepoMock struct {
	mock.Mock
	created []*OutboxEvent
}

func (m *outboxRepoMock) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.created = append(m.created, event)
	return event, nil
}

func (m *outboxRepoMock) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]*OutboxEvent)
	return events, args.Error(1)
}

func (m *outboxRepoMock) MarkAsProcessed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *outboxRepoMock) MarkAsFailed(ctx context.Context, id int64, maxAttempts int) error {
	return m.Called(ctx, id, maxAttempts).Error(0)
}

func (m *outboxRepoMock) ReleaseStuck(ctx context.Context, olderThanSeconds int) (int64, error) {
	args := m.Called(ctx, olderThanSeconds)
	return args.Get(0).(int64), args.Error(1)
}

// memCache — кэш в памяти вместо Redis, с той же проверкой версий.
type memCache struct {
	products map[string]domain.Product
	versions map[string]int64
	deleted  []string

	// beforeSet вызывается перед проверкой версии в SetProduct
	beforeSet func()
}

func newMemCache() *memCache {
	return &memCache{products: map[string]domain.Product{}, versions: map[string]int64{}}
}

func (c *memCache) GetProducts(_ context.Context, ids []string) (map[string]domain.Product, error) {
	res := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			res[id] = p
		}
	}
	return res, nil
}

func (c *memCache) ProductVersion(_ context.Context, id string) (int64, error) {
	return c.versions[id], nil
}

func (c *memCache) SetProduct(_ context.Context, product domain.Product, version int64) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	if c.versions[product.ID] != version {
		return nil
	}
	c.products[product.ID] = product
	return nil
}

func (c *memCache) DeleteProducts(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(c.products, id)
		c.versions[id]++
		c.deleted = append(c.deleted, id)
	}
	return nil
}

type imagesInfraMock struct{ mock.Mock }

func (m *imagesInfraMock) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*UploadImagesRes)
	return res, args.Error(1)
}

func (m *imagesInfraMock) CleanupImages(keys []string) {
	m.Called(keys)
}

func productRow(id, title, price string) catalog.Row {
	return catalog.Row{"product_id": id, "title": title, "description": title + " description", "price": price}
}

func imageRow(id, productID string, main bool) catalog.Row {
	return catalog.Row{"image_id": id, "product_id": productID, "url": "https://cdn.example.com/" + id + ".png", "main": main}
}

func uploadedImageRow(id, productID, objectKey string) catalog.Row {
	row := imageRow(id, productID, false)
	row["url"] = "http://minio:9000/product-images/" + objectKey
	row["object_key"] = objectKey
	return row
}

func commentRow(id, productID, name, email, body string) catalog.Row {
	return catalog.Row{"comment_id": id, "product_id": productID, "name": name, "email": email, "body": body}
}
