//go:build integration

package pgdb

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/pgdb/converter"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsURL = "file://../../../db/migrations"

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startPostgres поднимает PostgreSQL в контейнере и применяет миграции.
func startPostgres(t *testing.T) *postgres.PgDatabase {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "shop",
			"POSTGRES_PASSWORD": "secret",
			"POSTGRES_DB":       "shop",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://shop:secret@%s:%s/shop?sslmode=disable", host, port.Port())
	db, err := postgres.ConnectDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	log := logger.NewSlogLoggerWithWriter(io.Discard, "error", "json")
	require.NoError(t, db.RunMigrationsFrom(log, migrationsURL))

	return db
}

type repos struct {
	products   *ProductRepo
	comments   *CommentRepo
	images     *ImageRepo
	similarity *SimilarityRepo
	outbox     *OutboxEventRepo
	tx         *usecase.PgTxRunner
}

func newRepos(db *postgres.PgDatabase) repos {
	return repos{
		products:   NewProductRepo(db.Pool, converter.ProductConverter{}),
		comments:   NewCommentRepo(db.Pool),
		images:     NewImageRepo(db.Pool),
		similarity: NewSimilarityRepo(db.Pool),
		outbox:     NewOutboxEventRepo(db.Pool, converter.OutboxEventConverter{}),
		tx:         usecase.NewPgTxRunner(db.Pool),
	}
}

func seedProduct(t *testing.T, r repos, title, price string) string {
	t.Helper()

	id := uuid.NewString()
	p := domain.NewProduct(id, title, title+" description", decimal.RequireFromString(price))
	require.NoError(t, r.products.Create(context.Background(), *p))

	return id
}

func TestRepositories(t *testing.T) {
	db := startPostgres(t)
	r := newRepos(db)
	ctx := context.Background()

	lamp := seedProduct(t, r, "Desk lamp", "19.90")
	shade := seedProduct(t, r, "Lamp shade", "5.00")
	chair := seedProduct(t, r, "Chair", "120.00")

	t.Run("product rows map back to products", func(t *testing.T) {
		rows, err := r.products.All(ctx)
		require.NoError(t, err)

		products, err := catalog.MapProducts(rows)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, lamp, products[0].ID)
		assert.True(t, decimal.RequireFromString("19.90").Equal(products[0].Price))
	})

	t.Run("search joins criteria with OR", func(t *testing.T) {
		title := "shade"
		from := decimal.NewFromInt(100)
		query, args, err := catalog.CompileFilter(domain.ProductFilter{Title: &title, PriceFrom: &from})
		require.NoError(t, err)

		rows, err := r.products.Search(ctx, query, args)
		require.NoError(t, err)

		products, err := catalog.MapProducts(rows)
		require.NoError(t, err)
		require.Len(t, products, 2)
		ids := []string{products[0].ID, products[1].ID}
		assert.Equal(t, []string{shade, chair}, ids)
	})

	t.Run("search keeps insertion order after updates", func(t *testing.T) {
		// UPDATE переписывает кортеж в конец кучи, выдача от этого не меняется
		p := domain.NewProduct(lamp, "Desk lamp", "Desk lamp description", decimal.RequireFromString("19.90"))
		affected, err := r.products.Update(ctx, *p)
		require.NoError(t, err)
		require.EqualValues(t, 1, affected)

		query, args, err := catalog.CompileFilter(domain.ProductFilter{})
		require.NoError(t, err)
		rows, err := r.products.Search(ctx, query, args)
		require.NoError(t, err)

		products, err := catalog.MapProducts(rows)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, []string{lamp, shade, chair}, []string{products[0].ID, products[1].ID, products[2].ID})
	})

	t.Run("thumbnail swap keeps one main image", func(t *testing.T) {
		first, second := uuid.NewString(), uuid.NewString()
		require.NoError(t, r.images.Insert(ctx, []domain.Image{
			*domain.NewImage(first, "https://cdn.example.com/1.png", lamp, true),
			*domain.NewImage(second, "https://cdn.example.com/2.png", lamp, false),
		}))

		swapper := catalog.NewThumbnailSwapper(r.images)
		res, err := swapper.Swap(ctx, lamp, second)
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.RowsAffected)

		mainRows, err := r.images.MainImages(ctx, lamp)
		require.NoError(t, err)
		require.Len(t, mainRows, 1)
		img, err := catalog.MapImage(mainRows[0])
		require.NoError(t, err)
		assert.Equal(t, second, img.ID)
	})

	t.Run("image delete returns object keys", func(t *testing.T) {
		uploaded, linked := uuid.NewString(), uuid.NewString()
		img := domain.NewImage(uploaded, "http://minio/product-images/x.png", shade, false)
		img.ObjectKey = shade + "/x.png"
		require.NoError(t, r.images.Insert(ctx, []domain.Image{
			*img,
			*domain.NewImage(linked, "https://cdn.example.com/y.png", shade, false),
		}))

		rows, err := r.images.DeleteByIDs(ctx, shade, []string{uploaded, linked})
		require.NoError(t, err)

		deleted, err := catalog.MapImages(rows)
		require.NoError(t, err)
		require.Len(t, deleted, 2)
		keys := []string{deleted[0].ObjectKey, deleted[1].ObjectKey}
		assert.ElementsMatch(t, []string{shade + "/x.png", ""}, keys)
	})

	t.Run("similarity graph is undirected", func(t *testing.T) {
		graph := catalog.NewSimilarityGraph(r.similarity)

		n, err := graph.AddEdges(ctx, []domain.SimilarityEdge{
			{ProductID: lamp, SimilarProductID: shade},
			{ProductID: shade, SimilarProductID: lamp},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = graph.AddEdges(ctx, []domain.SimilarityEdge{{ProductID: shade, SimilarProductID: lamp}})
		require.NoError(t, err)
		assert.Zero(t, n, "existing edge is skipped")

		neighbors, err := graph.NeighborsOf(ctx, shade)
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		assert.Equal(t, lamp, neighbors[0].ID)

		require.NoError(t, graph.RemoveEdge(ctx, shade, lamp))
		neighbors, err = graph.NeighborsOf(ctx, lamp)
		require.NoError(t, err)
		assert.Empty(t, neighbors)
	})

	t.Run("comment patch touches only given fields", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, r.comments.Create(ctx, *domain.NewComment(id, "Ann", "ann@example.com", "Nice", chair)))

		body := "Very nice"
		n, err := r.comments.Update(ctx, id, domain.CommentPatch{Body: &body})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		rows, err := r.comments.ByID(ctx, id)
		require.NoError(t, err)
		c, err := catalog.MapComment(rows[0])
		require.NoError(t, err)
		assert.Equal(t, "Ann", c.Name)
		assert.Equal(t, "Very nice", c.Body)
	})

	t.Run("outbox event is committed with the transaction", func(t *testing.T) {
		event, err := usecase.NewOutboxEvent(usecase.ProductUpdated, chair, nil)
		require.NoError(t, err)

		require.NoError(t, r.tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := r.outbox.Create(ctx, event)
			return err
		}))

		events, err := r.outbox.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, usecase.Processing, events[0].Status)

		require.NoError(t, r.outbox.MarkAsFailed(ctx, events[0].ID, 1))
		again, err := r.outbox.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, again, "event with exhausted attempts stays failed")
	})

	t.Run("outbox create requires a transaction", func(t *testing.T) {
		event, err := usecase.NewOutboxEvent(usecase.ProductDeleted, chair, nil)
		require.NoError(t, err)

		_, err = r.outbox.Create(ctx, event)
		assert.Error(t, err)
	})

	t.Run("delete cascade", func(t *testing.T) {
		_, err := r.comments.DeleteByProduct(ctx, chair)
		require.NoError(t, err)
		_, err = r.images.DeleteByProduct(ctx, chair)
		require.NoError(t, err)
		_, err = r.similarity.DeleteByProduct(ctx, chair)
		require.NoError(t, err)

		n, err := r.products.Delete(ctx, chair)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		exists, err := r.products.LockByID(ctx, chair)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
