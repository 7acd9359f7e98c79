//go:build integration

package redis

import (
	"context"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/redis/converter"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/clients"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const cachedProductID = "11111111-1111-4111-8111-111111111111"

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startRedis поднимает Redis в контейнере и возвращает репозиторий кэша поверх него.
func startRedis(t *testing.T) *CacheRepo {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	redisCfg := &cfg.RedisCfg{
		Addr:        host + ":" + port.Port(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		ProductTTL:  time.Minute,
	}
	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx))

	log := logger.NewSlogLoggerWithWriter(io.Discard, "error", "json")
	return NewCacheRepo(client, converter.ProductConverter{}, redisCfg, log)
}

func cached(t *testing.T, repo *CacheRepo) (domain.Product, bool) {
	t.Helper()

	products, err := repo.GetProducts(context.Background(), []string{cachedProductID})
	require.NoError(t, err)
	product, ok := products[cachedProductID]
	return product, ok
}

func TestCacheRepo_VersionGuard(t *testing.T) {
	repo := startRedis(t)
	ctx := context.Background()
	oldView := *domain.NewProduct(cachedProductID, "Lamp", "", decimal.NewFromInt(10))
	newView := *domain.NewProduct(cachedProductID, "Lamp v2", "", decimal.NewFromInt(12))

	version, err := repo.ProductVersion(ctx, cachedProductID)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, repo.SetProduct(ctx, oldView, version))
	product, ok := cached(t, repo)
	require.True(t, ok)
	assert.Equal(t, "Lamp", product.Title)

	// Обновление товара инвалидирует кэш, пока читатель ещё держит старое представление
	require.NoError(t, repo.DeleteProducts(ctx, []string{cachedProductID}))
	require.NoError(t, repo.SetProduct(ctx, oldView, version))
	_, ok = cached(t, repo)
	assert.False(t, ok, "stale view is not written back")

	fresh, err := repo.ProductVersion(ctx, cachedProductID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fresh)

	require.NoError(t, repo.SetProduct(ctx, newView, fresh))
	product, ok = cached(t, repo)
	require.True(t, ok)
	assert.Equal(t, "Lamp v2", product.Title)
}
