package minio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/infrastructure"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/jitter"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	cleanupAttempts   = 3
	cleanupBaseDelay  = time.Second
	cleanupMaxDelay   = 8 * time.Second
	cleanupTimeout    = 30 * time.Second
	defaultConcurrent = 4
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	objects     usecase.ObjectRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup

	cleanupBaseDelay time.Duration
}

func NewMinioInfrastructure(objects usecase.ObjectRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		objects:          objects,
		cfg:              cfg,
		logger:           logger,
		shutdownCtx:      shutdownCtx,
		cleanupBaseDelay: cleanupBaseDelay,
	}
}

// UploadImages загружает изображения товара параллельно, не больше MaxConcurrent одновременно.
// Результат идёт в порядке запроса. При первой ошибке остальные загрузки отменяются,
// а уже загруженные файлы удаляются в фоне.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}
	if m.cfg.UploadImagesLimit > 0 && len(req.Images) > m.cfg.UploadImagesLimit {
		return nil, e.Wrap(op, e.ErrTooManyImages)
	}

	limit := m.cfg.MaxConcurrent
	if limit <= 0 {
		limit = defaultConcurrent
	}

	uploaded := make([]usecase.UploadedImage, len(req.Images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, image := range req.Images {
		g.Go(func() error {
			ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
			if err != nil {
				return fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
			}

			objectID := uuid.NewString()
			objKey := fmt.Sprintf("%s/%s.%s", req.Prefix, objectID, ext)
			object := domain.NewImageObject(objectID, m.cfg.BucketName, objKey, image.Data, &image.Size, &image.MimeType)

			key, err := m.objects.Upload(gctx, object)
			if err != nil {
				return fmt.Errorf("upload %s failed: %w", image.Name, err)
			}

			uploaded[i] = usecase.UploadedImage{Key: key, URL: m.publicURL(key)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		m.CleanupImages(uploadedKeys(uploaded))
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadImagesRes(uploaded), nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет объекты с экспоненциальной задержкой и jitter между попытками.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up %d uploaded keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.objects.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			delay := jitter.ExponentialBackoff(m.cleanupBaseDelay, cleanupMaxDelay, attempt, jitter.DefaultJitter)
			if !jitter.Sleep(ctx.Done(), delay) {
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// publicURL — адрес объекта для витрины: <PublicURL>/<bucket>/<key>.
func (m *MinioInfrastructure) publicURL(key string) string {
	return strings.TrimRight(m.cfg.PublicURL, "/") + "/" + m.cfg.BucketName + "/" + key
}

func uploadedKeys(images []usecase.UploadedImage) []string {
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if img.Key != "" {
			keys = append(keys, img.Key)
		}
	}

	return keys
}
