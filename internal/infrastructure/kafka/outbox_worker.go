package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/metrics"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/jitter"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

const (
	outboxChannel = "outbox_pending"

	defaultBatchSize   = 10
	defaultMaxAttempts = 5
	pollInterval       = 30 * time.Second
	stuckAfter         = 5 * time.Minute
	retryBaseDelay     = time.Second
	retryMaxDelay      = time.Minute
)

// OutboxWorker пересылает события outbox в Kafka.
// Пачку забирает при старте, по NOTIFY outbox_pending и по таймеру;
// после неудачной пачки следующая попытка откладывается с экспоненциальной задержкой.
type OutboxWorker struct {
	repo        usecase.OutboxRepository
	logger      logger.Logger
	producer    usecase.MessageProducer
	dbConnStr   string
	batchSize   int
	maxAttempts int

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	retryBase time.Duration
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	batchSize int,
	maxAttempts int,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return &OutboxWorker{
		repo:        repo,
		logger:      logger,
		producer:    producer,
		dbConnStr:   dbConnStr,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		wake:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
		retryBase:   retryBaseDelay,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// Notify будит worker; повторные вызовы до обработки схлопываются.
func (w *OutboxWorker) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *OutboxWorker) run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var retry <-chan time.Time
	failures := 0

	drain := func() {
		if w.drain(ctx) {
			delay := jitter.ExponentialBackoff(w.retryBase, retryMaxDelay, failures, jitter.DefaultJitter)
			failures++
			w.logger.Warnf("Outbox batch had failures, retrying in %s", delay)
			retry = time.After(delay)
			return
		}
		failures = 0
		retry = nil
	}

	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	drain()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Worker stopped by context cancellation")
			return
		case <-w.stop:
			return
		case <-w.wake:
			drain()
		case <-retry:
			drain()
		case <-ticker.C:
			w.releaseStuck(ctx)
			drain()
		}
	}
}

// drain обрабатывает пачки, пока они не кончатся; true — если были неудачные отправки.
func (w *OutboxWorker) drain(ctx context.Context) bool {
	for {
		processed, failed, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return true
		}
		if failed > 0 {
			return true
		}
		if processed < w.batchSize {
			return false
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (processed, failed int, err error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range events {
		processed++
		if err := w.processEvent(ctx, event); err != nil {
			failed++
			w.handleFailure(ctx, event, err)
			continue
		}

		metrics.RecordOutboxPublish("ok")
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return processed, failed, nil
}

// handleFailure возвращает событие в очередь; неисправимые ошибки сразу переводят его в failed.
func (w *OutboxWorker) handleFailure(ctx context.Context, event *usecase.OutboxEvent, err error) {
	maxAttempts := w.maxAttempts
	result := "retry"
	if !isRetryableError(err) {
		maxAttempts = 1
		result = "failed"
	} else if event.Attempts+1 >= maxAttempts {
		result = "failed"
	}

	metrics.RecordOutboxPublish(result)
	w.logger.Warnf("Outbox event %s (%s) not published, attempt %d: %v", event.EventID, event.EventType, event.Attempts+1, err)

	if err := w.repo.MarkAsFailed(ctx, event.ID, maxAttempts); err != nil {
		w.logger.Warnf("mark failed failed: %v", err)
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	if err := w.SendBytes(ctx, event.ProductID, event.Payload); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

func (w *OutboxWorker) SendBytes(ctx context.Context, productID string, payload []byte) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(productID, payload))
}

func (w *OutboxWorker) releaseStuck(ctx context.Context) {
	released, err := w.repo.ReleaseStuck(ctx, int(stuckAfter.Seconds()))
	if err != nil {
		w.logger.Warnf("release stuck outbox events failed: %v", err)
		return
	}
	if released > 0 {
		w.logger.Infof("Released %d stuck outbox events", released)
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err := c.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
		return nil
	}

	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for attempt := 0; ; {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		if conn == nil {
			if err := connect(); err != nil {
				delay := jitter.ExponentialBackoff(w.retryBase, retryMaxDelay, attempt, jitter.DefaultJitter)
				attempt++
				w.logger.Warnf("LISTEN connect failed: %v, retrying in %s", err, delay)
				if !jitter.Sleep(w.stop, delay) {
					return
				}
				continue
			}
			attempt = 0
		}

		waitCtx, cancel := context.WithTimeout(ctx, pollInterval)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.Background())
			conn = nil
			continue
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.Notify()
		}
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
