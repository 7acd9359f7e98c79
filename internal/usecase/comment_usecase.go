package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/metrics"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/google/uuid"
)

// CommentUseCase реализует операции над комментариями покупателей.
type CommentUseCase struct {
	commentRepo CommentRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	tx          TxRunner
	logger      logger.Logger
}

func NewCommentUC(
	commentRepo CommentRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	tx TxRunner,
	logger logger.Logger,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (c *CommentUseCase) ListComments(ctx context.Context) ([]domain.Comment, error) {
	const op = "CommentUseCase.ListComments"

	rows, err := c.commentRepo.All(ctx)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entityComment, err))
	}

	comments, err := catalog.MapComments(rows)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return comments, nil
}

func (c *CommentUseCase) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	const op = "CommentUseCase.GetComment"

	comment, err := c.loadComment(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return comment, nil
}

// CreateComment сохраняет комментарий, если у товара ещё нет такого же
// (email, name и body совпадают без учёта регистра).
// Строка товара блокируется на время проверки, поэтому два одинаковых
// параллельных запроса не создадут дубликат.
func (c *CommentUseCase) CreateComment(ctx context.Context, req *CreateCommentReq) (*domain.Comment, error) {
	const op = "CommentUseCase.CreateComment"

	comment := domain.NewComment(uuid.NewString(), req.Name, req.Email, req.Body, req.ProductID)
	if err := catalog.ValidateComment(*comment); err != nil {
		return nil, err
	}

	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := c.productRepo.LockByID(ctx, comment.ProductID)
		if err != nil {
			return e.Storage(entityProduct, err)
		}
		if !exists {
			return productNotFound(comment.ProductID)
		}

		rows, err := c.commentRepo.ByProduct(ctx, comment.ProductID)
		if err != nil {
			return e.Storage(entityComment, err)
		}

		existing, err := catalog.MapComments(rows)
		if err != nil {
			return err
		}

		if err := catalog.CheckDuplicateComment(*comment, existing); err != nil {
			return err
		}

		if err := c.commentRepo.Create(ctx, *comment); err != nil {
			return e.Storage(entityComment, err)
		}

		return recordEvent(ctx, c.outboxRepo, CommentCreated, comment.ProductID, commentEventData(*comment))
	})
	if err != nil {
		if errors.Is(err, e.ErrConflict) {
			metrics.RecordCommentConflict()
		}
		return nil, e.Wrap(op, err)
	}

	c.invalidate(ctx, comment.ProductID)
	return comment, nil
}

// UpdateComment меняет только переданные поля комментария.
func (c *CommentUseCase) UpdateComment(ctx context.Context, req *UpdateCommentReq) error {
	const op = "CommentUseCase.UpdateComment"

	if req.ID == "" {
		return e.Validation(entityComment, `Field "id" is absent`)
	}

	if req.Patch.Empty() {
		return e.Validation(entityComment, "Nothing to update")
	}

	current, err := c.loadComment(ctx, req.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	affected, err := c.commentRepo.Update(ctx, req.ID, req.Patch)
	if err != nil {
		return e.Wrap(op, e.Storage(entityComment, err))
	}
	if affected == 0 {
		return commentNotFound(req.ID)
	}

	c.invalidate(ctx, current.ProductID)
	return nil
}

func (c *CommentUseCase) DeleteComment(ctx context.Context, id string) error {
	const op = "CommentUseCase.DeleteComment"

	current, err := c.loadComment(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	affected, err := c.commentRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, e.Storage(entityComment, err))
	}
	if affected == 0 {
		return commentNotFound(id)
	}

	c.invalidate(ctx, current.ProductID)
	return nil
}

func (c *CommentUseCase) loadComment(ctx context.Context, id string) (*domain.Comment, error) {
	if err := catalog.ValidateID(entityComment, id); err != nil {
		return nil, err
	}

	rows, err := c.commentRepo.ByID(ctx, id)
	if err != nil {
		return nil, e.Storage(entityComment, err)
	}
	if len(rows) == 0 {
		return nil, commentNotFound(id)
	}

	comment, err := catalog.MapComment(rows[0])
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// Комментарии входят в кэшированное представление товара.
func (c *CommentUseCase) invalidate(ctx context.Context, productID string) {
	if err := c.cacheRepo.DeleteProducts(ctx, []string{productID}); err != nil {
		c.logger.Warnf("Failed to delete product %s from cache: %v", productID, err)
	}
}

func commentNotFound(id string) error {
	return e.NotFound(entityComment, id, fmt.Sprintf("Comment with id %s is not found", id))
}
