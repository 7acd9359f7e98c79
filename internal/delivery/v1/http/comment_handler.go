package http

import (
	"fmt"
	"net/http"

	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	commentUsecase usecase.CommentUC
	logger         logger.Logger
}

func NewCommentHandler(commentUsecase usecase.CommentUC, logger logger.Logger) *CommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase, logger: logger}
}

// listComments
//
//	@Summary	Все комментарии
//	@Tags		comments
//	@Produce	json
//	@Success	200	{array}		domain.Comment
//	@Failure	500	{object}	ErrorResponse
//	@Router		/comments [get]
func (c *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := c.commentUsecase.ListComments(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, comments)
}

// getComment
//
//	@Summary	Комментарий по идентификатору
//	@Tags		comments
//	@Produce	json
//	@Param		id	path		string	true	"ID комментария"
//	@Success	200	{object}	domain.Comment
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/comments/{id} [get]
func (c *CommentHandler) getComment(w http.ResponseWriter, r *http.Request) {
	comment, err := c.commentUsecase.GetComment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, comment)
}

// createComment
//
//	@Summary		Новый комментарий
//	@Description	Комментарий с теми же email, name и body (без учёта регистра) у того же товара отклоняется с 422
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			comment	body		CommentCreateRequest	true	"Комментарий"
//	@Success		201		{object}	CommentCreatedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/comments [post]
func (c *CommentHandler) createComment(w http.ResponseWriter, r *http.Request) {
	var req CommentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		c.fail(w, r, err)
		return
	}

	comment, err := c.commentUsecase.CreateComment(r.Context(), &usecase.CreateCommentReq{
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Body,
		ProductID: req.ProductID,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &CommentCreatedResponse{
		ID:      comment.ID,
		Message: fmt.Sprintf("Comment id:%s has been added!", comment.ID),
	})
}

// updateComment
//
//	@Summary	Изменение комментария
//	@Tags		comments
//	@Accept		json
//	@Produce	json
//	@Param		comment	body		CommentUpdateRequest	true	"id и изменяемые поля"
//	@Success	200		{object}	MessageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/comments [patch]
func (c *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		c.fail(w, r, err)
		return
	}

	if err := validateStruct("comment", &req); err != nil {
		c.fail(w, r, err)
		return
	}

	if err := c.commentUsecase.UpdateComment(r.Context(), req.toUsecase()); err != nil {
		c.fail(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Comment id:%s has been updated", req.ID))
}

// deleteComment
//
//	@Summary	Удаление комментария
//	@Tags		comments
//	@Param		id	path		string	true	"ID комментария"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/comments/{id} [delete]
func (c *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.commentUsecase.DeleteComment(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Comment id:%s has been deleted", id))
}

func (c *CommentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logError(c.logger, r, err)
	WriteError(w, err)
}
