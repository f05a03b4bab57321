package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"threadapi/internal/auth"
	"threadapi/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	PostID  uint   `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// DeleteCommentResponse reports a comment deletion.
type DeleteCommentResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListForPost godoc
// @Summary List the caller's comments on a post
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /post/{postId}/comments [post]
func (h *CommentHandler) ListForPost(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListCommentsForPostAndAuthor(c.Request().Context(), user.ID, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary Comment on an existing post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment data"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), user.ID, req.PostID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// GetComment godoc
// @Summary Get comment by id
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment/{id} [get]
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.commentService.GetComment(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} DeleteCommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	count, err := h.commentService.DeleteComment(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, DeleteCommentResponse{DeletedCount: count})
}
