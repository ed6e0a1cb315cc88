package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/internal/rest/request"
	"github.com/Guyuepp/blog-comments/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CommentHandler represent the httphandler for comments
type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

// RegisterRoutes mounts the comment endpoints on r. auth guards the mutations.
func (h *CommentHandler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	r.GET("/posts/:id/comments", h.FetchByPost)
	r.GET("/posts/:id/comments/paginated", h.FetchByPostPaginated)
	r.GET("/posts/:id/comments/count", h.CountByPost)
	r.GET("/comments/:id", h.GetByID)
	r.GET("/comments/:id/replies", h.FetchReplies)
	r.GET("/users/:id/comments", h.FetchByUser)
	r.GET("/users/:id/comments/count", h.CountByUser)

	authorized := r.Group("/")
	authorized.Use(auth)
	{
		authorized.POST("/posts/:id/comments", h.Create)
		authorized.POST("/comments/:id/replies", h.CreateReply)
		authorized.PUT("/comments/:id", h.Update)
		authorized.DELETE("/comments/:id", h.Delete)
		authorized.PUT("/comments/:id/approve", h.Approve)
		authorized.PUT("/comments/:id/disapprove", h.Disapprove)
	}
}

// FetchByPost returns every comment of a post as a forest
func (h *CommentHandler) FetchByPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.Service.FetchByPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentsFromDomain(list))
}

// FetchByPostPaginated pages the top-level comments of a post
func (h *CommentHandler) FetchByPostPaginated(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Service.FetchByPostPaginated(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentPage(page))
}

func (h *CommentHandler) CountByPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.Service.CountByPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Count{Count: n})
}

// Create stores a comment on the post, optionally as a reply
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Service.Create(c.Request.Context(), req.Content, id, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(res))
}

func (h *CommentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(res))
}

// FetchReplies pages the direct replies of a comment, each with its subtree
func (h *CommentHandler) FetchReplies(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Service.FetchRepliesPaginated(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentPage(page))
}

func (h *CommentHandler) CreateReply(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.CommentContent
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Service.CreateReply(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(res))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.CommentContent
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Service.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(res))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) Approve(c *gin.Context) {
	h.moderate(c, h.Service.Approve)
}

func (h *CommentHandler) Disapprove(c *gin.Context) {
	h.moderate(c, h.Service.Disapprove)
}

func (h *CommentHandler) moderate(c *gin.Context, fn func(context.Context, int64) (*domain.Comment, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(res))
}

// FetchByUser pages the comments written by a user
func (h *CommentHandler) FetchByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Service.FetchByUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentPage(page))
}

func (h *CommentHandler) CountByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.Service.CountByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Count{Count: n})
}

// pathID reads the :id param. Anything but a positive integer is a 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Kind: domain.KindNotFound, Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

func pageRequest(c *gin.Context) (domain.PageRequest, bool) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return domain.PageRequest{}, false
	}
	return q.ToDomain(), true
}

func respondError(c *gin.Context, err error) {
	c.JSON(getStatusCode(err), ResponseError{Kind: domain.ErrorKind(err), Message: err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ResponseError{Kind: domain.KindValidation, Message: err.Error()})
}

// getStatusCode will get the code of the error from domain.CommentUsecase
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientPermissions):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidParentComment), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		logrus.Error(err)
		return http.StatusGatewayTimeout
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}
