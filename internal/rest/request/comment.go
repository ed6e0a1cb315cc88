package request

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Guyuepp/blog-comments/domain"
)

// Comment is the body of POST /posts/:id/comments
type Comment struct {
	Content  string `json:"content" binding:"required,notblank,max=10000"`
	ParentID *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

// CommentContent is the body of reply creation and content updates
type CommentContent struct {
	Content string `json:"content" binding:"required,notblank,max=10000"`
}

// PageQuery carries the optional paging parameters of listing endpoints
type PageQuery struct {
	PageNo   *int `form:"pageNo" binding:"omitempty,min=0"`
	PageSize *int `form:"pageSize" binding:"omitempty,min=1"`
}

// ToDomain applies defaults and caps the page size.
func (q PageQuery) ToDomain() domain.PageRequest {
	req := domain.PageRequest{
		PageNo:   domain.DefaultPageNo,
		PageSize: domain.DefaultPageSize,
	}
	if q.PageNo != nil {
		req.PageNo = *q.PageNo
	}
	if q.PageSize != nil {
		req.PageSize = min(*q.PageSize, domain.MaxPageSize)
	}
	return req
}

// RegisterValidators adds the custom tags used by the request structs to
// gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("notblank", validators.NotBlank)
}
