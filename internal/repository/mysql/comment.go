package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.CommentDBRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("comment", "id", id)
	}
	if err != nil {
		return nil, err
	}
	res := comment.ToDomain()
	return &res, nil
}

func (c *commentRepository) FetchByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return model.CommentsToDomain(comments), nil
}

func (c *commentRepository) FetchTopLevel(ctx context.Context, postID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	query := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID)
	return c.page(query, req)
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	query := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("parent_id = ?", parentID)
	return c.page(query, req)
}

func (c *commentRepository) FetchByUser(ctx context.Context, userID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	query := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("user_id = ?", userID)
	return c.page(query, req)
}

// page counts the filtered rows and loads the requested window, newest first.
func (c *commentRepository) page(query *gorm.DB, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return domain.Page[domain.Comment]{}, err
	}

	if req.PastEnd(total) {
		return domain.NewPage([]domain.Comment{}, req, total), nil
	}

	var comments []model.Comment
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&comments).Error
	if err != nil {
		return domain.Page[domain.Comment]{}, err
	}

	return domain.NewPage(model.CommentsToDomain(comments), req, total), nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	m := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	comment.ID = m.ID
	comment.CreatedAt = m.CreatedAt
	comment.UpdatedAt = m.UpdatedAt
	return nil
}

func (c *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if comment.UpdatedAt.IsZero() {
		comment.UpdatedAt = time.Now()
	}
	// a map keeps approved=false from being skipped as a zero value
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{ID: comment.ID}).
		Updates(map[string]any{
			"content":    comment.Content,
			"approved":   comment.Approved,
			"updated_at": comment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("comment", "id", comment.ID)
	}
	return nil
}

func (c *commentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	result := c.DB.WithContext(ctx).Delete(&model.Comment{}, comment.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("comment", "id", comment.ID)
	}
	return nil
}

func (c *commentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var total int64
	err := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&total).Error
	return total, err
}

func (c *commentRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
