package model

import (
	"time"

	"github.com/Guyuepp/blog-comments/domain"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PostID    int64     `gorm:"column:post_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	ParentID  *int64    `gorm:"column:parent_id;index"`
	Content   string    `gorm:"type:text;not null"`
	Approved  bool      `gorm:"column:approved;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		Approved:  c.Approved,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		Approved:  m.Approved,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func CommentsToDomain(ms []Comment) []domain.Comment {
	res := make([]domain.Comment, len(ms))
	for i := range ms {
		res[i] = ms[i].ToDomain()
	}
	return res
}
