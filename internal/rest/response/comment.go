package response

import "github.com/Guyuepp/blog-comments/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type Comment struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	UserID    int64  `json:"user_id"`
	ParentID  *int64 `json:"parent_id"`
	Content   string `json:"content"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	// User 评论作者信息
	User *User `json:"user,omitempty"`
	// Replies 子评论列表, nested to any depth
	Replies []*Comment `json:"replies"`
}

// NewCommentFromDomain: Domain -> Response, replies included
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		Approved:  c.Approved,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt: c.UpdatedAt.Format(DateTimeFormat),
		User:      NewUserFromDomain(c.User),
		Replies:   NewCommentsFromDomain(c.Replies),
	}
}

func NewCommentsFromDomain(list []*domain.Comment) []*Comment {
	res := make([]*Comment, 0, len(list))
	for _, c := range list {
		res = append(res, NewCommentFromDomain(c))
	}
	return res
}

// NewCommentPage keeps the page metadata and converts the trees
func NewCommentPage(p domain.Page[*domain.Comment]) domain.Page[*Comment] {
	return domain.MapPage(p, NewCommentFromDomain)
}

// Count is the body of the count endpoints
type Count struct {
	Count int64 `json:"count"`
}
