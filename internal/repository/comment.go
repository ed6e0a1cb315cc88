package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/blog-comments/domain"
)

// DefaultCommentCacheTTL is the logical ttl of a cached post comment set
const DefaultCommentCacheTTL = 30 * time.Second

// commentRepository 协调层，协调缓存和数据库
type commentRepository struct {
	db           domain.CommentDBRepository
	cache        domain.CommentCache
	ttl          time.Duration
	rebuildGroup singleflight.Group
}

var _ domain.CommentRepository = (*commentRepository)(nil)

// NewCommentRepository 创建协调层repository. cache may be nil, then every read goes to the db.
func NewCommentRepository(db domain.CommentDBRepository, cache domain.CommentCache, ttl time.Duration) *commentRepository {
	if ttl <= 0 {
		ttl = DefaultCommentCacheTTL
	}
	return &commentRepository{
		db:    db,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return r.db.GetByID(ctx, id)
}

// FetchByPost serves the full comment set of a post, using logical expiry to avoid stampedes
func (r *commentRepository) FetchByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if r.cache != nil {
		comments, expired, err := r.cache.GetPostComments(ctx, postID)
		if err == nil {
			if expired {
				go r.rebuildPostComments(context.Background(), postID)
			}
			return comments, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("comment cache get error for post %d: %v", postID, err)
		}
	}

	result, err, _ := r.rebuildGroup.Do(groupKey(postID), func() (any, error) {
		return r.loadPostComments(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Comment), nil
}

func (r *commentRepository) FetchTopLevel(ctx context.Context, postID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	return r.db.FetchTopLevel(ctx, postID, req)
}

func (r *commentRepository) FetchReplies(ctx context.Context, parentID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	return r.db.FetchReplies(ctx, parentID, req)
}

func (r *commentRepository) FetchByUser(ctx context.Context, userID int64, req domain.PageRequest) (domain.Page[domain.Comment], error) {
	return r.db.FetchByUser(ctx, userID, req)
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	if err := r.db.Store(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.PostID)
	return nil
}

func (r *commentRepository) Update(ctx context.Context, c *domain.Comment) error {
	if err := r.db.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.PostID)
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, c *domain.Comment) error {
	if err := r.db.Delete(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.PostID)
	return nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	return r.db.CountByPost(ctx, postID)
}

func (r *commentRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.db.CountByUser(ctx, userID)
}

// loadPostComments reads the set from the db and refreshes the cache
func (r *commentRepository) loadPostComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := r.db.FetchByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.SetPostComments(ctx, postID, comments, r.ttl); err != nil {
			logrus.Warnf("failed to set comment cache for post %d: %v", postID, err)
		}
	}
	return comments, nil
}

// rebuildPostComments 异步重建评论缓存
func (r *commentRepository) rebuildPostComments(ctx context.Context, postID int64) {
	_, err, _ := r.rebuildGroup.Do(groupKey(postID), func() (any, error) {
		return r.loadPostComments(ctx, postID)
	})
	if err != nil {
		logrus.Errorf("rebuildPostComments failed for post %d: %v", postID, err)
	}
}

// invalidate drops the cached set after a write. On failure the stale entry
// ages out at its logical ttl.
func (r *commentRepository) invalidate(ctx context.Context, postID int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePostComments(ctx, postID); err != nil {
		logrus.Warnf("failed to invalidate comment cache for post %d: %v", postID, err)
	}
}

func groupKey(postID int64) string {
	return "post:" + strconv.FormatInt(postID, 10)
}
