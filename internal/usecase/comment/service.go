package comment

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-comments/domain"
)

const bloomInitBatch = 1000

type service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
	userRepo    domain.UserRepository
	bloomRepo   domain.BloomRepository
}

var _ domain.CommentUsecase = (*service)(nil)

// NewService wires the comment usecase. bloomRepo may be nil to disable the
// post existence pre-check.
func NewService(commentRepo domain.CommentRepository, postRepo domain.PostRepository, userRepo domain.UserRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		bloomRepo:   bloomRepo,
	}
}

// InitBloomFilter loads every post id into the bloom filter in batches.
func (s *service) InitBloomFilter(ctx context.Context) error {
	if s.bloomRepo == nil {
		return nil
	}
	var cursor, total int64
	for {
		ids, err := s.postRepo.FetchIDs(ctx, cursor, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			break
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		total += int64(len(ids))
		cursor = ids[len(ids)-1]
		if len(ids) < bloomInitBatch {
			break
		}
	}
	logrus.Infof("bloom filter initialized with %d post ids", total)
	return nil
}

// bloomMayContain reports whether the filter may hold postID. Errors and a
// disabled filter count as "maybe".
func (s *service) bloomMayContain(ctx context.Context, postID int64) bool {
	if s.bloomRepo == nil {
		return true
	}
	exists, err := s.bloomRepo.Exists(ctx, postID)
	if err != nil {
		logrus.Warnf("bloom filter check failed for post %d: %v", postID, err)
		return true
	}
	return exists
}

// resolvePost fails with ErrNotFound only when the post store has no such post.
// Posts are published by another service, so a bloom miss is confirmed
// against the store and a post found that way is added to the filter.
func (s *service) resolvePost(ctx context.Context, postID int64) error {
	known := s.bloomMayContain(ctx, postID)
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	if !known {
		logrus.Infof("post %d missing from bloom filter, adding it", postID)
		if err := s.bloomRepo.Add(ctx, postID); err != nil {
			logrus.Warnf("failed to add post %d to bloom filter: %v", postID, err)
		}
	}
	return nil
}

func principalFrom(ctx context.Context) *domain.Principal {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return nil
	}
	return &p
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.NewValidationError("content must not be blank")
	}
	return nil
}

func (s *service) Create(ctx context.Context, content string, postID int64, parentID *int64) (*domain.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	principal := principalFrom(ctx)
	if err := Authorize(principal, ActionCreate, 0); err != nil {
		return nil, err
	}
	if err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: comment %d belongs to post %d, not %d",
				domain.ErrInvalidParentComment, parent.ID, parent.PostID, postID)
		}
		pid := parent.ID
		parentID = &pid
	}

	now := time.Now()
	c := &domain.Comment{
		PostID:    postID,
		UserID:    principal.UserID,
		ParentID:  parentID,
		Content:   content,
		Approved:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return nil, err
	}
	return s.treeOf(ctx, *c)
}

func (s *service) CreateReply(ctx context.Context, parentID int64, content string) (*domain.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := Authorize(principalFrom(ctx), ActionCreate, 0); err != nil {
		return nil, err
	}
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, content, parent.PostID, &parent.ID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.treeOf(ctx, *c)
}

func (s *service) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principalFrom(ctx), ActionUpdate, c.UserID); err != nil {
		return nil, err
	}

	c.Content = content
	c.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.treeOf(ctx, *c)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(principalFrom(ctx), ActionDelete, c.UserID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, c)
}

func (s *service) Approve(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.setApproved(ctx, id, ActionApprove, true)
}

func (s *service) Disapprove(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.setApproved(ctx, id, ActionDisapprove, false)
}

func (s *service) setApproved(ctx context.Context, id int64, action Action, approved bool) (*domain.Comment, error) {
	principal := principalFrom(ctx)
	if err := Authorize(principal, action, 0); err != nil {
		return nil, err
	}
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Approved = approved
	c.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"comment_id": id,
		"action":     action.String(),
		"by":         principal.UserID,
	}).Info("comment moderated")
	return s.treeOf(ctx, *c)
}

func (s *service) FetchByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	set, err := s.commentRepo.FetchByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	res := newTree(set).forest()
	if err := s.fillUserDetails(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) FetchByPostPaginated(ctx context.Context, postID int64, req domain.PageRequest) (domain.Page[*domain.Comment], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	if err := s.resolvePost(ctx, postID); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	p, err := s.commentRepo.FetchTopLevel(ctx, postID, req)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	return s.pageOfTrees(ctx, p)
}

func (s *service) FetchRepliesPaginated(ctx context.Context, commentID int64, req domain.PageRequest) (domain.Page[*domain.Comment], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	parent, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	p, err := s.commentRepo.FetchReplies(ctx, parent.ID, req)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	return s.pageOfTrees(ctx, p)
}

func (s *service) FetchByUser(ctx context.Context, userID int64, req domain.PageRequest) (domain.Page[*domain.Comment], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	p, err := s.commentRepo.FetchByUser(ctx, userID, req)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	return s.pageOfTrees(ctx, p)
}

func (s *service) CountByPost(ctx context.Context, postID int64) (int64, error) {
	if err := s.resolvePost(ctx, postID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountByPost(ctx, postID)
}

func (s *service) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountByUser(ctx, userID)
}

// treeOf expands c against the current comment set of its post.
func (s *service) treeOf(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	set, err := s.commentRepo.FetchByPost(ctx, c.PostID)
	if err != nil {
		return nil, err
	}
	node := newTree(set).expand(c)
	if err := s.fillUserDetails(ctx, []*domain.Comment{node}); err != nil {
		return nil, err
	}
	return node, nil
}

// fillUserDetails attaches author display info to every node with one lookup.
// Authors that no longer exist are left nil.
func (s *service) fillUserDetails(ctx context.Context, roots []*domain.Comment) error {
	mapUsers := map[int64]*domain.User{}
	walk(roots, func(c *domain.Comment) {
		mapUsers[c.UserID] = nil
	})
	if len(mapUsers) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(mapUsers))
	for id := range mapUsers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range users {
		mapUsers[users[i].ID] = &users[i]
	}

	walk(roots, func(c *domain.Comment) {
		c.User = mapUsers[c.UserID]
	})
	return nil
}
