package comment

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/blog-comments/domain"
)

// expandPage turns every row of a page into a tree built from the comment
// set of the post the row belongs to. Page metadata is kept as is.
func expandPage(p domain.Page[domain.Comment], trees map[int64]*tree) domain.Page[*domain.Comment] {
	return domain.MapPage(p, func(c domain.Comment) *domain.Comment {
		t, ok := trees[c.PostID]
		if !ok {
			t = newTree(nil)
		}
		return t.expand(c)
	})
}

// loadTrees fetches the comment set of each distinct post referenced by rows,
// one goroutine per post.
func (s *service) loadTrees(ctx context.Context, rows []domain.Comment) (map[int64]*tree, error) {
	postIDs := make(map[int64]struct{})
	for _, c := range rows {
		postIDs[c.PostID] = struct{}{}
	}

	var mu sync.Mutex
	trees := make(map[int64]*tree, len(postIDs))
	g, ctx := errgroup.WithContext(ctx)
	for postID := range postIDs {
		g.Go(func() error {
			set, err := s.commentRepo.FetchByPost(ctx, postID)
			if err != nil {
				return err
			}
			t := newTree(set)
			mu.Lock()
			trees[postID] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

// pageOfTrees expands a page fetched from the store and attaches authors.
func (s *service) pageOfTrees(ctx context.Context, p domain.Page[domain.Comment]) (domain.Page[*domain.Comment], error) {
	if len(p.Content) == 0 {
		return domain.MapPage(p, func(c domain.Comment) *domain.Comment { return &c }), nil
	}
	trees, err := s.loadTrees(ctx, p.Content)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	res := expandPage(p, trees)
	if err := s.fillUserDetails(ctx, res.Content); err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	return res, nil
}
