package comment

import (
	"cmp"
	"slices"

	"github.com/Guyuepp/blog-comments/domain"
)

// tree indexes the full comment set of one post so any of its comments can
// be expanded into a reply tree without rescanning the set.
type tree struct {
	rows     []domain.Comment
	byID     map[int64]int
	children map[int64][]int
}

// newTree orders the set by (created_at, id), drops duplicate ids and groups
// the rows by parent. The input slice is left untouched.
func newTree(set []domain.Comment) *tree {
	rows := slices.Clone(set)
	slices.SortStableFunc(rows, byCreatedAt)

	t := &tree{
		rows:     rows[:0],
		byID:     make(map[int64]int, len(rows)),
		children: make(map[int64][]int),
	}
	for _, c := range rows {
		if _, dup := t.byID[c.ID]; dup {
			continue
		}
		t.byID[c.ID] = len(t.rows)
		t.rows = append(t.rows, c)
	}
	for i, c := range t.rows {
		if c.ParentID != nil {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], i)
		}
	}
	return t
}

func byCreatedAt(a, b domain.Comment) int {
	if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
		return n
	}
	return cmp.Compare(a.ID, b.ID)
}

// expand returns a copy of root with every reachable reply attached.
// root does not need to be part of the set.
func (t *tree) expand(root domain.Comment) *domain.Comment {
	return t.expandNode(root, make(map[int64]struct{}))
}

func (t *tree) expandNode(c domain.Comment, visited map[int64]struct{}) *domain.Comment {
	visited[c.ID] = struct{}{}
	node := c
	node.Replies = make([]*domain.Comment, 0, len(t.children[c.ID]))
	for _, i := range t.children[c.ID] {
		child := t.rows[i]
		if _, seen := visited[child.ID]; seen {
			continue
		}
		node.Replies = append(node.Replies, t.expandNode(child, visited))
	}
	return &node
}

// forest expands every root of the set. Roots are top-level comments and
// orphans whose parent is not in the set. Rows only reachable through a
// parent cycle are emitted as roots too, so each row appears exactly once.
func (t *tree) forest() []*domain.Comment {
	visited := make(map[int64]struct{}, len(t.rows))
	res := make([]*domain.Comment, 0)
	for _, c := range t.rows {
		if !t.isRoot(c) {
			continue
		}
		res = append(res, t.expandNode(c, visited))
	}
	for _, c := range t.rows {
		if _, seen := visited[c.ID]; !seen {
			res = append(res, t.expandNode(c, visited))
		}
	}
	return res
}

func (t *tree) isRoot(c domain.Comment) bool {
	if c.ParentID == nil {
		return true
	}
	_, ok := t.byID[*c.ParentID]
	return !ok
}

// walk visits every node of the given trees depth first.
func walk(nodes []*domain.Comment, fn func(*domain.Comment)) {
	for _, n := range nodes {
		fn(n)
		walk(n.Replies, fn)
	}
}
