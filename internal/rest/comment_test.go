package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/domain/mocks"
	"github.com/Guyuepp/blog-comments/internal/rest"
	"github.com/Guyuepp/blog-comments/internal/rest/middleware"
	"github.com/Guyuepp/blog-comments/internal/rest/request"
	"github.com/Guyuepp/blog-comments/internal/rest/response"
)

const testSecret = "test-secret"

func newRouter(t *testing.T, svc domain.CommentUsecase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, request.RegisterValidators())

	r := gin.New()
	rest.NewCommentHandler(svc).RegisterRoutes(r.Group("/api"), middleware.AuthMiddleware(testSecret))
	return r
}

func token(t *testing.T, userID int64, roles ...string) string {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	tok, err := middleware.GenerateToken(testSecret, domain.Principal{UserID: userID, Username: faker.Username(), Roles: roles}, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) rest.ResponseError {
	t.Helper()
	var res rest.ResponseError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func hasPrincipal(userID int64) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		p, ok := domain.PrincipalFromContext(ctx)
		return ok && p.UserID == userID
	})
}

func sampleTree() *domain.Comment {
	now := time.Now()
	parent := int64(1)
	return &domain.Comment{
		ID: 1, PostID: 42, UserID: 7, Content: "top", Approved: true, CreatedAt: now, UpdatedAt: now,
		User: &domain.User{ID: 7, Username: "alice"},
		Replies: []*domain.Comment{
			{ID: 2, PostID: 42, UserID: 8, ParentID: &parent, Content: "reply", Approved: true, CreatedAt: now, UpdatedAt: now, Replies: []*domain.Comment{}},
		},
	}
}

func TestFetchByPost(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("FetchByPost", mock.Anything, int64(42)).Return([]*domain.Comment{sampleTree()}, nil).Once()

	rec := do(newRouter(t, svc), http.MethodGet, "/api/posts/42/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res []response.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, "alice", res[0].User.Username)
	require.Len(t, res[0].Replies, 1)
	assert.Equal(t, int64(2), res[0].Replies[0].ID)
	assert.Empty(t, res[0].Replies[0].Replies)
}

func TestFetchByPostNotFound(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("FetchByPost", mock.Anything, int64(9)).Return(nil, domain.NewNotFoundError("post", "id", 9)).Once()

	rec := do(newRouter(t, svc), http.MethodGet, "/api/posts/9/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decodeError(t, rec)
	assert.Equal(t, domain.KindNotFound, res.Kind)
	assert.Contains(t, res.Message, "post not found with id: '9'")
}

func TestInvalidPathID(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	rec := do(newRouter(t, svc), http.MethodGet, "/api/comments/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPaginatedDefaults(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	req := domain.PageRequest{PageNo: 0, PageSize: 10}
	svc.On("FetchByPostPaginated", mock.Anything, int64(42), req).
		Return(domain.NewPage([]*domain.Comment{sampleTree()}, req, 1), nil).Once()

	rec := do(newRouter(t, svc), http.MethodGet, "/api/posts/42/comments/paginated", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.Page[response.Comment]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Content, 1)
	assert.Equal(t, int64(1), res.TotalElements)
	assert.True(t, res.First)
	assert.True(t, res.Last)
	svc.AssertExpectations(t)
}

func TestPaginatedCapsPageSize(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	req := domain.PageRequest{PageNo: 2, PageSize: domain.MaxPageSize}
	svc.On("FetchByUser", mock.Anything, int64(7), req).
		Return(domain.NewPage([]*domain.Comment{}, req, 3), nil).Once()

	rec := do(newRouter(t, svc), http.MethodGet, "/api/users/7/comments?pageNo=2&pageSize=500", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestPaginatedRejectsBadInput(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	r := newRouter(t, svc)

	for _, q := range []string{"pageNo=-1", "pageSize=0", "pageNo=x"} {
		rec := do(r, http.MethodGet, "/api/comments/1/replies?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, domain.KindValidation, decodeError(t, rec).Kind)
	}
}

func TestCreateRequiresToken(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	rec := do(newRouter(t, svc), http.MethodPost, "/api/posts/42/comments", "", map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.KindUnauthenticated, decodeError(t, rec).Kind)
}

func TestCreateRejectsBadToken(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	forged, err := middleware.GenerateToken("other-secret", domain.Principal{UserID: 7}, time.Hour)
	require.NoError(t, err)

	rec := do(newRouter(t, svc), http.MethodPost, "/api/posts/42/comments", forged, map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateRejectsBlankContent(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	rec := do(newRouter(t, svc), http.MethodPost, "/api/posts/42/comments", token(t, 7), map[string]any{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.KindValidation, decodeError(t, rec).Kind)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	parent := int64(1)
	created := sampleTree().Replies[0]
	svc.On("Create", hasPrincipal(7), "nice post", int64(42), &parent).Return(created, nil).Once()

	rec := do(newRouter(t, svc), http.MethodPost, "/api/posts/42/comments", token(t, 7),
		map[string]any{"content": "nice post", "parent_id": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var res response.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(2), res.ID)
	require.NotNil(t, res.ParentID)
	assert.Equal(t, int64(1), *res.ParentID)
	svc.AssertExpectations(t)
}

func TestCreateCrossPostParent(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Create", mock.Anything, "hi", int64(8), mock.Anything).Return(nil, domain.ErrInvalidParentComment).Once()

	rec := do(newRouter(t, svc), http.MethodPost, "/api/posts/8/comments", token(t, 7),
		map[string]any{"content": "hi", "parent_id": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.KindInvalidParentComment, decodeError(t, rec).Kind)
}

func TestCreateReply(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("CreateReply", hasPrincipal(8), int64(1), "agreed").Return(sampleTree().Replies[0], nil).Once()

	rec := do(newRouter(t, svc), http.MethodPost, "/api/comments/1/replies", token(t, 8), map[string]any{"content": "agreed"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateForbidden(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Update", hasPrincipal(8), int64(1), "mine now").Return(nil, domain.ErrInsufficientPermissions).Once()

	rec := do(newRouter(t, svc), http.MethodPut, "/api/comments/1", token(t, 8), map[string]any{"content": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, domain.KindInsufficientPermissions, decodeError(t, rec).Kind)
}

func TestDelete(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Delete", hasPrincipal(7), int64(1)).Return(nil).Once()

	rec := do(newRouter(t, svc), http.MethodDelete, "/api/comments/1", token(t, 7), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestApproveAsAdmin(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	approved := sampleTree()
	svc.On("Approve", mock.MatchedBy(func(ctx context.Context) bool {
		p, ok := domain.PrincipalFromContext(ctx)
		return ok && p.IsAdmin()
	}), int64(1)).Return(approved, nil).Once()

	rec := do(newRouter(t, svc), http.MethodPut, "/api/comments/1/approve", token(t, 1, domain.RoleUser, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDisapproveForbidden(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Disapprove", mock.Anything, int64(1)).Return(nil, domain.ErrInsufficientPermissions).Once()

	rec := do(newRouter(t, svc), http.MethodPut, "/api/comments/1/disapprove", token(t, 7), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCounts(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("CountByPost", mock.Anything, int64(42)).Return(int64(4), nil).Once()
	svc.On("CountByUser", mock.Anything, int64(7)).Return(int64(0), domain.NewNotFoundError("user", "id", 7)).Once()
	r := newRouter(t, svc)

	rec := do(r, http.MethodGet, "/api/posts/42/comments/count", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count response.Count
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, int64(4), count.Count)

	rec = do(r, http.MethodGet, "/api/users/7/comments/count", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInternalError(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("GetByID", mock.Anything, int64(1)).Return(nil, assert.AnError).Once()

	rec := do(newRouter(t, svc), http.MethodGet, "/api/comments/1", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domain.KindInternal, decodeError(t, rec).Kind)
}
