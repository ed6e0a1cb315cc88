package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/domain/mocks"
	"github.com/Guyuepp/blog-comments/internal/repository"
)

func TestFetchByPostCacheHit(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCache)
	set := []domain.Comment{{ID: 1, PostID: 42}}
	cache.On("GetPostComments", mock.Anything, int64(42)).Return(set, false, nil).Once()

	repo := repository.NewCommentRepository(db, cache, time.Minute)
	res, err := repo.FetchByPost(context.TODO(), 42)
	require.NoError(t, err)
	assert.Equal(t, set, res)
	db.AssertNotCalled(t, "FetchByPost", mock.Anything, mock.Anything)
}

func TestFetchByPostCacheMiss(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCache)
	set := []domain.Comment{{ID: 1, PostID: 42}, {ID: 2, PostID: 42}}
	cache.On("GetPostComments", mock.Anything, int64(42)).Return(nil, false, domain.ErrCacheMiss).Once()
	db.On("FetchByPost", mock.Anything, int64(42)).Return(set, nil).Once()
	cache.On("SetPostComments", mock.Anything, int64(42), set, time.Minute).Return(nil).Once()

	repo := repository.NewCommentRepository(db, cache, time.Minute)
	res, err := repo.FetchByPost(context.TODO(), 42)
	require.NoError(t, err)
	assert.Equal(t, set, res)
	db.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFetchByPostCacheErrorFallsBackToDB(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCache)
	cache.On("GetPostComments", mock.Anything, int64(42)).Return(nil, false, errors.New("connection refused")).Once()
	db.On("FetchByPost", mock.Anything, int64(42)).Return([]domain.Comment{}, nil).Once()
	cache.On("SetPostComments", mock.Anything, int64(42), mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	repo := repository.NewCommentRepository(db, cache, 0)
	res, err := repo.FetchByPost(context.TODO(), 42)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFetchByPostWithoutCache(t *testing.T) {
	db := new(mocks.CommentRepository)
	db.On("FetchByPost", mock.Anything, int64(7)).Return([]domain.Comment{{ID: 3}}, nil).Once()

	repo := repository.NewCommentRepository(db, nil, 0)
	res, err := repo.FetchByPost(context.TODO(), 7)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestWritesInvalidateCache(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCache)
	c := &domain.Comment{ID: 5, PostID: 42}

	db.On("Store", mock.Anything, c).Return(nil).Once()
	db.On("Update", mock.Anything, c).Return(nil).Once()
	db.On("Delete", mock.Anything, c).Return(nil).Once()
	cache.On("DeletePostComments", mock.Anything, int64(42)).Return(nil).Times(3)

	repo := repository.NewCommentRepository(db, cache, time.Minute)
	require.NoError(t, repo.Store(context.TODO(), c))
	require.NoError(t, repo.Update(context.TODO(), c))
	require.NoError(t, repo.Delete(context.TODO(), c))
	cache.AssertExpectations(t)
}

func TestFailedWriteKeepsCache(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCache)
	c := &domain.Comment{ID: 5, PostID: 42}
	db.On("Delete", mock.Anything, c).Return(domain.ErrNotFound).Once()

	repo := repository.NewCommentRepository(db, cache, time.Minute)
	err := repo.Delete(context.TODO(), c)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	cache.AssertNotCalled(t, "DeletePostComments", mock.Anything, mock.Anything)
}
