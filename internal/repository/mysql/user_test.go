package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/internal/repository/mysql"
)

func TestUserGetByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	name1, name2 := faker.Username(), faker.Username()

	rows := sqlmock.NewRows([]string{"id", "name", "username", "role", "created_at", "updated_at"}).
		AddRow(1, faker.FirstName(), name1, domain.RoleUser, now, now).
		AddRow(2, faker.FirstName(), name2, domain.RoleAdmin, now, now)
	mock.ExpectQuery("SELECT \\* FROM `user` WHERE id in").WillReturnRows(rows)

	repo := mysql.NewUserRepository(db)
	users, err := repo.GetByIDs(context.TODO(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, name1, users[0].Username)
	assert.Equal(t, domain.RoleAdmin, users[1].Role)
}

func TestUserGetByIDsEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	repo := mysql.NewUserRepository(db)
	users, err := repo.GetByIDs(context.TODO(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `post` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "updated_at", "created_at"}))

	repo := mysql.NewPostRepository(db)
	_, err := repo.GetByID(context.TODO(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostFetchIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM `post` WHERE id > \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(4))

	repo := mysql.NewPostRepository(db)
	ids, err := repo.FetchIDs(context.TODO(), 2, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)
}
