package mysql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/platefeed/engagement/domain"
	repo "github.com/platefeed/engagement/internal/repository/mysql"
)

func TestPostGetByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := repo.NewPostDBRepository(gdb)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "author_id", "likes", "updated_at", "created_at"}).
		AddRow(1, "Bibimbap", "rice, gochujang", 7, 3, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `post` WHERE id = ?")).
		WillReturnRows(rows)

	post, err := r.GetByID(context.TODO(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bibimbap", post.Title)
	assert.Equal(t, int64(3), post.Likes)
}

func TestPostGetByIDNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := repo.NewPostDBRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "author_id", "likes", "updated_at", "created_at"})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `post` WHERE id = ?")).
		WillReturnRows(rows)

	_, err := r.GetByID(context.TODO(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostGetByIDPropagatesDBError(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := repo.NewPostDBRepository(gdb)

	dbErr := errors.New("dial tcp: connection refused")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `post` WHERE id = ?")).
		WillReturnError(dbErr)

	// an unreachable store must not read as a missing row
	_, err := r.GetByID(context.TODO(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
