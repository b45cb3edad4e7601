package repositories

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumns = []string{"user_id", "username", "email", "password_hash", "created_at", "updated_at"}

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantCV    bool
	}{
		{"email index", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "email", true},
		{"username index", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, "username", true},
		{"unknown index falls back to column", &pgconn.PgError{Code: "23505", ConstraintName: "other", ColumnName: "slug"}, "slug", true},
		{"other sqlstate", &pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"}, "", false},
		{"plain error", errors.New("conn reset"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv, ok := common.AsConstraintViolation(translateWriteError(tt.err))
			assert.Equal(t, tt.wantCV, ok)
			if ok {
				assert.Equal(t, tt.wantField, cv.Field)
			}
		})
	}
}

func TestAccountWriteRepository_Save_Mock(t *testing.T) {
	ctx := context.Background()

	t.Run("success fills timestamps", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountWriteRepository(db)

		now := time.Now().UTC()
		account := &models.AccountDB{AccountID: uuid.New(), Username: "alice", Email: "a@x.com", PasswordHash: "hash"}

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(account.AccountID, "alice", "a@x.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Save(ctx, account))
		assert.Equal(t, now, account.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a constraint violation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountWriteRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := repo.Save(ctx, &models.AccountDB{AccountID: uuid.New(), Username: "alice2", Email: "a@x.com"})
		cv, ok := common.AsConstraintViolation(err)
		require.True(t, ok)
		assert.Equal(t, "email", cv.Field)
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountWriteRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errors.New("db down"))

		err := repo.Save(ctx, &models.AccountDB{AccountID: uuid.New()})
		assert.EqualError(t, err, "insert account: db down")
		_, ok := common.AsConstraintViolation(err)
		assert.False(t, ok)
	})
}

func TestAccountReadRepository_Mock(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("GetByID found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountReadRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "a@x.com", "hash", now, now))

		account, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, account.AccountID)
		assert.Equal(t, "hash", account.PasswordHash)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountReadRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		account, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.Nil(t, account)
	})

	t.Run("GetByLogin passes login through", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountReadRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("LOWER(username) = LOWER($1) OR email = LOWER($1)")).
			WithArgs("A@X.com").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "a@x.com", "hash", now, now))

		account, err := repo.GetByLogin(ctx, "A@X.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
	})

	t.Run("GetByLogin store failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountReadRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WillReturnError(errors.New("db down"))

		_, err := repo.GetByLogin(ctx, "alice")
		assert.EqualError(t, err, "db down")
	})
}

func TestAccountRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	writer := NewAccountWriteRepository(db)
	reader := NewAccountReadRepository(db)
	ctx := context.Background()

	alice := &models.AccountDB{AccountID: uuid.New(), Username: "Alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, writer.Save(ctx, alice))
	assert.False(t, alice.CreatedAt.IsZero())

	t.Run("ByUsernameCaseInsensitive", func(t *testing.T) {
		got, err := reader.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.AccountID, got.AccountID)
	})

	t.Run("ByEmail", func(t *testing.T) {
		got, err := reader.GetByLogin(ctx, "A@X.COM")
		require.NoError(t, err)
		assert.Equal(t, alice.AccountID, got.AccountID)
	})

	t.Run("ByID", func(t *testing.T) {
		got, err := reader.GetByID(ctx, alice.AccountID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := reader.GetByLogin(ctx, "nonexistent")
		assert.ErrorIs(t, err, common.ErrNotFound)
		_, err = reader.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		err := writer.Save(ctx, &models.AccountDB{AccountID: uuid.New(), Username: "alice2", Email: "a@x.com", PasswordHash: "h"})
		cv, ok := common.AsConstraintViolation(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, "email", cv.Field)
	})

	t.Run("DuplicateUsernameDifferentCase", func(t *testing.T) {
		err := writer.Save(ctx, &models.AccountDB{AccountID: uuid.New(), Username: "ALICE", Email: "other@x.com", PasswordHash: "h"})
		cv, ok := common.AsConstraintViolation(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, "username", cv.Field)
	})
}

func TestAccountWriteRepository_ConcurrentSameEmail(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	writer := NewAccountWriteRepository(db)
	ctx := context.Background()

	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			err := writer.Save(ctx, &models.AccountDB{
				AccountID:    uuid.New(),
				Username:     "racer" + uuid.NewString()[:8],
				Email:        "race@x.com",
				PasswordHash: "h",
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if cv, ok := common.AsConstraintViolation(err); ok && cv.Field == "email" {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, conflicts)
}
