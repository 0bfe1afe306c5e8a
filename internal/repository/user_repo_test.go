package repository

import (
	"context"
	"testing"
	"time"

	"github.com/locpham-gh/the-gathering/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}

func TestUserCreate_DuplicateMapsToErrDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "hash", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: model.RoleUser}
	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate_PartialFieldsUseCoalesce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	now := time.Now()
	username := "bob2"
	// Email and role stay nil and must be bound as NULL so COALESCE
	// keeps the stored values.
	mock.ExpectQuery(`UPDATE users SET username = COALESCE\(\$1, username\), email = COALESCE\(\$2, email\), role = COALESCE\(\$3, role\)`).
		WithArgs(&username, (*string)(nil), (*string)(nil), 2).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(
			2, "bob2", "bob@example.com", "hash", model.RoleUser, now, now,
		))

	user, err := repo.Update(context.Background(), 2, model.UpdateUserRequest{Username: &username})
	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bob2", user.Username)
	assert.Equal(t, "bob@example.com", user.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`UPDATE users SET`).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.Update(context.Background(), 99, model.UpdateUserRequest{})
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByEmail_NotFoundIsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}
