package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/adapter/persistence/postgres"
)

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	created := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.User{ID: 1, Username: "leo", PasswordHash: "$2a$10$hash", CreatedAt: created}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1`)).
		WithArgs("leo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(want.ID, want.Username, want.PasswordHash, want.CreatedAt))

	repo := postgres.NewUserRepo(db)
	got, err := repo.GetByUsername(context.Background(), "leo")
	if err != nil {
		t.Fatalf("GetByUsername err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	repo := postgres.NewUserRepo(db)
	got, err := repo.Get(context.Background(), 9)
	if err != nil || got != nil {
		t.Fatalf("Get got=%v err=%v, want nil, nil", got, err)
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("leo", "hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	u := &entity.User{Username: "leo", PasswordHash: "hash"}
	repo := postgres.NewUserRepo(db)
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if u.ID != 5 || u.CreatedAt.IsZero() {
		t.Errorf("Create did not fill ID/CreatedAt: %+v", u)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	dupErr := errors.New("duplicate key value violates unique constraint")
	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(dupErr)

	repo := postgres.NewUserRepo(db)
	if err := repo.Create(context.Background(), &entity.User{Username: "leo"}); !errors.Is(err, dupErr) {
		t.Fatalf("want wrapped duplicate error, got %v", err)
	}
}
