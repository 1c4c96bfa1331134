package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/adapter/persistence/postgres"
)

func groupRows(groups ...*entity.Group) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "slug", "description"})
	for _, g := range groups {
		rows.AddRow(g.ID, g.Title, g.Slug, g.Description)
	}
	return rows
}

func TestGroupRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := &entity.Group{ID: 1, Title: "Cats", Slug: "cats", Description: "All about cats"}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = $1`)).
		WithArgs("cats").
		WillReturnRows(groupRows(want))

	repo := postgres.NewGroupRepo(db)
	got, err := repo.GetBySlug(context.Background(), "cats")
	if err != nil {
		t.Fatalf("GetBySlug err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupRepo_GetBySlug_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM "groups"`).WithArgs("dogs").WillReturnRows(groupRows())

	repo := postgres.NewGroupRepo(db)
	got, err := repo.GetBySlug(context.Background(), "dogs")
	if err != nil || got != nil {
		t.Fatalf("GetBySlug got=%v err=%v, want nil, nil", got, err)
	}
}

func TestGroupRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	g := &entity.Group{Title: "Cats", Slug: "cats"}
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (slug) DO UPDATE`)).
		WithArgs("Cats", "cats", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	repo := postgres.NewGroupRepo(db)
	if err := repo.Upsert(context.Background(), g); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if g.ID != 4 {
		t.Errorf("ID = %d, want 4", g.ID)
	}
}

func TestGroupRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`ORDER BY title`).WillReturnRows(groupRows(
		&entity.Group{ID: 1, Title: "Cats", Slug: "cats"},
		&entity.Group{ID: 2, Title: "Dogs", Slug: "dogs"},
	))

	repo := postgres.NewGroupRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestGroupRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "groups" WHERE slug = $1`)).
		WithArgs("cats").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "groups" WHERE slug = $1`)).
		WithArgs("cats").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := postgres.NewGroupRepo(db)
	if err := repo.Delete(context.Background(), "cats"); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := repo.Delete(context.Background(), "cats"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second Delete want ErrNotFound, got %v", err)
	}
}

func TestGroupRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "groups"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	repo := postgres.NewGroupRepo(db)
	if n, err := repo.Count(context.Background()); err != nil || n != 3 {
		t.Fatalf("Count n=%d err=%v", n, err)
	}
}
