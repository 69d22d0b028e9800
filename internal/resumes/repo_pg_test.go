package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesSkillsArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	resume := Resume{
		ID:         "2f1c8a4e-6b0d-4d8e-9a57-3c2b1e0f4d21",
		Skills:     []string{"Go", "SQL"},
		FileName:   "cv.pdf",
		UploadedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(resume.ID, `{"Go","SQL"}`, "cv.pdf", resume.UploadedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateWithoutFileNameOrSkills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("id-1", "{}", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), Resume{ID: "id-1", UploadedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateWrapsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO resumes").WillReturnError(errors.New("connection refused"))

	err = (&PGRepo{DB: db}).Create(context.Background(), Resume{ID: "id-1"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	uploaded := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "skills", "file_name", "upload_date"}).
		AddRow("id-1", `{Go,"REST API",C++}`, "cv.docx", uploaded)
	mock.ExpectQuery("SELECT id, skills, file_name, upload_date").
		WithArgs("id-1").
		WillReturnRows(rows)

	got, err := (&PGRepo{DB: db}).GetByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want := []string{"Go", "REST API", "C++"}
	if len(got.Skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, got.Skills)
	}
	for i := range want {
		if got.Skills[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got.Skills)
		}
	}
	if got.FileName != "cv.docx" || !got.UploadedAt.Equal(uploaded) {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestPGRepoGetByIDErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: sql.ErrNoRows, wantErr: ErrNotFound},
		{name: "driver failure", err: errors.New("broken pipe"), wantErr: ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })

			mock.ExpectQuery("SELECT id, skills").WillReturnError(tt.err)

			_, err = (&PGRepo{DB: db}).GetByID(context.Background(), "id-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
