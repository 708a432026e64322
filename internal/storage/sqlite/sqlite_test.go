package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/alunos/internal/config"
	"github.com/aanand-mishra/alunos/internal/storage"
	"github.com/aanand-mishra/alunos/internal/types"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "alunos.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var ana = types.StudentInput{Name: "Ana", Email: "a@x.com", Phone: "123", CourseID: 2}

func TestCreateAndGet(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent(ana)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected server-assigned id, got 0")
	}

	got, err := db.GetStudentByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}
}

func TestGetStudentsEmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	students, err := db.GetStudents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if students == nil || len(students) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", students)
	}
}

func TestGetStudentsOrderedByID(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		in := ana
		in.Name = name
		if _, err := db.CreateStudent(in); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	students, err := db.GetStudents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("expected 3 students, got %d", len(students))
	}
	for i := 1; i < len(students); i++ {
		if students[i-1].ID >= students[i].ID {
			t.Fatalf("expected ascending ids, got %d then %d", students[i-1].ID, students[i].ID)
		}
	}

	n, err := db.CountStudents()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent(ana)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	next := types.StudentInput{Name: "Ana Maria", Email: "am@x.com", Phone: "999", CourseID: 7}
	updated, err := db.UpdateStudentByID(created.ID, next)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != next.WithID(created.ID) {
		t.Fatalf("expected %+v, got %+v", next.WithID(created.ID), updated)
	}
}

func TestMissingIDIsNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetStudentByID(42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := db.UpdateStudentByID(42, ana); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := db.DeleteStudentByID(42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent(ana)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.DeleteStudentByID(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetStudentByID(created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected deleted student to be gone, got %v", err)
	}
}
