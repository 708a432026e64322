// Package storage defines the Storage interface — the contract any
// database backend must satisfy to serve the aluno endpoints.
//
// Handlers depend only on this interface, so tests can pass an in-memory
// fake and the SQLite implementation stays swappable.
package storage

import (
	"errors"

	"github.com/aanand-mishra/alunos/internal/types"
)

// ErrNotFound is returned when no student matches the requested id.
// Callers check it with errors.Is.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new record and returns it with the
	// generated id.
	CreateStudent(in types.StudentInput) (types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns ErrNotFound if there is none.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces every mutable field of an existing
	// student and returns the stored record. Returns ErrNotFound if the
	// id does not exist.
	UpdateStudentByID(id int64, in types.StudentInput) (types.Student, error)

	// DeleteStudentByID removes a record permanently. Returns ErrNotFound
	// if the id does not exist.
	DeleteStudentByID(id int64) error

	// CountStudents reports how many records exist.
	CountStudents() (int64, error)
}
