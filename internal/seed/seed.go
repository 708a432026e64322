// Package seed imports an initial roster from a spreadsheet when the API
// starts against an empty database.
//
// Expected layout of the first sheet (row 1 is a header and is skipped):
//
//	A: nome | B: email | C: telefone | D: id_curso
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/aanand-mishra/alunos/internal/storage"
	"github.com/aanand-mishra/alunos/internal/types"
)

var validate = validator.New()

// IfEmpty imports path into store only when the store holds no students.
// It returns how many rows were imported.
func IfEmpty(store storage.Storage, path string) (int, error) {
	n, err := store.CountStudents()
	if err != nil {
		return 0, fmt.Errorf("seed.IfEmpty: %w", err)
	}
	if n > 0 {
		slog.Info("students already present, skipping seed", slog.Int64("count", n))
		return 0, nil
	}
	return Import(store, path)
}

// Import reads every data row of the first sheet and creates one student
// per valid row. Rows that fail validation are logged and skipped; a
// storage error aborts the import.
func Import(store storage.Storage, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed.Import: open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("error closing seed sheet", slog.String("error", err.Error()))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return 0, errors.New("seed.Import: workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("seed.Import: rows of %s: %w", sheet, err)
	}

	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}

		in, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping seed row", slog.Int("row", i+1), slog.String("error", err.Error()))
			continue
		}

		if _, err := store.CreateStudent(in); err != nil {
			return imported, fmt.Errorf("seed.Import: row %d: %w", i+1, err)
		}
		imported++
	}

	slog.Info("seed imported", slog.String("path", path), slog.Int("count", imported))
	return imported, nil
}

func parseRow(row []string) (types.StudentInput, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var in types.StudentInput
	in.Name = cell(0)
	in.Email = cell(1)
	in.Phone = cell(2)

	if raw := cell(3); raw != "" {
		course, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("id_curso %q is not an integer", raw)
		}
		in.CourseID = course
	}

	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}
