// Package notice produces the texts shown in the client's dialogs.
package notice

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aanand-mishra/alunos/internal/gateway"
)

// Fixed texts.
const (
	Connection = "Could not connect to the server. Check that it is running and reachable."
	LoadFailed = "Error loading the student list."

	DeleteFailed  = "Error deleting student."
	DeleteConfirm = "Are you sure you want to delete this student?"

	Updated = "Student updated successfully!"
	Deleted = "Student deleted successfully!"

	CreateContext = "Error creating student"
	UpdateContext = "Error updating student"
)

// Created is the confirmation after a create; it names the id the server
// assigned.
func Created(id int64) string {
	return fmt.Sprintf("Student created successfully! ID: %d", id)
}

// fieldLabels names the JSON fields of the payload for display.
var fieldLabels = map[string]string{
	"id_curso": "Course",
	"nome":     "Name",
	"email":    "Email",
	"telefone": "Phone",
}

// fieldOrder puts the fields most likely to be rejected first.
var fieldOrder = map[string]int{
	"id_curso": 0,
	"nome":     1,
}

// Failure describes a failed create or update. context prefixes every
// message, e.g. "Error creating student".
//
//   - connection failures get the fixed Connection text
//   - validation failures list every field with all its messages
//   - anything else shows the status code and text
func Failure(err error, context string) string {
	var cerr *gateway.ConnectionError
	if errors.As(err, &cerr) {
		return Connection
	}

	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		return context + ":\n" + fieldLines(verr.Fields)
	}

	var serr *gateway.ServerError
	if errors.As(err, &serr) {
		return fmt.Sprintf("%s: %d - %s", context, serr.StatusCode, serr.Status)
	}

	return fmt.Sprintf("%s: %s", context, err.Error())
}

func fieldLines(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := fieldOrder[keys[i]]
		oj, jok := fieldOrder[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		label, ok := fieldLabels[k]
		if !ok {
			label = k
		}
		lines = append(lines, label+": "+strings.Join(fields[k], ", "))
	}
	return strings.Join(lines, "\n")
}
