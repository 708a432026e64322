// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Error bodies follow two shapes, the same ones Django REST Framework
// produces, so existing clients of the aluno API keep working:
//
//	{ "detail": "Not found." }                        // request-level
//	{ "nome": ["This field is required."], ... }      // per field
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Detail is the body of request-level errors.
type Detail struct {
	Detail string `json:"detail"`
}

// FieldErrors maps a JSON field name to its error messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Message texts shared with every client of the API.
const (
	MsgRequired   = "This field is required."
	MsgInteger    = "A valid integer is required."
	MsgString     = "Not a valid string."
	MsgNotFound   = "Not found."
	MsgInvalidKey = "Invalid value."
)

// WriteJSON writes data JSON-encoded with the given status code.
// Headers must be set before WriteHeader; the body goes last.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into a Detail body.
func GeneralError(err error) Detail {
	return Detail{Detail: err.Error()}
}

// NotFound is the body of a 404.
func NotFound() Detail {
	return Detail{Detail: MsgNotFound}
}

// ValidationError converts validator failures into FieldErrors. The
// validator must report JSON names (see handlers' tag name func), so the
// keys line up with the request body.
func ValidationError(errs validator.ValidationErrors) FieldErrors {
	out := FieldErrors{}

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			out.Add(e.Field(), MsgRequired)
		case "max":
			out.Add(e.Field(),
				fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param()))
		default:
			out.Add(e.Field(), MsgInvalidKey)
		}
	}

	return out
}

// DecodeError classifies a json.Decoder failure. A value of the wrong
// type becomes a field error on that field; anything else (malformed
// JSON) is reported as a parse error detail.
func DecodeError(err error) any {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		msg := MsgInvalidKey
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			msg = MsgInteger
		case reflect.String:
			msg = MsgString
		}
		return FieldErrors{typeErr.Field: {msg}}
	}

	return Detail{Detail: "JSON parse error - " + err.Error()}
}
