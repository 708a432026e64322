// Package form holds the student form: four validated text fields and
// the editing mode that decides whether a submit creates or updates.
//
// The form never talks to the network. Submit only turns valid input
// into a Request; the caller sends it and calls Complete on success.
package form

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/alunos/internal/types"
)

// Field identifies one input of the form.
type Field int

const (
	Name Field = iota
	Email
	Phone
	CourseID
)

// Fields lists every field in display order.
var Fields = []Field{Name, Email, Phone, CourseID}

func (f Field) String() string {
	switch f {
	case Name:
		return "Name"
	case Email:
		return "Email"
	case Phone:
		return "Phone"
	case CourseID:
		return "Course"
	default:
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
}

// Mode is either Idle or Editing. The target id exists only inside
// Editing, so "editing without an id" cannot be represented.
type Mode interface {
	isMode()
}

// Idle means the next submit creates a new student.
type Idle struct{}

// Editing means the next submit replaces the student with this ID.
type Editing struct {
	ID int64
}

func (Idle) isMode()    {}
func (Editing) isMode() {}

// Op is the kind of request a submit produces.
type Op int

const (
	Create Op = iota
	Update
)

// Request is the outcome of a valid submit.
type Request struct {
	Op      Op
	ID      int64 // only set for Update
	Payload types.StudentInput
}

// coursePattern is one or more digits without a leading zero.
var coursePattern = regexp.MustCompile(`^[1-9]\d*$`)

// values is what the user typed, with the rules each field must pass.
type values struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	CourseID string `validate:"required,course_id"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Also rejects digit strings that overflow int64, so a valid form
	// always parses.
	v.RegisterValidation("course_id", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !coursePattern.MatchString(s) {
			return false
		}
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	})
	return v
}

var fieldByStructName = map[string]Field{
	"Name":     Name,
	"Email":    Email,
	"Phone":    Phone,
	"CourseID": CourseID,
}

// Form is the student form state. The zero value is not usable; call New.
type Form struct {
	values  values
	touched [4]bool
	mode    Mode
}

// New returns an empty, untouched form in Idle mode.
func New() *Form {
	return &Form{mode: Idle{}}
}

// Mode reports the current editing mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Value returns the current text of a field.
func (f *Form) Value(field Field) string {
	switch field {
	case Name:
		return f.values.Name
	case Email:
		return f.values.Email
	case Phone:
		return f.values.Phone
	case CourseID:
		return f.values.CourseID
	}
	return ""
}

// Set updates a field from user input and marks it touched.
func (f *Form) Set(field Field, v string) {
	f.set(field, v)
	f.touched[field] = true
}

func (f *Form) set(field Field, v string) {
	switch field {
	case Name:
		f.values.Name = v
	case Email:
		f.values.Email = v
	case Phone:
		f.values.Phone = v
	case CourseID:
		f.values.CourseID = v
	}
}

// Touched reports whether the user has edited the field since the last
// reset or StartEdit.
func (f *Form) Touched(field Field) bool {
	return f.touched[field]
}

// Pristine reports whether the form is empty and untouched.
func (f *Form) Pristine() bool {
	return f.values == values{} && f.touched == [4]bool{}
}

// Errors returns a message for every field that currently fails its
// rule. The map is empty when the form is valid.
func (f *Form) Errors() map[Field]string {
	out := map[Field]string{}

	err := validate.Struct(f.values)
	if err == nil {
		return out
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable with a broken validator setup; treat every
		// field as invalid so nothing is sent.
		for _, field := range Fields {
			out[field] = "is invalid"
		}
		return out
	}

	for _, e := range errs {
		field := fieldByStructName[e.StructField()]
		if _, seen := out[field]; seen {
			continue
		}
		switch e.ActualTag() {
		case "required":
			out[field] = "is required"
		case "min":
			out[field] = "must be at least " + e.Param() + " characters"
		case "email":
			out[field] = "must be a valid email address"
		case "course_id":
			out[field] = "must be a whole number without leading zeros"
		default:
			out[field] = "is invalid"
		}
	}

	return out
}

// Valid reports whether every field passes its rule.
func (f *Form) Valid() bool {
	return validate.Struct(f.values) == nil
}

// Submit converts the form into a Request. It returns false, and has no
// side effect, while any field is invalid. The form is left as is; call
// Complete once the request succeeds.
func (f *Form) Submit() (Request, bool) {
	if !f.Valid() {
		return Request{}, false
	}

	course, err := strconv.ParseInt(f.values.CourseID, 10, 64)
	if err != nil {
		return Request{}, false
	}

	payload := types.StudentInput{
		Name:     f.values.Name,
		Email:    f.values.Email,
		Phone:    f.values.Phone,
		CourseID: course,
	}

	if m, ok := f.mode.(Editing); ok {
		return Request{Op: Update, ID: m.ID, Payload: payload}, true
	}
	return Request{Op: Create, Payload: payload}, true
}

// StartEdit enters Editing mode for s and fills every field with its
// current values. Values come from the server, so they are not
// validated here.
func (f *Form) StartEdit(s types.Student) {
	f.mode = Editing{ID: s.ID}
	f.values = values{
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		CourseID: strconv.FormatInt(s.CourseID, 10),
	}
	f.touched = [4]bool{}
}

// CancelEdit returns to Idle and discards every pending edit.
func (f *Form) CancelEdit() {
	f.mode = Idle{}
	f.Reset()
}

// Complete is called after a submitted request succeeded: the form is
// cleared and editing mode ends.
func (f *Form) Complete() {
	f.mode = Idle{}
	f.Reset()
}

// Reset clears every field and touched flag. The mode is unchanged.
func (f *Form) Reset() {
	f.values = values{}
	f.touched = [4]bool{}
}
