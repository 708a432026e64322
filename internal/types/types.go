// Package types holds the data structures shared by the API server and
// the terminal client. Both sides import the same structs, so the JSON
// field names below are the single source of truth for the wire format.
package types

// Student is an aluno record as stored by the server and as returned by
// every read endpoint.
//
// The JSON keys are the names the aluno API has always used:
//
//	{ "id_aluno": 1, "nome": "Ana", "email": "a@x.com",
//	  "telefone": "123", "id_curso": 2 }
//
// ID is assigned by the server on create and never changes afterwards.
type Student struct {
	ID       int64  `json:"id_aluno"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	CourseID int64  `json:"id_curso"`
}

// StudentInput is the body of POST and PUT requests: every mutable field
// of a Student, without the id.
//
// The validate tags are checked by the server before anything reaches
// storage. The length limits mirror the column sizes of the aluno table.
type StudentInput struct {
	Name     string `json:"nome"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,max=100"`
	Phone    string `json:"telefone" validate:"required,max=15"`
	CourseID int64  `json:"id_curso" validate:"required"`
}

// WithID combines the input with a server-assigned id.
func (in StudentInput) WithID(id int64) Student {
	return Student{
		ID:       id,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		CourseID: in.CourseID,
	}
}
