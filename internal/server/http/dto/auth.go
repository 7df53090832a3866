package dto

// SignUpRequest is the sign-up form. Both form and JSON encodings are accepted.
type SignUpRequest struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// LogInRequest carries login credentials; username is the account email.
type LogInRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// FormField describes one input of a form.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	MinLen   int    `json:"min_length,omitempty"`
	MaxLen   int    `json:"max_length,omitempty"`
}

// FormDescriptor describes an empty form for clients that render it.
type FormDescriptor struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []FormField `json:"fields"`
}

// SignUpForm is the descriptor served by GET /sign-up.
var SignUpForm = FormDescriptor{
	Action: "/sign-up",
	Method: "POST",
	Fields: []FormField{
		{Name: "first_name", Type: "text", Required: true, MinLen: 2, MaxLen: 24},
		{Name: "last_name", Type: "text", Required: true, MinLen: 2, MaxLen: 24},
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true, MinLen: 8, MaxLen: 24},
	},
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
