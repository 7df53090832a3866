package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
)

// Field rule messages shown to the user. Keys are the json field names.
var fieldMessages = map[string]string{
	"first_name": "First name is required, and needs to be between 2 and 24 characters.",
	"last_name":  "Last name is required, and needs to be between 2 and 24 characters.",
	"email":      "Email is required and needs to be a valid email",
	"password":   "Password is required, and needs to be between 8 and 24 characters",
	"title":      "Title is required and needs to be between 1 and 50 characters long.",
	"text":       "Message is required and needs to be between 1 and 100 characters long.",
}

// tagMessages override fieldMessages for rules with their own wording.
var tagMessages = map[string]string{
	"bcryptlen": "Password must not be longer than 72 bytes.",
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type signUpInput struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=24"`
	LastName  string `json:"last_name" validate:"required,min=2,max=24"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=24,bcryptlen"`
}

type messageInput struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
	Text  string `json:"text" validate:"required,min=1,max=100"`
}

// Validator checks user input and reports every violated field.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator reporting fields by their json names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return &Validator{validate: v}
}

// check returns nil or a *ValidationError echoing draft.
func (v *Validator) check(input any, draft any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &domainErrors.ValidationError{Draft: draft}
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg, ok = fieldMessages[fe.Field()]
		}
		if !ok {
			msg = fe.Error()
		}
		out.Fields = append(out.Fields, domainErrors.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
