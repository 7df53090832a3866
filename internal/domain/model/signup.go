package model

// SignUpDraft is the user input for a new account. Password is never echoed back.
type SignUpDraft struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"-"`
}
