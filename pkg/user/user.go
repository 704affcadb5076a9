package user

type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Checker authenticates a submitted email/password pair.
type Checker interface {
	Check(email, password string) (*User, error)
}
