package domain

// Role is the role claim carried by an access token.
type Role string

const (
	RoleStudent Role = "student"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

type AuthPayload struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// CanAuthor reports whether the role may preview unsaved test cases.
func (p AuthPayload) CanAuthor() bool {
	return p.Role == RoleTrainer || p.Role == RoleAdmin
}
