package domain

// User is a read-only account record exposed for lookup.
type User struct {
	ID    int
	Name  string
	Email string
	Role  string
}
