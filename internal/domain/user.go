package domain

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

// Session is the operator's login, resolved from the sid cookie on every request.
type Session struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Email  string `db:"email"`
	Name   string `db:"name"`
}
