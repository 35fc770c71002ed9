package entities

// User is an admin account. The password field holds a bcrypt hash, never
// the plaintext value.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
