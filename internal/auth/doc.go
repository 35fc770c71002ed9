// Package auth is the session gate: it verifies admin credentials against
// bcrypt hashes, issues server-side sessions backed by an in-memory store,
// and guards privileged routes with a session check.
package auth
