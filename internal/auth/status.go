// Package auth gates the back office: JWT verification against the
// identity provider's JWKS endpoint and an admin role lookup.
package auth

// Status is the resolved admin standing of an identity. The zero value is
// StatusPending: a check that has not completed yet is neither granted
// nor denied.
type Status int

const (
	StatusPending Status = iota
	StatusDenied
	StatusGranted
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "granted"
	case StatusDenied:
		return "denied"
	default:
		return "pending"
	}
}
