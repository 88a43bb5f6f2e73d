package user

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID string
}
