package ports

// TokenIssuer mints and verifies session tokens. Tokens are stateless,
// time-bounded assertions of a user id; there is no server-side revocation.
type TokenIssuer interface {
	// Issue signs a token bound to userID, valid for a fixed window.
	Issue(userID string) (string, error)

	// Verify checks signature and expiry and returns the embedded user id.
	// Any failure, including an empty token, is domain.ErrUnauthenticated.
	Verify(token string) (string, error)
}
