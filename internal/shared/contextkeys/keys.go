package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "bistro-boss context key " + string(c)
}

const (
	// UserEmailKey carries the email of the verified caller.
	UserEmailKey = contextKey("userEmail")
	// UserNameKey carries the display name embedded in the session token, if any.
	UserNameKey = contextKey("userName")
	// TokenIDKey carries the jti of the session token that authenticated the request.
	TokenIDKey = contextKey("tokenID")
	// IdentityKey carries the full decoded identity (model.DecodedIdentity).
	IdentityKey = contextKey("identity")
	// RequestIDKey is set by the requestid middleware.
	RequestIDKey = contextKey("requestID")
	ComponentKey = contextKey("component")
	OperationKey = contextKey("operation")
)
