package types

// SessionID identifies one pairing session in logs.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Commitment is the base64 SHA-256 digest of a destination address with its
// query string removed.
type Commitment string

// String returns the string form of the commitment.
func (c Commitment) String() string { return string(c) }
