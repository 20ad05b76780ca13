package credentials

import "time"

// Account is a registered identity. CredentialHash is a PHC string produced by
// cryptox; the plaintext password is never stored.
type Account struct {
	ID             string
	Username       string
	CredentialHash string
	CreatedAt      time.Time
}
