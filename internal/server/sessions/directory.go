// Package sessions implements the session directory: bearer tokens issued at
// sign-in, mapped back to the account that holds them.
package sessions

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const maxTokenAttempts = 3

// Directory keeps a token-keyed primary map and a reverse index from account
// to its tokens. Both are updated together under mu.
type Directory struct {
	mu        sync.RWMutex
	tokens    map[string]string
	byAccount map[string]map[string]struct{}

	rand io.Reader
}

// Option configures a Directory.
type Option func(*Directory)

// WithRandReader replaces crypto/rand as the token entropy source.
func WithRandReader(r io.Reader) Option {
	return func(d *Directory) {
		d.rand = r
	}
}

// NewDirectory returns an empty session directory.
func NewDirectory(opts ...Option) *Directory {
	d := &Directory{
		tokens:    make(map[string]string),
		byAccount: make(map[string]map[string]struct{}),
		rand:      rand.Reader,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateSession issues a new token for accountID. Earlier tokens of the same
// account stay valid.
func (d *Directory) CreateSession(accountID string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("%w: empty account id", common.ErrorInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i := 0; i < maxTokenAttempts; i++ {
		token, err := common.ReadRandHexString(d.rand, common.SessionTokenBytes)
		if err != nil {
			return "", fmt.Errorf("%w: session token: %v", common.ErrorInternal, err)
		}
		if _, used := d.tokens[token]; used {
			continue
		}

		d.tokens[token] = accountID
		set, ok := d.byAccount[accountID]
		if !ok {
			set = make(map[string]struct{})
			d.byAccount[accountID] = set
		}
		set[token] = struct{}{}

		return token, nil
	}

	return "", fmt.Errorf("%w: could not allocate a unique session token", common.ErrorInternal)
}

// RevokeSession drops token. Unknown or already revoked tokens are ignored;
// the result reports whether anything was removed.
func (d *Directory) RevokeSession(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	accountID, ok := d.tokens[token]
	if !ok {
		return false
	}
	d.removeLocked(token, accountID)
	return true
}

func (d *Directory) removeLocked(token, accountID string) {
	delete(d.tokens, token)
	if set, ok := d.byAccount[accountID]; ok {
		delete(set, token)
		if len(set) == 0 {
			delete(d.byAccount, accountID)
		}
	}
}

// Lookup resolves token to the account it was issued for.
func (d *Directory) Lookup(token string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	accountID, ok := d.tokens[token]
	return accountID, ok
}

// RevokeAll drops every token held by accountID and returns how many there
// were.
func (d *Directory) RevokeAll(accountID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	set := d.byAccount[accountID]
	for token := range set {
		delete(d.tokens, token)
	}
	delete(d.byAccount, accountID)

	return len(set)
}

// Count reports the number of live tokens for accountID.
func (d *Directory) Count(accountID string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byAccount[accountID])
}

// Len reports the number of live tokens.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.tokens)
}
