// Package credentials implements the credential directory: the in-memory
// mapping from username and account id to hashed credentials.
//
// Both lookup views are only ever modified together under the directory's
// write lock, so an Account is either visible through both or through
// neither. Password hashing is CPU bound and runs outside the lock.
package credentials

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/google/uuid"
)

const maxIDAttempts = 3

// Directory is the credential directory. The zero value is not usable; call
// NewDirectory.
type Directory struct {
	mu         sync.RWMutex
	byID       map[string]*Account
	byUsername map[string]*Account

	hasher cryptox.Hasher
	newID  func() (string, error)
	now    func() time.Time

	// decoy is verified against when the username is unknown so that
	// Authenticate costs the same whether or not the account exists.
	decoy string
}

// Option configures a Directory.
type Option func(*Directory)

// WithIDGenerator replaces the uuid v4 account id generator.
func WithIDGenerator(f func() (string, error)) Option {
	return func(d *Directory) {
		d.newID = f
	}
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(f func() time.Time) Option {
	return func(d *Directory) {
		d.now = f
	}
}

// NewDirectory returns an empty directory hashing with h.
func NewDirectory(h cryptox.Hasher, opts ...Option) (*Directory, error) {
	d := &Directory{
		byID:       make(map[string]*Account),
		byUsername: make(map[string]*Account),
		hasher:     h,
		newID:      newUUID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	decoy, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("decoy credential: %w", err)
	}
	d.decoy, err = h.Hash([]byte(decoy))
	if err != nil {
		return nil, fmt.Errorf("decoy credential: %w", err)
	}

	return d, nil
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CreateAccount registers username with a freshly salted hash of password and
// returns the new account id.
//
// It fails with common.ErrorDuplicateUsername if the username is taken and
// with an error wrapping common.ErrorCredentialHashing if hashing fails; in
// both cases the directory is left unchanged.
func (d *Directory) CreateAccount(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrorInvalidInput)
	}

	// Pre-check only; repeated under the write lock.
	d.mu.RLock()
	_, taken := d.byUsername[username]
	d.mu.RUnlock()
	if taken {
		return "", common.ErrorDuplicateUsername
	}

	pw := []byte(password)
	hash, err := d.hasher.Hash(pw)
	common.WipeByteArray(pw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCredentialHashing, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byUsername[username]; taken {
		return "", common.ErrorDuplicateUsername
	}

	id, err := d.allocateIDLocked()
	if err != nil {
		return "", err
	}

	acc := &Account{
		ID:             id,
		Username:       username,
		CredentialHash: hash,
		CreatedAt:      d.now().UTC(),
	}
	d.byID[id] = acc
	d.byUsername[username] = acc

	return id, nil
}

func (d *Directory) allocateIDLocked() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := d.newID()
		if err != nil {
			return "", fmt.Errorf("%w: account id: %v", common.ErrorInternal, err)
		}
		if _, used := d.byID[id]; !used && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique account id", common.ErrorInternal)
}

// Authenticate returns the account id for username if password matches its
// stored credential. Unknown usernames and wrong passwords both yield
// ("", false).
func (d *Directory) Authenticate(username, password string) (string, bool) {
	d.mu.RLock()
	acc, ok := d.byUsername[username]
	var id, hash string
	if ok {
		id, hash = acc.ID, acc.CredentialHash
	}
	d.mu.RUnlock()

	if !ok {
		hash = d.decoy
	}

	pw := []byte(password)
	match, err := d.hasher.Verify(pw, hash)
	common.WipeByteArray(pw)

	if !ok || err != nil || !match {
		return "", false
	}
	return id, true
}

// DeleteAccount removes the account from both views and returns it. Deleting
// an unknown id is a no-op reporting false.
func (d *Directory) DeleteAccount(accountID string) (Account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	acc, ok := d.byID[accountID]
	if !ok {
		return Account{}, false
	}

	delete(d.byUsername, acc.Username)
	delete(d.byID, accountID)

	return *acc, true
}

// Lookup returns a copy of the account with the given id.
func (d *Directory) Lookup(accountID string) (Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	acc, ok := d.byID[accountID]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}

// LookupUsername returns a copy of the account registered under username.
func (d *Directory) LookupUsername(username string) (Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	acc, ok := d.byUsername[username]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}

// Len reports the number of registered accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
