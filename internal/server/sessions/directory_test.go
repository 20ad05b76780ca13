package sessions

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIndexesInSync(t *testing.T, d *Directory) {
	t.Helper()
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := 0
	for accountID, set := range d.byAccount {
		require.NotEmpty(t, set, "empty reverse index entry kept for %s", accountID)
		for token := range set {
			owner, ok := d.tokens[token]
			require.True(t, ok)
			require.Equal(t, accountID, owner)
		}
		total += len(set)
	}
	require.Equal(t, len(d.tokens), total)
}

func TestCreateSession_Lookup(t *testing.T) {
	d := NewDirectory()

	token, err := d.CreateSession("acc-1")
	require.NoError(t, err)

	raw, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, common.SessionTokenBytes)

	got, ok := d.Lookup(token)
	assert.True(t, ok)
	assert.Equal(t, "acc-1", got)
	assertIndexesInSync(t, d)
}

func TestCreateSession_MultiplePerAccount(t *testing.T) {
	d := NewDirectory()

	t1, err := d.CreateSession("acc-1")
	require.NoError(t, err)
	t2, err := d.CreateSession("acc-1")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	assert.Equal(t, 2, d.Count("acc-1"))

	d.RevokeSession(t1)
	_, ok := d.Lookup(t1)
	assert.False(t, ok)
	got, ok := d.Lookup(t2)
	assert.True(t, ok)
	assert.Equal(t, "acc-1", got)

	d.RevokeSession(t2)
	_, ok = d.Lookup(t2)
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
	assertIndexesInSync(t, d)
}

func TestCreateSession_EmptyAccount(t *testing.T) {
	d := NewDirectory()
	_, err := d.CreateSession("")
	assert.ErrorIs(t, err, common.ErrorInvalidInput)
}

func TestCreateSession_EntropyFailure(t *testing.T) {
	d := NewDirectory(WithRandReader(iotest.ErrReader(errors.New("rng down"))))

	_, err := d.CreateSession("acc-1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Equal(t, 0, d.Len())
	assertIndexesInSync(t, d)
}

func TestCreateSession_CollisionIsRetried(t *testing.T) {
	a := bytes.Repeat([]byte{1}, common.SessionTokenBytes)
	b := bytes.Repeat([]byte{2}, common.SessionTokenBytes)
	src := bytes.NewReader(append(append(append([]byte{}, a...), a...), b...))
	d := NewDirectory(WithRandReader(src))

	t1, err := d.CreateSession("acc-1")
	require.NoError(t, err)
	t2, err := d.CreateSession("acc-2")
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(a), t1)
	assert.Equal(t, hex.EncodeToString(b), t2)

	owner, _ := d.Lookup(t1)
	assert.Equal(t, "acc-1", owner)
}

func TestCreateSession_GivesUpAfterRepeatedCollisions(t *testing.T) {
	a := bytes.Repeat([]byte{9}, common.SessionTokenBytes)
	src := bytes.NewReader(bytes.Repeat(a, 1+maxTokenAttempts))
	d := NewDirectory(WithRandReader(src))

	_, err := d.CreateSession("acc-1")
	require.NoError(t, err)

	_, err = d.CreateSession("acc-2")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Equal(t, 0, d.Count("acc-2"))
	assertIndexesInSync(t, d)
}

func TestRevokeSession_Idempotent(t *testing.T) {
	d := NewDirectory()

	keep, err := d.CreateSession("acc-1")
	require.NoError(t, err)
	drop, err := d.CreateSession("acc-1")
	require.NoError(t, err)

	assert.True(t, d.RevokeSession(drop))
	assert.False(t, d.RevokeSession(drop))
	assert.False(t, d.RevokeSession("never-issued"))
	assert.False(t, d.RevokeSession(""))

	got, ok := d.Lookup(keep)
	assert.True(t, ok)
	assert.Equal(t, "acc-1", got)
	assertIndexesInSync(t, d)
}

func TestRevokeAll(t *testing.T) {
	d := NewDirectory()

	var mine []string
	for i := 0; i < 3; i++ {
		tok, err := d.CreateSession("acc-1")
		require.NoError(t, err)
		mine = append(mine, tok)
	}
	theirs, err := d.CreateSession("acc-2")
	require.NoError(t, err)

	assert.Equal(t, 3, d.RevokeAll("acc-1"))
	for _, tok := range mine {
		_, ok := d.Lookup(tok)
		assert.False(t, ok)
	}
	_, ok := d.Lookup(theirs)
	assert.True(t, ok)

	assert.Equal(t, 0, d.RevokeAll("acc-1"))
	assert.Equal(t, 0, d.RevokeAll("unknown"))
	assertIndexesInSync(t, d)
}

func TestDirectory_Concurrent(t *testing.T) {
	d := NewDirectory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acc := fmt.Sprintf("acc-%d", i%4)
			tok, err := d.CreateSession(acc)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if got, ok := d.Lookup(tok); !ok || got != acc {
				t.Errorf("lookup mismatch for %s", acc)
			}
			if i%2 == 0 {
				d.RevokeSession(tok)
				d.RevokeSession(tok)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, d.Len())
	assertIndexesInSync(t, d)
}
