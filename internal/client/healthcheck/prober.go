// Package healthcheck continuously exercises a running auth server with the
// full sign-up, sign-in, sign-out cycle of a throwaway account.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/grpcclient"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// ErrSessionStillValid means a token kept validating after sign-out.
var ErrSessionStillValid = errors.New("session still valid after sign-out")

const (
	readyBaseDelay = 100 * time.Millisecond
	readyMaxDelay  = 2 * time.Second
)

type authClient interface {
	WaitReady(ctx context.Context, b retry.Backoff) error
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*grpcclient.Session, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (string, error)
}

type Prober struct {
	client       authClient
	logger       logging.Logger
	interval     time.Duration
	readyTimeout time.Duration
	newSecret    func() string
}

func NewProber(c authClient, l logging.Logger, interval, readyTimeout time.Duration) *Prober {
	return &Prober{
		client:       c,
		logger:       l.With("module", "health_check"),
		interval:     interval,
		readyTimeout: readyTimeout,
		newSecret:    uuid.NewString,
	}
}

// Run waits for the server to report SERVING, then probes it every interval
// until ctx is cancelled. Failed rounds are logged and do not stop the loop.
func (p *Prober) Run(ctx context.Context) error {

	readyCtx, cancel := context.WithTimeout(ctx, p.readyTimeout)
	defer cancel()

	b := retry.WithCappedDuration(readyMaxDelay, retry.NewExponential(readyBaseDelay))
	if err := p.client.WaitReady(readyCtx, b); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("server not ready: %w", err)
	}

	p.logger.Info(ctx, "server is serving, starting probes", "interval", p.interval.String())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.ProbeOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error(ctx, "probe failed", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// ProbeOnce signs up a random account, signs in, signs out and checks that
// the session no longer validates.
func (p *Prober) ProbeOnce(ctx context.Context) error {
	username := p.newSecret()
	password := p.newSecret()

	if err := p.client.SignUp(ctx, username, password); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	p.logger.Info(ctx, "sign up ok", "username", username)

	sess, err := p.client.SignIn(ctx, username, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	p.logger.Info(ctx, "sign in ok", "account_id", sess.AccountID)

	id, err := p.client.ValidateSession(ctx, sess.Token)
	if err != nil {
		return fmt.Errorf("validate session: %w", err)
	}
	if id != sess.AccountID {
		return fmt.Errorf("validate session: got account %q, want %q", id, sess.AccountID)
	}

	if err := p.client.SignOut(ctx, sess.Token); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	p.logger.Info(ctx, "sign out ok", "account_id", sess.AccountID)

	_, err = p.client.ValidateSession(ctx, sess.Token)
	switch {
	case err == nil:
		return ErrSessionStillValid
	case errors.Is(err, grpcclient.ErrUnauthorized):
		return nil
	default:
		return fmt.Errorf("validate revoked session: %w", err)
	}
}
