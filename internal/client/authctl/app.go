// Package authctl implements the authctl command-line tool: account sign-up,
// sign-in and sign-out against a running server, session checks, and the
// admin operations guarded by HS256 tokens.
package authctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/grpcclient"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/urfave/cli/v2"
)

// Client is the subset of grpcclient.GRPCClient used by the commands.
type Client interface {
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*grpcclient.Session, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (string, error)
	DeleteAccount(ctx context.Context, adminToken, accountID string) (int, error)
	Close() error
}

// DialFunc opens a client for the given server address.
type DialFunc func(server string) (Client, error)

// DialGRPC is the DialFunc used outside of tests.
func DialGRPC(server string) (Client, error) {
	c, err := grpcclient.New(server)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// App builds the authctl application.
func App(dial DialFunc) *cli.App {
	a := &commands{dial: dial}

	return &cli.App{
		Name:  "authctl",
		Usage: "gophauth command-line tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "auth server address",
				EnvVars: []string{"GOPHAUTH_SERVER"},
				Value:   "127.0.0.1:50051",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-command deadline",
				Value: 10 * time.Second,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "signup",
				Usage:  "Create an account",
				Flags:  credentialFlags(),
				Action: a.signUp,
			},
			{
				Name:   "signin",
				Usage:  "Sign in and print a session token",
				Flags:  credentialFlags(),
				Action: a.signIn,
			},
			{
				Name:      "signout",
				Usage:     "Revoke a session token",
				ArgsUsage: "SESSION_TOKEN",
				Action:    a.signOut,
			},
			{
				Name:      "whoami",
				Usage:     "Print the account a session token belongs to",
				ArgsUsage: "SESSION_TOKEN",
				Action:    a.whoAmI,
			},
			{
				Name:  "admin-token",
				Usage: "Mint an admin token",
				Flags: []cli.Flag{
					secretFlag(),
					&cli.StringFlag{
						Name:  "subject",
						Usage: "token subject",
						Value: "authctl",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "token lifetime",
						Value: 5 * time.Minute,
					},
				},
				Action: a.adminToken,
			},
			{
				Name:      "delete-account",
				Usage:     "Delete an account and revoke its sessions",
				ArgsUsage: "ACCOUNT_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "admin-token",
						Usage:   "admin token (see admin-token)",
						EnvVars: []string{"GOPHAUTH_ADMIN_TOKEN"},
					},
					secretFlag(),
				},
				Action: a.deleteAccount,
			},
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "account username (prompted when empty)",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "account password (prompted without echo when empty)",
		},
	}
}

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "secret",
		Usage:   "server admin secret key",
		EnvVars: []string{"GOPHAUTH_SECRET_KEY"},
	}
}

type commands struct {
	dial DialFunc
}

// withClient dials the server and runs f under the --timeout deadline.
func (a *commands) withClient(c *cli.Context, f func(ctx context.Context, cl Client) error) error {
	cl, err := a.dial(c.String("server"))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer cl.Close()

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	return f(ctx, cl)
}

// credentials resolves username and password from flags or prompts.
func credentials(c *cli.Context) (string, string, error) {
	username := c.String("username")
	if username == "" {
		u, err := GetSimpleText(bufio.NewReader(c.App.Reader), "Username", c.App.ErrWriter)
		if err != nil {
			return "", "", err
		}
		username = u
	}

	password := c.String("password")
	if password == "" {
		pw, err := GetPassword(c.App.ErrWriter)
		if err != nil {
			return "", "", err
		}
		password = string(pw)
		common.WipeByteArray(pw)
	}

	return username, password, nil
}

func (a *commands) signUp(c *cli.Context) error {
	username, password, err := credentials(c)
	if err != nil {
		return err
	}

	return a.withClient(c, func(ctx context.Context, cl Client) error {
		if err := cl.SignUp(ctx, username, password); err != nil {
			if errors.Is(err, grpcclient.ErrDuplicateUsername) {
				return fmt.Errorf("username %q is taken", username)
			}
			return err
		}
		fmt.Fprintln(c.App.Writer, "account created")
		return nil
	})
}

func (a *commands) signIn(c *cli.Context) error {
	username, password, err := credentials(c)
	if err != nil {
		return err
	}

	return a.withClient(c, func(ctx context.Context, cl Client) error {
		sess, err := cl.SignIn(ctx, username, password)
		if err != nil {
			if errors.Is(err, grpcclient.ErrUnauthorized) {
				return errors.New("invalid username or password")
			}
			return err
		}
		fmt.Fprintf(c.App.Writer, "account_id: %s\nsession_token: %s\n", sess.AccountID, sess.Token)
		return nil
	})
}

func (a *commands) signOut(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		return errors.New("session token required")
	}

	return a.withClient(c, func(ctx context.Context, cl Client) error {
		if err := cl.SignOut(ctx, token); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "signed out")
		return nil
	})
}

func (a *commands) whoAmI(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		return errors.New("session token required")
	}

	return a.withClient(c, func(ctx context.Context, cl Client) error {
		id, err := cl.ValidateSession(ctx, token)
		if err != nil {
			if errors.Is(err, grpcclient.ErrUnauthorized) {
				return errors.New("session is not valid")
			}
			return err
		}
		fmt.Fprintln(c.App.Writer, id)
		return nil
	})
}

func (a *commands) adminToken(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		return errors.New("--secret is required")
	}

	tok, err := auth.GenerateAdminToken(c.String("subject"), []byte(secret), c.Duration("ttl"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, tok)
	return nil
}

func (a *commands) deleteAccount(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("account id required")
	}

	token := c.String("admin-token")
	if token == "" {
		secret := c.String("secret")
		if secret == "" {
			return errors.New("--admin-token or --secret is required")
		}
		t, err := auth.GenerateAdminToken("authctl", []byte(secret), time.Minute)
		if err != nil {
			return err
		}
		token = t
	}

	return a.withClient(c, func(ctx context.Context, cl Client) error {
		revoked, err := cl.DeleteAccount(ctx, token, id)
		if err != nil {
			if errors.Is(err, grpcclient.ErrAccountNotFound) {
				return fmt.Errorf("account %s not found", id)
			}
			return err
		}
		fmt.Fprintf(c.App.Writer, "account deleted, %d session(s) revoked\n", revoked)
		return nil
	})
}
