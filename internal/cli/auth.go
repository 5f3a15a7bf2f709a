package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for username, email and password and creates a regular
// account. It does not log the new user in.
func (a *App) Register(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	acc, err := a.accounts.Register(opCtx, username, email, string(password))
	if err != nil {
		return err
	}
	a.printf("Account %s created, you can log in now.\n", acc.Username)
	return nil
}

// Login authenticates and replaces the current session. The username may
// be given as an argument. A failed attempt keeps the previous session.
func (a *App) Login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := getSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return err
		}
		username = u
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	session, err := a.accounts.Authenticate(opCtx, username, string(password))
	if err != nil {
		a.logger.Info(ctx, "login failed", "username", username)
		return err
	}

	a.session = session
	if session.IsAdmin {
		a.printf("Welcome, %s (administrator).\n", session.Username)
	} else {
		a.printf("Welcome, %s.\n", session.Username)
	}
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.accounts.EndSession(opCtx); err != nil {
		return err
	}
	a.session = nil
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	switch {
	case a.session == nil:
		a.println("Not logged in.")
	case a.session.IsAdmin:
		a.printf("%s <%s>, administrator\n", a.session.Username, a.session.Email)
	default:
		a.printf("%s <%s>\n", a.session.Username, a.session.Email)
	}
	return nil
}
