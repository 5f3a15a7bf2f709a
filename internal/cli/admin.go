package cli

import (
	"context"
)

// Admins prints every administrator.
func (a *App) Admins(ctx context.Context, _ []string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	admins, err := a.accounts.ListAdmins(opCtx)
	if err != nil {
		return err
	}
	for _, acc := range admins {
		a.printf("%s <%s>\n", acc.Username, acc.Email)
	}
	return nil
}

// Promote grants administrator rights to args[0].
func (a *App) Promote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if ok, err := a.knownAccount(opCtx, args[0]); err != nil || !ok {
		return err
	}
	if err := a.accounts.PromoteAdmin(opCtx, args[0]); err != nil {
		return err
	}
	a.printf("%s is now an administrator.\n", args[0])
	return a.refreshSession(opCtx)
}

// Revoke removes administrator rights from args[0]. Revoking the last
// administrator is refused by the account store.
func (a *App) Revoke(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if ok, err := a.knownAccount(opCtx, args[0]); err != nil || !ok {
		return err
	}
	admin, err := a.accounts.IsAdmin(opCtx, args[0])
	if err != nil {
		return err
	}
	if !admin {
		a.printf("%s is not an administrator.\n", args[0])
		return nil
	}
	if err := a.accounts.RevokeAdmin(opCtx, args[0]); err != nil {
		return err
	}
	a.printf("%s has no administrator rights.\n", args[0])
	return a.refreshSession(opCtx)
}

// knownAccount reports whether username exists and tells the user when it
// does not.
func (a *App) knownAccount(ctx context.Context, username string) (bool, error) {
	ok, err := a.accounts.HasAccount(ctx, username)
	if err != nil {
		return false, err
	}
	if !ok {
		a.printf("No account named %s.\n", username)
	}
	return ok, nil
}

// refreshSession reloads the session after its admin flag may have changed.
func (a *App) refreshSession(ctx context.Context) error {
	s, err := a.accounts.CurrentSession(ctx)
	if err != nil {
		return err
	}
	a.session = s
	return nil
}
