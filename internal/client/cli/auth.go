package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and signs in. The password byte
// slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = email
	a.signedIn.Store(true)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout signs out locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.signedIn.Store(false)
	a.email = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	s, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	a.signedIn.Store(s.SignedIn)

	if !s.SignedIn {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	switch {
	case s.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Signed in.")
	case s.Expired(time.Now()):
		fmt.Fprintf(a.out, "Signed in; access token expired at %s and will be refreshed on the next request.\n", date(s.ExpiresAt))
	default:
		fmt.Fprintf(a.out, "Signed in; access token valid until %s.\n", date(s.ExpiresAt))
	}
	return nil
}
