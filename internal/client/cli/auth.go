package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/docuport/internal/client/authz"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and establishes the session. A failed
// attempt leaves any current session untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	identity, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		return reportErr(err)
	}

	printlnFn(fmt.Sprintf("Welcome, %s (%s)", identity.Name, identity.PrimaryRole()))
	return nil
}

// Logout revokes the session. Always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current identity, its resolved capabilities, and the
// token's expiry when the token is a readable JWT.
func (a *App) Whoami(ctx context.Context) error {
	sess := a.sessions.Current()
	if sess.Identity == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn("Name:      ", sess.Identity.Name)
	printlnFn("Email:     ", sess.Identity.Email)
	printlnFn("Role:      ", string(authz.RoleOf(sess.Identity)))
	if sess.Identity.Department != nil {
		printlnFn("Department:", sess.Identity.Department.Name)
	}

	caps := authz.CapabilitiesFor(sess.Identity)
	names := make([]string, 0, len(caps))
	for c := range caps {
		names = append(names, string(c))
	}
	sort.Strings(names)
	for _, n := range names {
		printlnFn("  can:", n)
	}

	if exp := tokenExpiry(sess.Token); exp != "" {
		printlnFn("Token expires:", exp)
	}
	return nil
}

// tokenExpiry extracts the exp claim from a bearer token without
// verifying the signature. Opaque tokens yield "".
func tokenExpiry(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Time.Format("2006-01-02 15:04:05")
}
