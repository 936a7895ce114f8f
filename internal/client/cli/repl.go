package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docuport/internal/client/authz"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	capabilities() authz.CapabilitySet
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Docs(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
	Categories(ctx context.Context, args []string) error
	Departments(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Activity(ctx context.Context, args []string) error
}

// printHelp lists only the commands the current session is offered.
// Gating here is advisory; the backend re-checks every request.
func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, exit")
		return
	}

	caps := a.capabilities()
	cmds := []string{"docs", "show", "download", "dashboard", "whoami", "profile", "departments"}
	if caps.Has(authz.UploadDocuments) {
		cmds = append(cmds, "upload")
	}
	if caps.Has(authz.EditAnyDocument) || caps.Has(authz.EditOwnDocument) {
		cmds = append(cmds, "edit", "rm")
	}
	if caps.Has(authz.ManageCategories) {
		cmds = append(cmds, "categories")
	}
	if caps.Has(authz.ManageUsers) {
		cmds = append(cmds, "users")
	}
	if caps.Has(authz.ViewAuditLog) {
		cmds = append(cmds, "activity")
	}
	cmds = append(cmds, "logout", "exit")
	printlnFn("Available commands:", strings.Join(cmds, ", "))
}

// runREPL starts a simple read–eval–print loop for the docuport CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dp> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "d", "docs":
			_ = a.Docs(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "rm":
			_ = a.Remove(ctx, args)

		case "upload":
			_ = a.Upload(ctx)

		case "categories":
			_ = a.Categories(ctx, args)

		case "departments":
			_ = a.Departments(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "activity":
			_ = a.Activity(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
