package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fingergate/internal/i18n"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Enroll(ctx context.Context) error
	Back(ctx context.Context) error
	Login(ctx context.Context) error
	FingerprintLogin(ctx context.Context) error
	Show(ctx context.Context) error
	Save(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands with readLine and dispatches them to a until the
// input ends, ctx is done, or the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - register       create an account (after enroll)
//	  - enroll         confirm a fingerprint for the registration form
//	  - back           clear the registration form
//	  - login          password login
//	  - fplogin        fingerprint login
//
//	Logged in:
//	  - show           show stored data
//	  - save           replace stored data
//	  - logout         end the session
//
//	Always: help, status, exit | quit.
//
// Command errors are reported by the handlers themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, tr *i18n.Translator, statusFn func() string, readLine func(context.Context) (string, error)) {
	for {
		printlnFn(fmt.Sprintf("fg> %s > ", statusFn()))
		line, err := readLine(ctx)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(tr.T("repl.help_logged_in"))
			} else {
				printlnFn(tr.T("repl.help_logged_out"))
			}

		case "register":
			_ = a.Register(ctx)

		case "enroll":
			_ = a.Enroll(ctx)

		case "back":
			_ = a.Back(ctx)

		case "login":
			_ = a.Login(ctx)

		case "fplogin":
			_ = a.FingerprintLogin(ctx)

		case "show":
			_ = a.Show(ctx)

		case "save":
			_ = a.Save(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn(tr.T("repl.bye"))
			return

		default:
			printlnFn(tr.Tf("repl.unknown", map[string]any{"Command": cmd}))
		}
	}
}
