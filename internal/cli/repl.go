package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passkeylab/internal/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() session.View
	Start(ctx context.Context) error
	SignIn(ctx context.Context) error
	SelectFlow(ctx context.Context, args []string) error
	Passkey(ctx context.Context) error
	Password(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Bank(ctx context.Context) error
	Pay(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	ListUsers(ctx context.Context) error
	SignOut(ctx context.Context) error
}

var helpByView = map[session.View]string{
	session.ViewHome:      "Available commands: start, signin, users, stats, exit",
	session.ViewRegister:  "Available commands: flow <passkey|password>, passkey, password, signin, exit",
	session.ViewLogin:     "Available commands: passkey, signup, exit",
	session.ViewDashboard: "Available commands: bank, stats, users, signout, exit",
	session.ViewBanking:   "Available commands: pay [amount], dashboard, stats, signout, exit",
}

// runREPL reads commands line by line from reader and dispatches them to a.
//
// Which commands are accepted depends on the current view; "help" lists them.
// The loop exits on EOF or when the user types "exit" or "quit". Errors
// returned by command handlers are ignored here: outcomes reach the user
// through the event sink.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("pl %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]
		v := a.view()

		switch {
		case cmd == "help":
			printlnFn(helpByView[v])

		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return

		case cmd == "stats":
			_ = a.Stats(ctx)

		case cmd == "users":
			_ = a.ListUsers(ctx)

		case (cmd == "start" || cmd == "signup") && (v == session.ViewHome || v == session.ViewLogin):
			_ = a.Start(ctx)

		case cmd == "signin" && (v == session.ViewHome || v == session.ViewRegister):
			_ = a.SignIn(ctx)

		case cmd == "flow" && v == session.ViewRegister:
			_ = a.SelectFlow(ctx, args)

		case cmd == "passkey" && (v == session.ViewRegister || v == session.ViewLogin):
			_ = a.Passkey(ctx)

		case cmd == "password" && v == session.ViewRegister:
			_ = a.Password(ctx)

		case (cmd == "bank" || cmd == "banking") && (v == session.ViewDashboard || v == session.ViewBanking):
			_ = a.Bank(ctx)

		case (cmd == "dashboard" || cmd == "back") && (v == session.ViewDashboard || v == session.ViewBanking):
			_ = a.Dashboard(ctx)

		case cmd == "pay" && v == session.ViewBanking:
			_ = a.Pay(ctx, args)

		case cmd == "signout" && (v == session.ViewDashboard || v == session.ViewBanking):
			_ = a.SignOut(ctx)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
