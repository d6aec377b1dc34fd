package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passkeylab/internal/conversion"
	"github.com/dmitrijs2005/passkeylab/internal/session"
)

var errUsage = errors.New("usage")

// Start opens the Register view with the passkey tab selected.
func (a *App) Start(ctx context.Context) error {
	a.flow = conversion.FlowPasskey
	a.session.BeginRegistration(ctx, a.flow)
	return nil
}

// SignIn opens the Login view, timing the flow selected on Register.
func (a *App) SignIn(ctx context.Context) error {
	a.session.BeginLogin(ctx, a.flow)
	return nil
}

// SelectFlow switches the Register tab. Switching to a different method
// restarts timing for it; reselecting the current tab keeps the open metric.
func (a *App) SelectFlow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: flow <passkey|password>")
		return errUsage
	}
	f, err := conversion.ParseFlow(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if f == a.flow {
		return nil
	}
	a.flow = f
	a.session.BeginRegistration(ctx, f)
	return nil
}

// Passkey registers or signs in with a passkey, depending on the view.
func (a *App) Passkey(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter your username", a.out)
	if err != nil {
		return err
	}

	if a.view() == session.ViewLogin {
		_, err = a.session.LoginWithPasskey(ctx, username)
		return err
	}
	_, err = a.session.RegisterWithPasskey(ctx, username)
	return err
}

// Password registers an account with a password.
func (a *App) Password(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter your username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	_, err = a.session.RegisterWithPassword(ctx, username, password)
	return err
}

func (a *App) Dashboard(ctx context.Context) error {
	return a.session.Navigate(ctx, session.ViewDashboard)
}

func (a *App) Bank(ctx context.Context) error {
	if err := a.session.Navigate(ctx, session.ViewBanking); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.printer.Sprintf("Transfers above %.2f require step-up authentication", a.payments.Threshold()))
	return nil
}

// Pay authorizes a transfer of the amount in args, prompting when absent.
func (a *App) Pay(ctx context.Context, args []string) error {
	raw := strings.Join(args, "")
	if raw == "" {
		var err error
		raw, err = GetSimpleText(a.reader, "Enter amount", a.out)
		if err != nil {
			return err
		}
	}
	_, err := a.payments.Authorize(ctx, raw)
	return err
}

// Stats prints the average duration of each flow and the number of
// completed flows.
func (a *App) Stats(ctx context.Context) error {
	for _, f := range conversion.Flows {
		avg, err := a.stats.AverageDuration(ctx, f)
		if err != nil {
			a.logger.Error(ctx, "error reading conversion average", "flow", f, "error", err)
			return err
		}
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		fmt.Fprintln(a.out, a.printer.Sprintf("%s avg: %.1fs", label, avg.Seconds()))
	}

	history, err := a.stats.History(ctx)
	if err != nil {
		a.logger.Error(ctx, "error reading conversion history", "error", err)
		return err
	}
	fmt.Fprintln(a.out, a.printer.Sprintf("Flows tracked: %d", len(history)))
	return nil
}

// ListUsers prints the accounts registered in this session.
func (a *App) ListUsers(_ context.Context) error {
	users := a.session.Users()
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users registered")
		return nil
	}
	for _, u := range users {
		method := "password"
		if u.HasPasskey() {
			method = "passkey"
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", u.ID, u.Username, method, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	a.session.SignOut(ctx)
	return nil
}
