package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Toast is the rendered form of an event.
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

func (t Toast) String() string {
	mark := "*"
	if t.Destructive {
		mark = "!"
	}
	if t.Description == "" {
		return fmt.Sprintf("%s %s", mark, t.Title)
	}
	return fmt.Sprintf("%s %s: %s", mark, t.Title, t.Description)
}

// Console renders events as one line each on w.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	p    *message.Printer
	unit currency.Unit
}

// NewConsole returns a Console formatting numbers for lang and amounts in unit.
func NewConsole(w io.Writer, lang language.Tag, unit currency.Unit) *Console {
	return &Console{w: w, p: message.NewPrinter(lang), unit: unit}
}

func (c *Console) Emit(_ context.Context, e Event) {
	t := c.Render(e)
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, t.String())
}

// Render turns an event into a toast without writing it.
func (c *Console) Render(e Event) Toast {
	switch e.Kind {
	case RegistrationSucceeded:
		if e.Flow == "passkey" {
			return Toast{Title: "Registration Successful", Description: "Passkey registered successfully!"}
		}
		return Toast{Title: "Registration Successful", Description: "Account created successfully!"}
	case LoginSucceeded:
		return Toast{Title: "Login Successful", Description: "Authenticated with passkey!"}
	case ConversionTracked:
		return Toast{
			Title:       "Conversion Tracked",
			Description: c.p.Sprintf("%s flow completed in %.1fs", e.Flow, e.Duration.Seconds()),
		}
	case SignedOut:
		return Toast{Title: "Signed Out"}
	case StepUpRequired:
		return Toast{
			Title:       "Step-up Authentication Required",
			Description: "High-value transaction requires additional verification",
		}
	case TransactionApproved:
		desc := c.money(e.Amount) + " transaction completed"
		if e.StepUp {
			desc += " with step-up authentication"
		}
		return Toast{Title: "Transaction Approved", Description: desc}
	case TransactionDeclined:
		return Toast{Title: "Transaction Failed", Description: "Step-up authentication failed", Destructive: true}
	case OperationFailed:
		return Toast{Title: failureTitle(e), Description: errText(e.Err), Destructive: true}
	}
	return Toast{Title: string(e.Kind)}
}

// money renders amount as the currency symbol directly followed by the
// localized number, e.g. "€200" or "€1,250.5".
func (c *Console) money(amount float64) string {
	return c.p.Sprintf("%v%v", currency.Symbol(c.unit), number.Decimal(amount))
}

func failureTitle(e Event) string {
	if e.Outcome == OutcomeValidationError || e.Outcome == OutcomeInvalidAmount || e.Outcome == OutcomeBusy {
		return "Error"
	}
	switch e.Operation {
	case OpRegistration:
		return "Registration Failed"
	case OpLogin:
		return "Login Failed"
	case OpTransaction:
		return "Transaction Failed"
	}
	return "Error"
}

func errText(err error) string {
	if err == nil {
		return "Unknown error occurred"
	}
	return err.Error()
}
