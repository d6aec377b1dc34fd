package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func newConsole(buf *bytes.Buffer) *Console {
	return NewConsole(buf, language.English, currency.EUR)
}

func TestConsole_RenderConversion(t *testing.T) {
	c := newConsole(&bytes.Buffer{})

	got := c.Render(Event{Kind: ConversionTracked, Flow: "passkey", Duration: 1300 * time.Millisecond})

	assert.Equal(t, "Conversion Tracked", got.Title)
	assert.Equal(t, "passkey flow completed in 1.3s", got.Description)
	assert.False(t, got.Destructive)
}

func TestConsole_RenderRegistration(t *testing.T) {
	c := newConsole(&bytes.Buffer{})

	assert.Equal(t, "Passkey registered successfully!",
		c.Render(Event{Kind: RegistrationSucceeded, Flow: "passkey"}).Description)
	assert.Equal(t, "Account created successfully!",
		c.Render(Event{Kind: RegistrationSucceeded, Flow: "password"}).Description)
}

func TestConsole_RenderTransactions(t *testing.T) {
	c := newConsole(&bytes.Buffer{})

	plain := c.Render(Event{Kind: TransactionApproved, Amount: 42})
	assert.Equal(t, "Transaction Approved", plain.Title)
	assert.Contains(t, plain.Description, "42")
	assert.Contains(t, plain.Description, "€")
	assert.NotContains(t, plain.Description, "step-up")

	stepped := c.Render(Event{Kind: TransactionApproved, Amount: 200, StepUp: true})
	assert.Equal(t, "€200 transaction completed with step-up authentication", stepped.Description)
	assert.True(t, strings.HasSuffix(stepped.Description, "with step-up authentication"))

	fractional := c.Render(Event{Kind: TransactionApproved, Amount: 1250.5})
	assert.Equal(t, "€1,250.5 transaction completed", fractional.Description)

	declined := c.Render(Event{Kind: TransactionDeclined, Amount: 200, StepUp: true})
	assert.True(t, declined.Destructive)
}

func TestConsole_RenderFailures(t *testing.T) {
	c := newConsole(&bytes.Buffer{})

	v := c.Render(Failure(OpRegistration, common.ErrValidation))
	assert.Equal(t, "Error", v.Title)
	assert.True(t, v.Destructive)

	nf := c.Render(Failure(OpLogin, common.ErrCredentialNotFound))
	assert.Equal(t, "Login Failed", nf.Title)
	assert.Equal(t, common.ErrCredentialNotFound.Error(), nf.Description)

	pu := c.Render(Failure(OpRegistration, common.ErrPlatformUnsupported))
	assert.Equal(t, "Registration Failed", pu.Title)
}

func TestConsole_EmitWritesLine(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf)

	c.Emit(context.Background(), Event{Kind: StepUpRequired})
	c.Emit(context.Background(), Failure(OpTransaction, common.ErrStepUpFailed))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* Step-up Authentication Required"))
	assert.True(t, strings.HasPrefix(lines[1], "! Transaction Failed"))
}
