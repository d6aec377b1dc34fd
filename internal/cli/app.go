package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
	"github.com/dmitrijs2005/passkeylab/internal/clock"
	"github.com/dmitrijs2005/passkeylab/internal/config"
	"github.com/dmitrijs2005/passkeylab/internal/conversion"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
	"github.com/dmitrijs2005/passkeylab/internal/notify"
	"github.com/dmitrijs2005/passkeylab/internal/session"
	"github.com/dmitrijs2005/passkeylab/internal/transaction"
	"golang.org/x/text/message"
)

// SessionService is the part of session.Controller the REPL drives.
type SessionService interface {
	BeginRegistration(ctx context.Context, flow conversion.Flow)
	BeginLogin(ctx context.Context, flow conversion.Flow)
	RegisterWithPasskey(ctx context.Context, username string) (session.User, error)
	RegisterWithPassword(ctx context.Context, username string, password []byte) (session.User, error)
	LoginWithPasskey(ctx context.Context, username string) (session.User, error)
	SignOut(ctx context.Context)
	Navigate(ctx context.Context, to session.View) error
	State() session.State
	Users() []session.User
}

// TransactionService authorizes payments from the Banking view.
type TransactionService interface {
	Authorize(ctx context.Context, raw string) (transaction.Decision, error)
	Threshold() float64
}

// StatsService reads conversion metrics for the dashboard.
type StatsService interface {
	AverageDuration(ctx context.Context, flow conversion.Flow) (time.Duration, error)
	History(ctx context.Context) ([]conversion.Metric, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  SessionService
	payments TransactionService
	stats    StatsService
	closer   io.Closer
	reader   *bufio.Reader
	out      io.Writer
	printer  *message.Printer

	// flow is the registration method selected on the Register view.
	flow conversion.Flow
}

// NewApp builds the application graph described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	tag, err := c.LanguageTag()
	if err != nil {
		return nil, err
	}
	unit, err := c.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	store, err := conversion.OpenSQLite(ctx, c.MetricsDSN, logger)
	if err != nil {
		logger.Error(ctx, "error initializing metrics store", "error", err)
		return nil, err
	}

	clk := clock.System()
	tracker := conversion.NewTracker(clk, store, logger.With("component", "conversion"))

	var rejected []ceremony.Kind
	if c.RejectStepUp {
		rejected = append(rejected, ceremony.StepUpVerification)
	}
	ceremonies := ceremony.NewSimulated(c.Delays(), c.CeremonyTimeout, logger.With("component", "ceremony"), rejected...)

	events := notify.NewConsole(os.Stdout, tag, unit)

	ctrl := session.NewController(session.Deps{
		Tracker:    tracker,
		Ceremonies: ceremonies,
		Platform:   ceremony.StaticPlatform(c.PlatformCredentials),
		Clock:      clk,
		Events:     events,
		Logger:     logger.With("component", "session"),
	})
	auth := transaction.NewAuthorizer(c.StepUpThreshold, ceremonies, events, logger.With("component", "transaction"))

	return &App{
		config:   c,
		logger:   logger,
		session:  ctrl,
		payments: auth,
		stats:    tracker,
		closer:   store,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		printer:  message.NewPrinter(tag),
		flow:     conversion.FlowPasskey,
	}, nil
}

// Run starts the REPL and releases resources once the user leaves.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closer == nil {
			return
		}
		if err := a.closer.Close(); err != nil {
			a.logger.Warn(ctx, "error closing metrics store", "error", err)
		}
	}()

	printlnFn("Welcome to Passkey Lab (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) view() session.View {
	return a.session.State().View
}

func (a *App) getStatus() string {
	s := a.session.State()
	status := string(s.View)
	if s.View == session.ViewRegister {
		status += ":" + a.flow.String()
	}
	if s.CurrentUser != nil {
		status = s.CurrentUser.Username + " " + status
	}
	return fmt.Sprintf("(%s)", status)
}
