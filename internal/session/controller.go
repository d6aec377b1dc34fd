package session

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
	"github.com/dmitrijs2005/passkeylab/internal/clock"
	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/dmitrijs2005/passkeylab/internal/conversion"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
	"github.com/dmitrijs2005/passkeylab/internal/notify"
	"github.com/google/uuid"
)

// Deps are the collaborators of a Controller. Tracker and Ceremonies are
// required; the rest fall back to defaults.
type Deps struct {
	Tracker    *conversion.Tracker
	Ceremonies ceremony.Performer
	Platform   ceremony.Platform
	Clock      clock.Clock
	Events     notify.Sink
	Logger     logging.Logger

	// NewID and NewCredentialHandle default to uuid.NewString and
	// common.NewCredentialHandle.
	NewID               func() string
	NewCredentialHandle func() (string, error)
}

// Controller drives one session.
type Controller struct {
	mu       sync.Mutex
	view     View
	current  *User
	registry Registry
	loading  bool

	tracker    *conversion.Tracker
	ceremonies ceremony.Performer
	platform   ceremony.Platform
	clock      clock.Clock
	events     notify.Sink
	logger     logging.Logger
	newID      func() string
	newHandle  func() (string, error)
}

// NewController returns a controller on the Home view with an empty registry.
func NewController(d Deps) *Controller {
	c := &Controller{
		view:       ViewHome,
		tracker:    d.Tracker,
		ceremonies: d.Ceremonies,
		platform:   d.Platform,
		clock:      d.Clock,
		events:     d.Events,
		logger:     d.Logger,
		newID:      d.NewID,
		newHandle:  d.NewCredentialHandle,
	}
	if c.platform == nil {
		c.platform = ceremony.StaticPlatform(true)
	}
	if c.clock == nil {
		c.clock = clock.System()
	}
	if c.events == nil {
		c.events = notify.Discard
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.newHandle == nil {
		c.newHandle = common.NewCredentialHandle
	}
	return c
}

// BeginRegistration shows the Register view and starts timing flow.
func (c *Controller) BeginRegistration(ctx context.Context, flow conversion.Flow) {
	c.setView(ViewRegister)
	c.tracker.Start(ctx, flow)
}

// BeginLogin shows the Login view and starts timing flow.
func (c *Controller) BeginLogin(ctx context.Context, flow conversion.Flow) {
	c.setView(ViewLogin)
	c.tracker.Start(ctx, flow)
}

// RegisterWithPasskey creates a passkey account for username.
func (c *Controller) RegisterWithPasskey(ctx context.Context, username string) (User, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return c.fail(ctx, notify.OpRegistration, fmt.Errorf("%w: please enter a username", common.ErrValidation))
	}

	if err := c.acquire(); err != nil {
		return c.fail(ctx, notify.OpRegistration, err)
	}
	defer c.release()

	if err := c.ceremonies.Perform(ctx, ceremony.PasskeyRegistration); err != nil {
		return c.fail(ctx, notify.OpRegistration, fmt.Errorf("passkey registration: %w", err))
	}
	if !c.platform.CredentialsAvailable() {
		return c.fail(ctx, notify.OpRegistration, common.ErrPlatformUnsupported)
	}

	handle, err := c.newHandle()
	if err != nil {
		return c.fail(ctx, notify.OpRegistration, fmt.Errorf("issue credential handle: %w", err))
	}

	u := User{ID: c.newID(), Username: name, CredentialHandle: handle, CreatedAt: c.clock.Now()}
	return c.commit(ctx, u, true, conversion.FlowPasskey)
}

// RegisterWithPassword creates an account without a passkey. The password is
// only checked for presence; nothing is stored.
func (c *Controller) RegisterWithPassword(ctx context.Context, username string, password []byte) (User, error) {
	name := strings.TrimSpace(username)
	if name == "" || len(bytes.TrimSpace(password)) == 0 {
		return c.fail(ctx, notify.OpRegistration, fmt.Errorf("%w: please enter username and password", common.ErrValidation))
	}

	if err := c.acquire(); err != nil {
		return c.fail(ctx, notify.OpRegistration, err)
	}
	defer c.release()

	if err := c.ceremonies.Perform(ctx, ceremony.PasswordRegistration); err != nil {
		return c.fail(ctx, notify.OpRegistration, fmt.Errorf("password registration: %w", err))
	}

	u := User{ID: c.newID(), Username: name, CreatedAt: c.clock.Now()}
	return c.commit(ctx, u, true, conversion.FlowPassword)
}

// LoginWithPasskey signs in the first registered user named username.
func (c *Controller) LoginWithPasskey(ctx context.Context, username string) (User, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return c.fail(ctx, notify.OpLogin, fmt.Errorf("%w: please enter a username", common.ErrValidation))
	}

	if err := c.acquire(); err != nil {
		return c.fail(ctx, notify.OpLogin, err)
	}
	defer c.release()

	if err := c.ceremonies.Perform(ctx, ceremony.PasskeyAssertion); err != nil {
		return c.fail(ctx, notify.OpLogin, fmt.Errorf("passkey login: %w", err))
	}

	c.mu.Lock()
	u, ok := c.registry.FindByUsername(name)
	c.mu.Unlock()
	if !ok || !u.HasPasskey() {
		return c.fail(ctx, notify.OpLogin, common.ErrCredentialNotFound)
	}

	return c.commit(ctx, u, false, conversion.FlowPasskey)
}

// SignOut forgets the current user and returns to Home.
func (c *Controller) SignOut(ctx context.Context) {
	c.mu.Lock()
	c.current = nil
	c.view = ViewHome
	c.mu.Unlock()

	c.logger.Info(ctx, "signed out")
	c.events.Emit(ctx, notify.Event{Kind: notify.SignedOut, Outcome: notify.OutcomeSuccess})
}

// Navigate moves between views that need no ceremony: Dashboard and Banking.
func (c *Controller) Navigate(ctx context.Context, to View) error {
	if to != ViewDashboard && to != ViewBanking {
		err := fmt.Errorf("%w: %s requires a flow to be started", common.ErrInvalidTransition, to)
		c.events.Emit(ctx, notify.Failure(notify.OpNavigation, err))
		return err
	}
	c.setView(to)
	return nil
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{View: c.view, Loading: c.loading}
	if c.current != nil {
		u := *c.current
		s.CurrentUser = &u
	}
	return s
}

// Users returns the registry in registration order.
func (c *Controller) Users() []User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.All()
}

func (c *Controller) setView(v View) {
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
}

func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return common.ErrCeremonyInProgress
	}
	c.loading = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// commit applies a successful ceremony: closes the conversion metric first,
// since that is the only step that can fail, then updates the session.
func (c *Controller) commit(ctx context.Context, u User, register bool, flow conversion.Flow) (User, error) {
	op := notify.OpLogin
	if register {
		op = notify.OpRegistration
	}

	metric, err := c.tracker.Complete(ctx)
	if err != nil {
		return c.fail(ctx, op, err)
	}

	c.mu.Lock()
	if register {
		c.registry.Add(u)
	}
	current := u
	c.current = &current
	c.view = ViewDashboard
	c.mu.Unlock()

	c.logger.Info(ctx, "authenticated", "operation", op, "flow", flow, "user_id", u.ID, "username", u.Username)

	kind := notify.LoginSucceeded
	if register {
		kind = notify.RegistrationSucceeded
	}
	c.events.Emit(ctx, notify.Event{
		Kind:      kind,
		Outcome:   notify.OutcomeSuccess,
		Operation: op,
		Username:  u.Username,
		Flow:      flow.String(),
	})
	if metric != nil {
		c.events.Emit(ctx, notify.Event{
			Kind:      notify.ConversionTracked,
			Outcome:   notify.OutcomeSuccess,
			Operation: op,
			Username:  u.Username,
			Flow:      metric.Flow.String(),
			Duration:  metric.Duration,
		})
	}
	return u, nil
}

func (c *Controller) fail(ctx context.Context, op notify.Operation, err error) (User, error) {
	c.logger.Warn(ctx, "operation failed", "operation", op, "error", err)
	c.events.Emit(ctx, notify.Failure(op, err))
	return User{}, err
}
