// Package session holds the authenticated identity, persists it to durable
// client storage and tells other components when a login completes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ems/internal/api"
	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/platform/storage"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Durable storage keys. They are always written and cleared together.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyEmployee = "employee"
)

var keys = []string{KeyToken, KeyUser, KeyEmployee}

var ErrCorrupt = errors.New("stored session is corrupt")

const (
	loginFallback    = "Login failed"
	registerFallback = "Registration failed"
)

type Authenticator interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Register(ctx context.Context, req auth.SignupRequest) (string, error)
}

// EmployeeLister backs the email lookup used when the login response does
// not carry a business id.
type EmployeeLister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

type Result struct {
	Success bool
	Message string
	Status  int
}

type Store struct {
	storage   storage.Storage
	auth      Authenticator
	employees EmployeeLister
	logger    *zap.Logger

	mu       sync.RWMutex
	state    State
	identity *auth.Identity
	// pending is the token of a login still being completed; the email
	// lookup needs it before the identity is committed.
	pending string
	changed chan struct{}

	listenersMu sync.Mutex
	onLogin     []func(auth.Identity)
	onLogout    []func()
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithEmployeeLister(l EmployeeLister) Option {
	return func(s *Store) { s.employees = l }
}

func New(st storage.Storage, authn Authenticator, opts ...Option) *Store {
	s := &Store{
		storage: st,
		auth:    authn,
		logger:  zap.NewNop(),
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// setState must be called with mu held.
func (s *Store) setState(state State, identity *auth.Identity) {
	s.state = state
	s.identity = identity
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Identity() (auth.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return auth.Identity{}, false
	}
	return *s.identity, true
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity != nil {
		return s.identity.Token
	}
	return s.pending
}

// OnLogin registers fn to run after every completed login or restore.
func (s *Store) OnLogin(fn func(auth.Identity)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.onLogin = append(s.onLogin, fn)
}

func (s *Store) OnLogout(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

func (s *Store) notifyLogin(identity auth.Identity) {
	s.listenersMu.Lock()
	fns := append([]func(auth.Identity){}, s.onLogin...)
	s.listenersMu.Unlock()
	for _, fn := range fns {
		fn(identity)
	}
}

func (s *Store) notifyLogout() {
	s.listenersMu.Lock()
	fns := append([]func(){}, s.onLogout...)
	s.listenersMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// WaitAuthenticated blocks until the store is authenticated or ctx ends.
func (s *Store) WaitAuthenticated(ctx context.Context) (auth.Identity, error) {
	for {
		s.mu.RLock()
		if s.state == StateAuthenticated && s.identity != nil {
			identity := *s.identity
			s.mu.RUnlock()
			return identity, nil
		}
		changed := s.changed
		s.mu.RUnlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return auth.Identity{}, ctx.Err()
		}
	}
}

// Restore loads a stored session without contacting the server. Missing
// data leaves the store anonymous; corrupt data is cleared.
func (s *Store) Restore(ctx context.Context) State {
	values, err := s.storage.Get(ctx, keys...)
	if err != nil && !errors.Is(err, storage.ErrUnreadable) {
		s.logger.Warn("session restore failed", zap.Error(err))
		return s.State()
	}
	var identity auth.Identity
	if err == nil {
		identity, err = decodeIdentity(values)
	}
	if err != nil {
		if !errors.Is(err, errMissing) {
			s.logger.Warn("discarding stored session", zap.Error(err))
			if err := s.storage.Delete(ctx, keys...); err != nil {
				s.logger.Warn("clear corrupt session failed", zap.Error(err))
			}
		}
		s.mu.Lock()
		s.setState(StateAnonymous, nil)
		s.mu.Unlock()
		return StateAnonymous
	}

	s.mu.Lock()
	s.setState(StateAuthenticated, &identity)
	s.mu.Unlock()
	s.logger.Debug("session restored", zap.String("email", identity.User.Email), zap.String("role", string(identity.User.Role)))
	s.notifyLogin(identity)
	return StateAuthenticated
}

var errMissing = errors.New("no stored session")

func decodeIdentity(values map[string]string) (auth.Identity, error) {
	token, hasToken := values[KeyToken]
	rawUser, hasUser := values[KeyUser]
	_, hasEmployee := values[KeyEmployee]
	if !hasToken && !hasUser && !hasEmployee {
		return auth.Identity{}, errMissing
	}
	if strings.TrimSpace(token) == "" || !hasUser {
		return auth.Identity{}, fmt.Errorf("%w: token or user missing", ErrCorrupt)
	}
	var user auth.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: user: %v", ErrCorrupt, err)
	}
	if user.Email == "" || (user.Role != auth.RoleAdmin && user.Role != auth.RoleEmployee) {
		return auth.Identity{}, fmt.Errorf("%w: user incomplete", ErrCorrupt)
	}
	identity := auth.Identity{Token: token, User: user, ExpiresAt: auth.ExpiresAt(token)}
	if raw := values[KeyEmployee]; raw != "" && raw != "null" {
		var ref auth.EmployeeRef
		if err := json.Unmarshal([]byte(raw), &ref); err != nil {
			return auth.Identity{}, fmt.Errorf("%w: employee: %v", ErrCorrupt, err)
		}
		identity.Employee = &ref
	}
	return identity, nil
}

func encodeIdentity(identity auth.Identity) (map[string]string, error) {
	user, err := json.Marshal(identity.User)
	if err != nil {
		return nil, err
	}
	ref, err := json.Marshal(identity.Employee)
	if err != nil {
		return nil, err
	}
	return map[string]string{KeyToken: identity.Token, KeyUser: string(user), KeyEmployee: string(ref)}, nil
}

// Login authenticates, derives the routing and business identities,
// persists them with the token and fires the login listeners. A failure
// leaves durable storage untouched.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	req := auth.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return Result{Message: err.Error()}
	}

	s.mu.Lock()
	s.setState(StateAuthenticating, nil)
	s.mu.Unlock()

	identity, err := s.authenticate(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.pending = ""
		s.setState(StateAnonymous, nil)
		s.mu.Unlock()
		s.logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		return failure(err, loginFallback)
	}

	s.mu.Lock()
	s.pending = ""
	s.setState(StateAuthenticated, &identity)
	s.mu.Unlock()
	s.logger.Info("login completed", zap.String("email", identity.User.Email), zap.String("role", string(identity.User.Role)))
	s.notifyLogin(identity)
	return Result{Success: true}
}

func (s *Store) authenticate(ctx context.Context, req auth.LoginRequest) (auth.Identity, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return auth.Identity{}, err
	}
	if resp.Token == "" {
		return auth.Identity{}, errors.New("login response carried no token")
	}
	identity := auth.Identity{Token: resp.Token, User: resp.User(), ExpiresAt: auth.ExpiresAt(resp.Token)}
	if identity.User.Email == "" {
		identity.User.Email = req.Email
	}
	if ref, ok := resp.EmployeeRef(); ok {
		identity.Employee = &ref
	} else {
		s.mu.Lock()
		s.pending = resp.Token
		s.mu.Unlock()
		identity.Employee = s.lookupEmployee(ctx, identity.User.Email)
	}

	values, err := encodeIdentity(identity)
	if err != nil {
		return auth.Identity{}, err
	}
	if err := s.storage.SetAll(ctx, values); err != nil {
		return auth.Identity{}, fmt.Errorf("persist session: %w", err)
	}
	return identity, nil
}

// lookupEmployee resolves the business identity by exact email. Anything
// other than exactly one match leaves it unset.
func (s *Store) lookupEmployee(ctx context.Context, email string) *auth.EmployeeRef {
	if s.employees == nil {
		return nil
	}
	list, err := s.employees.List(ctx)
	if err != nil {
		s.logger.Debug("employee lookup unavailable", zap.Error(err))
		return nil
	}
	match, ok := employee.MatchEmail(list, email)
	if !ok {
		s.logger.Warn("no unique employee record for login email", zap.String("email", email))
		return nil
	}
	ref := auth.RefFrom(match)
	return &ref
}

// Register creates an account. It does not log in.
func (s *Store) Register(ctx context.Context, req auth.SignupRequest) Result {
	if err := req.Validate(); err != nil {
		return Result{Message: err.Error()}
	}
	msg, err := s.auth.Register(ctx, req)
	if err != nil {
		s.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		return failure(err, registerFallback)
	}
	return Result{Success: true, Message: msg}
}

// Logout clears durable storage and returns to anonymous. It never fails;
// storage errors are logged.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Delete(ctx, keys...); err != nil {
		s.logger.Warn("clear session failed", zap.Error(err))
	}
	s.mu.Lock()
	s.pending = ""
	s.setState(StateAnonymous, nil)
	s.mu.Unlock()
	s.notifyLogout()
}

func failure(err error, fallback string) Result {
	res := Result{Message: fallback, Status: api.StatusOf(err)}
	if msg, ok := api.MessageOf(err); ok {
		res.Message = msg
	}
	return res
}
