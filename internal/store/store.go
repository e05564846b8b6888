// Package store is the in-memory cache of domain collections. Every
// mutation goes through the API client and is reconciled from the server's
// response; only the attendance board holds speculative state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"ems/internal/api"
	"ems/internal/domain/attendance"
	"ems/internal/domain/auth"
	"ems/internal/domain/dashboard"
	"ems/internal/domain/department"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

// Result is what every store operation returns. Operations never return
// errors; Message carries the server's message or a fallback.
type Result struct {
	Success bool
	Message string
	Status  int
	Body    json.RawMessage
}

// Session is the part of the session store the data store depends on.
type Session interface {
	WaitAuthenticated(ctx context.Context) (auth.Identity, error)
}

type Store struct {
	client *api.Client
	logger *zap.Logger

	init singleflight.Group

	mu          sync.RWMutex
	gen         uint64
	cancelInit  context.CancelFunc
	identity    auth.Identity
	initialized bool
	initRuns    int
	loading     int
	lastErr     string

	employees   *Collection[employee.StorageID, employee.Employee]
	departments *Collection[int64, department.Department]
	leave       *Collection[int64, leave.Request]
	reviews     *Collection[int64, performance.Review]
	payrolls    *Collection[int64, payroll.Record]
	stats       dashboard.Stats
	recent      []employee.Employee
	activities  []dashboard.Activity
	// board is created once and only reset, so it is read without mu.
	board *attendance.Board
}

func New(client *api.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{client: client, logger: logger}
	s.resetLocked()
	return s
}

func (s *Store) resetLocked() {
	s.employees = NewCollection(func(e employee.Employee) employee.StorageID { return e.ID })
	s.departments = NewCollection(func(d department.Department) int64 { return d.ID })
	s.leave = NewCollection(func(r leave.Request) int64 { return r.ID })
	s.reviews = NewCollection(func(r performance.Review) int64 { return r.ID })
	s.payrolls = NewCollection(func(p payroll.Record) int64 { return p.ID })
	s.stats = dashboard.Stats{}
	s.recent = nil
	s.activities = nil
	if s.board == nil {
		s.board = attendance.NewBoard()
	}
	s.board.Reset(nil)
	s.identity = auth.Identity{}
	s.initialized = false
	s.lastErr = ""
	if s.cancelInit != nil {
		s.cancelInit()
		s.cancelInit = nil
	}
	s.gen++
}

var errSuperseded = errors.New("session changed while loading")

type genKey struct{}

// view returns the generation a call writes into, the identity it acts for
// and whether that generation is still current. Loads run by Init carry
// their batch's generation in ctx.
func (s *Store) view(ctx context.Context) (uint64, auth.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gen := s.gen
	if g, ok := ctx.Value(genKey{}).(uint64); ok {
		gen = g
	}
	return gen, s.identity, gen == s.gen
}

func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// commit runs apply under the write lock unless Reset ran after gen was
// taken.
func (s *Store) commit(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	apply()
	return true
}

// loadFailed is fail for loads; failures of a superseded load are not
// reported into the current session.
func (s *Store) loadFailed(gen uint64, op, fallback string, err error) Result {
	if s.generation() != gen {
		return superseded()
	}
	return s.fail(op, fallback, err)
}

func superseded() Result {
	return Result{Message: errSuperseded.Error()}
}

// Init runs the role-dependent initial loads once. Concurrent and repeated
// calls share a single batch until Reset. Reset cancels a running batch and
// discards whatever it still returns; an Init after Reset never joins it.
func (s *Store) Init(ctx context.Context, identity auth.Identity) error {
	s.mu.RLock()
	gen, initialized := s.gen, s.initialized
	s.mu.RUnlock()
	if initialized {
		return nil
	}
	_, err, _ := s.init.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		s.mu.Lock()
		if s.initialized || s.gen != gen {
			s.mu.Unlock()
			return nil, nil
		}
		batchCtx, cancel := context.WithCancel(context.WithValue(ctx, genKey{}, gen))
		defer cancel()
		s.identity = identity
		s.initialized = true
		s.initRuns++
		s.cancelInit = cancel
		s.mu.Unlock()

		s.logger.Debug("initializing store", zap.String("role", string(identity.User.Role)))
		err := s.initBatch(batchCtx, identity)
		if s.generation() != gen {
			return nil, errSuperseded
		}
		return nil, err
	})
	return err
}

func (s *Store) initBatch(ctx context.Context, identity auth.Identity) error {
	loads := []func(context.Context) Result{s.LoadLeaveRequests, s.LoadStats, s.LoadReviews}
	if identity.User.IsAdmin() {
		loads = append(loads, s.LoadEmployees, s.LoadDepartments)
	}
	var g errgroup.Group
	for _, load := range loads {
		g.Go(func() error {
			if res := load(ctx); !res.Success {
				return resultError(res)
			}
			return nil
		})
	}
	return g.Wait()
}

type resultError Result

func (e resultError) Error() string { return e.Message }

// Start waits for the session to authenticate, then initializes.
func (s *Store) Start(ctx context.Context, session Session) error {
	identity, err := session.WaitAuthenticated(ctx)
	if err != nil {
		return err
	}
	return s.Init(ctx, identity)
}

// Reset drops all cached data and re-arms Init, for use on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// InitRuns counts initialization batches started since construction.
func (s *Store) InitRuns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initRuns
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Err returns the last failure message, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Store) Identity() auth.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// track counts an in-flight call; the returned func ends it.
func (s *Store) track() func() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}
}

// mutate starts a mutating call: it clears the error slot and tracks it.
func (s *Store) mutate() func() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	return s.track()
}

func (s *Store) fail(op, fallback string, err error) Result {
	res := Result{Message: fallback, Status: api.StatusOf(err), Body: api.BodyOf(err)}
	if msg, ok := api.MessageOf(err); ok {
		res.Message = msg
	}
	s.mu.Lock()
	s.lastErr = res.Message
	s.mu.Unlock()
	s.logger.Warn("store operation failed", zap.String("op", op), zap.Int("status", res.Status), zap.Error(err))
	return res
}

// invalid reports a payload rejected before any network call. The error
// slot is left alone.
func invalid(err error) Result {
	return Result{Message: err.Error()}
}

func ok() Result {
	return Result{Success: true}
}
