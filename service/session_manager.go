package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 256
	defaultTokenTTL     = time.Hour

	sessionIDClaim = "sessionID"
	stepLockKeyFmt = "lightning-maze:session:%s:step"
)

// Session errors.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionBusy        = errors.New("session is being stepped by another driver")
	ErrNotDriver          = errors.New("token does not drive this session")
	ErrDimensionTooLarge  = errors.New("maze dimension is too large")
	ErrMissingDependency  = errors.New("missing session manager dependency")
	ErrInvalidProbability = errors.New("default probability must be within [0,1]")
)

var _ i.SessionManager = &SessionManager{}

// session is one caller-held engine plus what its run summary needs.
type session struct {
	info          domain.SessionInfo
	engine        *maze.Engine
	frontierSizes []float64
	archived      bool
	sync.Mutex
}

// SessionManager keeps the maze engines driven through the API, one per session.
type SessionManager struct {
	sessions           map[uuid.UUID]*session
	locker             i.Locker
	runRepo            i.RunRepo
	gridCache          i.GridCache
	tokenizer          i.Tokenizer
	logger             i.Logger
	maxDimension       int
	defaultDeadEndProb float64
	defaultLoopProb    float64
	tokenTTL           time.Duration
	seed               func() int64
	now                func() time.Time
	sync.RWMutex
}

// Config holds the dependencies and limits of a SessionManager.
type Config struct {
	Locker             i.Locker      // Serialises steps of one session
	RunRepo            i.RunRepo     // Archive for finished runs
	GridCache          i.GridCache   // Optional cache of generated grids
	Tokenizer          i.Tokenizer   // Issues driver tokens
	Logger             i.Logger      // Component logger
	MaxDimension       int           // Largest width or height accepted (0 = default)
	DefaultDeadEndProb float64       // Used when a request omits the dead-end probability
	DefaultLoopProb    float64       // Used when a request omits the loop probability
	TokenTTL           time.Duration // Driver token lifetime (0 = default)
	Seed               func() int64  // Seed source for requests without one (nil = math/rand)
}

// NewSessionManager validates the configuration and returns an empty manager.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if c == nil || c.Locker == nil || c.RunRepo == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}
	if !validProb(c.DefaultDeadEndProb) || !validProb(c.DefaultLoopProb) {
		return nil, ErrInvalidProbability
	}

	sm := &SessionManager{
		sessions:           make(map[uuid.UUID]*session),
		locker:             c.Locker,
		runRepo:            c.RunRepo,
		gridCache:          c.GridCache,
		tokenizer:          c.Tokenizer,
		logger:             c.Logger,
		maxDimension:       c.MaxDimension,
		defaultDeadEndProb: c.DefaultDeadEndProb,
		defaultLoopProb:    c.DefaultLoopProb,
		tokenTTL:           c.TokenTTL,
		seed:               c.Seed,
		now:                time.Now,
	}

	if sm.maxDimension <= 0 {
		sm.maxDimension = defaultMaxDimension
	}
	if sm.tokenTTL <= 0 {
		sm.tokenTTL = defaultTokenTTL
	}
	if sm.seed == nil {
		sm.seed = rand.Int63
	}
	return sm, nil
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}

// NewSession generates (or reuses a cached) maze, seeds its flood and issues
// a driver token for it.
func (sm *SessionManager) NewSession(ctx context.Context, params domain.SessionParams) (*domain.SessionInfo, error) {
	if params.Width > sm.maxDimension || params.Height > sm.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, params.Width, params.Height, sm.maxDimension)
	}

	info := domain.SessionInfo{
		Width:       params.Width,
		Height:      params.Height,
		DeadEndProb: sm.defaultDeadEndProb,
		LoopProb:    sm.defaultLoopProb,
		Seed:        params.Seed,
		Algorithm:   params.Algorithm,
		Start:       params.Start,
	}
	if params.DeadEndProb != nil {
		info.DeadEndProb = *params.DeadEndProb
	}
	if params.LoopProb != nil {
		info.LoopProb = *params.LoopProb
	}
	if info.Algorithm == "" {
		info.Algorithm = maze.AlgorithmPrim
	}
	for info.Seed == 0 {
		info.Seed = sm.seed()
	}

	grid, err := sm.grid(info)
	if err != nil {
		return nil, err
	}
	engine, err := maze.NewEngine(grid, info.Start)
	if err != nil {
		return nil, err
	}

	s := &session{engine: engine, frontierSizes: []float64{float64(engine.FrontierSize())}}
	sm.Lock()
	info.ID = sm.newSessionID()
	s.info = info
	sm.sessions[info.ID] = s
	sm.Unlock()

	token, err := sm.tokenizer.Generate(map[string]interface{}{sessionIDClaim: info.ID.String()}, sm.tokenTTL)
	if err != nil {
		sm.forget(info.ID)
		sm.logger.Error(fmt.Sprintf("issuing driver token for session %s: %s", info.ID, err))
		return nil, err
	}
	info.Token = token

	sm.logger.Info(fmt.Sprintf("created session %s: %dx%d %s seed=%d", info.ID, info.Width, info.Height, info.Algorithm, info.Seed))
	return &info, nil
}

// grid returns the cached grid for info or generates and caches it.
func (sm *SessionManager) grid(info domain.SessionInfo) (*maze.WallGrid, error) {
	key := domain.GridKey{
		Width:       info.Width,
		Height:      info.Height,
		DeadEndProb: info.DeadEndProb,
		LoopProb:    info.LoopProb,
		Seed:        info.Seed,
		Algorithm:   info.Algorithm,
	}
	if sm.gridCache != nil {
		if g, ok := sm.gridCache.Get(key); ok {
			return g, nil
		}
	}

	g, err := maze.Generate(info.Width, info.Height, info.DeadEndProb, info.LoopProb, &maze.Options{
		Seed:      info.Seed,
		Algorithm: info.Algorithm,
		Start:     info.Start,
	})
	if err != nil {
		return nil, err
	}

	if sm.gridCache != nil {
		sm.gridCache.Add(key, g)
	}
	return g, nil
}

// newSessionID returns an unused id. The caller holds the write lock.
func (sm *SessionManager) newSessionID() uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := sm.sessions[id]; !ok {
			return id
		}
		id = uuid.New()
	}
}

func (sm *SessionManager) session(id uuid.UUID) (*session, error) {
	sm.RLock()
	defer sm.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (sm *SessionManager) forget(id uuid.UUID) bool {
	sm.Lock()
	defer sm.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	return true
}

// Walls returns the wall snapshot of a session.
func (sm *SessionManager) Walls(id uuid.UUID) (*domain.Walls, error) {
	s, err := sm.session(id)
	if err != nil {
		return nil, err
	}

	s.Lock()
	grid := s.engine.Grid()
	s.Unlock()

	return &domain.Walls{
		Width:      grid.Width(),
		Height:     grid.Height(),
		Vertical:   grid.VerticalWalls(),
		Horizontal: grid.HorizontalWalls(),
	}, nil
}

// Step advances the flood of a session by one layer. Only one driver may
// step a session at a time; a concurrent attempt fails with ErrSessionBusy.
// The step that exhausts the flood archives the run summary.
func (sm *SessionManager) Step(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	s, err := sm.session(id)
	if err != nil {
		return nil, err
	}

	lock, err := sm.locker.TryLock(ctx, fmt.Sprintf(stepLockKeyFmt, id))
	if err != nil {
		if errors.Is(err, i.ErrLockTaken) {
			return nil, ErrSessionBusy
		}
		sm.logger.Error(fmt.Sprintf("obtaining step lock for session %s: %s", id, err))
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(ctx); err != nil {
			sm.logger.Warning(fmt.Sprintf("releasing step lock for session %s: %s", id, err))
		}
	}()

	s.Lock()
	defer s.Unlock()

	n := s.engine.Step()
	frame := &domain.Frame{
		Layer:     s.engine.Layer(),
		Cells:     s.engine.Frontier(),
		Exhausted: n == 0,
	}
	if n > 0 {
		s.frontierSizes = append(s.frontierSizes, float64(n))
		return frame, nil
	}

	if !s.archived {
		if err := sm.archive(ctx, s); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// archive computes the path and saves the run summary. The caller holds s.
func (sm *SessionManager) archive(ctx context.Context, s *session) error {
	path, err := s.engine.Path()
	if err != nil {
		sm.logger.Error(fmt.Sprintf("reconstructing path of session %s: %s", s.info.ID, err))
		return err
	}

	run, err := Summarize(s.info, path, s.frontierSizes, sm.now())
	if err != nil {
		sm.logger.Error(fmt.Sprintf("summarizing session %s: %s", s.info.ID, err))
		return err
	}
	s.archived = true

	if err := sm.runRepo.Save(ctx, run); err != nil {
		sm.logger.Warning(fmt.Sprintf("archiving run of session %s: %s", s.info.ID, err))
		return nil
	}
	sm.logger.Info(fmt.Sprintf("session %s exhausted after %d layers, path length %d", s.info.ID, run.Layers, run.PathLength))
	return nil
}

// Path returns the lit path of an exhausted session, or maze.ErrNotExhausted.
func (sm *SessionManager) Path(id uuid.UUID) (*domain.PathInfo, error) {
	s, err := sm.session(id)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()
	p, err := s.engine.Path()
	if err != nil {
		if errors.Is(err, maze.ErrInvariantViolation) {
			sm.logger.Error(fmt.Sprintf("reconstructing path of session %s: %s", id, err))
		}
		return nil, err
	}

	return &domain.PathInfo{
		Cells:    append([]maze.Cell(nil), p.Cells...),
		Target:   p.Target,
		Distance: p.Distance,
	}, nil
}

// Replay restarts the flood of a session over the same walls.
func (sm *SessionManager) Replay(id uuid.UUID) error {
	s, err := sm.session(id)
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()
	s.engine = s.engine.Replay()
	s.frontierSizes = []float64{float64(s.engine.FrontierSize())}
	sm.logger.Info(fmt.Sprintf("replaying session %s", id))
	return nil
}

// Close forgets a session.
func (sm *SessionManager) Close(id uuid.UUID) error {
	if !sm.forget(id) {
		return ErrSessionNotFound
	}
	sm.logger.Info(fmt.Sprintf("closed session %s", id))
	return nil
}

// Summary loads the archived run summary of a session.
func (sm *SessionManager) Summary(ctx context.Context, id uuid.UUID) (*domain.RunSummary, error) {
	return sm.runRepo.ByID(ctx, id)
}

// Authorize checks that claims carry the session's id.
func (sm *SessionManager) Authorize(id uuid.UUID, claims map[string]interface{}) error {
	claimed, ok := claims[sessionIDClaim].(string)
	if !ok || claimed != id.String() {
		return ErrNotDriver
	}
	return nil
}

// StopAll forgets every session.
func (sm *SessionManager) StopAll() {
	sm.Lock()
	defer sm.Unlock()
	for id := range sm.sessions {
		delete(sm.sessions, id)
	}
}
