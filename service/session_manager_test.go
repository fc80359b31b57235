package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	locker *fakeLocker
	key    string
}

func (l *fakeLock) Unlock(context.Context) error {
	l.locker.Lock()
	defer l.locker.Unlock()
	delete(l.locker.held, l.key)
	return nil
}

type fakeLocker struct {
	held map[string]bool
	sync.Mutex
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) TryLock(_ context.Context, key string) (i.Lock, error) {
	f.Lock()
	defer f.Unlock()
	if f.held[key] {
		return nil, i.ErrLockTaken
	}
	f.held[key] = true
	return &fakeLock{locker: f, key: key}, nil
}

type fakeRunRepo struct {
	runs  map[uuid.UUID]*domain.RunSummary
	saves int
	err   error
}

func (f *fakeRunRepo) Save(_ context.Context, run *domain.RunSummary) error {
	f.saves++
	if f.err != nil {
		return f.err
	}
	f.runs[run.ID] = run
	return nil
}

func (f *fakeRunRepo) ByID(_ context.Context, id uuid.UUID) (*domain.RunSummary, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, i.ErrRunNotFound
	}
	return run, nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	return "token-" + claims[sessionIDClaim].(string), nil
}

func (fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

type fakeLogger struct {
	errors []string
}

func (f *fakeLogger) Info(string)      {}
func (f *fakeLogger) Warning(string)   {}
func (f *fakeLogger) Error(msg string) { f.errors = append(f.errors, msg) }

type fakeGridCache struct {
	grids map[domain.GridKey]*maze.WallGrid
	hits  int
}

func (f *fakeGridCache) Get(key domain.GridKey) (*maze.WallGrid, bool) {
	g, ok := f.grids[key]
	if ok {
		f.hits++
	}
	return g, ok
}

func (f *fakeGridCache) Add(key domain.GridKey, g *maze.WallGrid) {
	f.grids[key] = g
}

type fixture struct {
	sm     *SessionManager
	locker *fakeLocker
	repo   *fakeRunRepo
	cache  *fakeGridCache
	logger *fakeLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		locker: newFakeLocker(),
		repo:   &fakeRunRepo{runs: make(map[uuid.UUID]*domain.RunSummary)},
		cache:  &fakeGridCache{grids: make(map[domain.GridKey]*maze.WallGrid)},
		logger: &fakeLogger{},
	}
	sm, err := NewSessionManager(&Config{
		Locker:             f.locker,
		RunRepo:            f.repo,
		GridCache:          f.cache,
		Tokenizer:          fakeTokenizer{},
		Logger:             f.logger,
		MaxDimension:       32,
		DefaultDeadEndProb: 0.4,
		DefaultLoopProb:    0.7,
	})
	require.NoError(t, err)
	f.sm = sm
	return f
}

func prob(p float64) *float64 { return &p }

func TestNewSessionManager(t *testing.T) {
	t.Run("missing dependency", func(t *testing.T) {
		_, err := NewSessionManager(&Config{Locker: newFakeLocker()})
		assert.ErrorIs(t, err, ErrMissingDependency)

		_, err = NewSessionManager(nil)
		assert.ErrorIs(t, err, ErrMissingDependency)
	})

	t.Run("invalid default probability", func(t *testing.T) {
		_, err := NewSessionManager(&Config{
			Locker:          newFakeLocker(),
			RunRepo:         &fakeRunRepo{},
			Tokenizer:       fakeTokenizer{},
			Logger:          &fakeLogger{},
			DefaultLoopProb: 2,
		})
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})
}

func TestNewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("fills defaults", func(t *testing.T) {
		f := newFixture(t)
		seeds := []int64{0, 42}
		f.sm.seed = func() int64 {
			s := seeds[0]
			seeds = seeds[1:]
			return s
		}

		info, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 8, Height: 6})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, info.ID)
		assert.Equal(t, 0.4, info.DeadEndProb)
		assert.Equal(t, 0.7, info.LoopProb)
		assert.Equal(t, int64(42), info.Seed)
		assert.Equal(t, maze.AlgorithmPrim, info.Algorithm)
		assert.Equal(t, "token-"+info.ID.String(), info.Token)
	})

	t.Run("explicit parameters", func(t *testing.T) {
		f := newFixture(t)
		info, err := f.sm.NewSession(ctx, domain.SessionParams{
			Width:       5,
			Height:      5,
			DeadEndProb: prob(0),
			LoopProb:    prob(0),
			Seed:        9,
			Algorithm:   maze.AlgorithmWilson,
			Start:       maze.Cell{Col: 2, Row: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, info.DeadEndProb)
		assert.Equal(t, int64(9), info.Seed)
		assert.Equal(t, maze.Cell{Col: 2, Row: 2}, info.Start)
	})

	t.Run("too large", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 33, Height: 2})
		assert.ErrorIs(t, err, ErrDimensionTooLarge)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 0, Height: 2})
		assert.ErrorIs(t, err, maze.ErrConfiguration)

		_, err = f.sm.NewSession(ctx, domain.SessionParams{Width: 3, Height: 3, LoopProb: prob(1.5)})
		assert.ErrorIs(t, err, maze.ErrConfiguration)
	})

	t.Run("reuses cached grids", func(t *testing.T) {
		f := newFixture(t)
		params := domain.SessionParams{Width: 10, Height: 10, Seed: 5}
		a, err := f.sm.NewSession(ctx, params)
		require.NoError(t, err)
		b, err := f.sm.NewSession(ctx, params)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, 1, f.cache.hits)

		wa, err := f.sm.Walls(a.ID)
		require.NoError(t, err)
		wb, err := f.sm.Walls(b.ID)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	})
}

func TestStepToExhaustion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	info, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 9, Height: 7, Seed: 3})
	require.NoError(t, err)

	_, err = f.sm.Path(info.ID)
	assert.ErrorIs(t, err, maze.ErrNotExhausted)

	lit := 1
	var last *domain.Frame
	for step := 0; step <= 9*7; step++ {
		frame, err := f.sm.Step(ctx, info.ID)
		require.NoError(t, err)
		last = frame
		if frame.Exhausted {
			break
		}
		assert.Equal(t, step+1, frame.Layer)
		lit += len(frame.Cells)
	}
	require.True(t, last.Exhausted)
	assert.Empty(t, last.Cells)
	assert.Equal(t, 9*7, lit)

	path, err := f.sm.Path(info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.Start, path.Cells[0])
	assert.Equal(t, path.Distance+1, len(path.Cells))

	run, err := f.sm.Summary(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, len(path.Cells), run.PathLength)
	assert.Equal(t, path.Distance, run.Layers)
	assert.Equal(t, path.Target, run.Target)
	assert.Equal(t, info.Seed, run.Seed)

	frame, err := f.sm.Step(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, frame.Exhausted)
	assert.Equal(t, 1, f.repo.saves, "a run is archived once")
}

func TestStepArchiveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.repo.err = errors.New("mongo down")

	info, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 3, Height: 3, Seed: 1})
	require.NoError(t, err)
	for {
		frame, err := f.sm.Step(ctx, info.ID)
		require.NoError(t, err)
		if frame.Exhausted {
			break
		}
	}
	_, err = f.sm.Summary(ctx, info.ID)
	assert.ErrorIs(t, err, i.ErrRunNotFound)
}

func TestStepBusy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	info, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 4, Height: 4, Seed: 1})
	require.NoError(t, err)

	held, err := f.locker.TryLock(ctx, "lightning-maze:session:"+info.ID.String()+":step")
	require.NoError(t, err)

	_, err = f.sm.Step(ctx, info.ID)
	assert.ErrorIs(t, err, ErrSessionBusy)

	require.NoError(t, held.Unlock(ctx))
	_, err = f.sm.Step(ctx, info.ID)
	assert.NoError(t, err)
}

func TestReplayAndClose(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	info, err := f.sm.NewSession(ctx, domain.SessionParams{Width: 4, Height: 4, Seed: 8})
	require.NoError(t, err)

	first, err := f.sm.Step(ctx, info.ID)
	require.NoError(t, err)
	require.NoError(t, f.sm.Replay(info.ID))
	again, err := f.sm.Step(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	require.NoError(t, f.sm.Close(info.ID))
	_, err = f.sm.Walls(info.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.sm.Step(ctx, info.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.sm.Close(info.ID), ErrSessionNotFound)
	assert.ErrorIs(t, f.sm.Replay(info.ID), ErrSessionNotFound)
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	assert.NoError(t, f.sm.Authorize(id, map[string]interface{}{"sessionID": id.String()}))
	assert.ErrorIs(t, f.sm.Authorize(id, map[string]interface{}{"sessionID": uuid.NewString()}), ErrNotDriver)
	assert.ErrorIs(t, f.sm.Authorize(id, map[string]interface{}{}), ErrNotDriver)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info := domain.SessionInfo{ID: uuid.New(), Width: 4, Height: 1, Seed: 3, Algorithm: maze.AlgorithmPrim}
	path := &maze.Path{
		Cells:    []maze.Cell{{Col: 0}, {Col: 1}, {Col: 2}, {Col: 3}},
		Target:   maze.Cell{Col: 3},
		Distance: 3,
	}

	run, err := Summarize(info, path, []float64{1, 2, 3, 4}, now)
	require.NoError(t, err)
	assert.Equal(t, info.ID, run.ID)
	assert.Equal(t, 4, run.PathLength)
	assert.Equal(t, 3, run.Layers)
	assert.InDelta(t, 2.5, run.MeanFrontier, 1e-9)
	assert.InDelta(t, 2.5, run.MedianFrontier, 1e-9)
	assert.Equal(t, 4.0, run.MaxFrontier)
	assert.GreaterOrEqual(t, run.P90Frontier, 3.0)
	assert.LessOrEqual(t, run.P90Frontier, 4.0)
	assert.Equal(t, now, run.CreatedAt)

	_, err = Summarize(info, path, nil, now)
	assert.Error(t, err)
}
