package wheel

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
	"wheel_backend/internal/config"
	"wheel_backend/internal/config/env"
	"wheel_backend/internal/middleware"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository/wheel_stats_repo"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/wheel/engine"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testConfig struct {
	config.WheelConfig
	workers       int
	settleTimeout time.Duration
}

func (c testConfig) FrameInterval() time.Duration { return 2 * time.Millisecond }
func (c testConfig) SnapDuration() time.Duration  { return 20 * time.Millisecond }
func (c testConfig) SettleTimeout() time.Duration { return c.settleTimeout }
func (c testConfig) AnimationWorkers() int        { return c.workers }

// passTx выполняет функцию без транзакции
type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	mu       sync.Mutex
	balances map[int]int64
	err      error
}

func (r *fakeUserRepo) CreateUser(context.Context, *model.User) (int, error) {
	return 0, errors.New("not implemented")
}

func (r *fakeUserRepo) GetUserByLogin(context.Context, string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) balance(id int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[id]
}

func (r *fakeUserRepo) AddBalance(_ context.Context, id int, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.balances[id] += amount
	return r.balances[id], nil
}

type fakeWheelRepo struct {
	mu        sync.Mutex
	spins     []model.SpinRecord
	lastLimit uint64
}

func (r *fakeWheelRepo) InsertSpin(_ context.Context, spin *model.SpinRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spin.ID = int64(len(r.spins) + 1)
	r.spins = append(r.spins, *spin)
	return spin.ID, nil
}

func (r *fakeWheelRepo) ListSpins(_ context.Context, userID int, limit uint64) ([]model.SpinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var out []model.SpinRecord
	for i := len(r.spins) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if r.spins[i].UserID == userID {
			out = append(out, r.spins[i])
		}
	}
	return out, nil
}

func (r *fakeWheelRepo) forUser(userID int) []model.SpinRecord {
	spins, _ := r.ListSpins(context.Background(), userID, 1000)
	return spins
}

type fixture struct {
	serv  *serv
	users *fakeUserRepo
	spins *fakeWheelRepo
	stats *wheel_stats_repo.StatsRepo
}

func newFixture(t *testing.T, cfg testConfig, opts ...Option) *fixture {
	t.Helper()
	if cfg.WheelConfig == nil {
		cfg.WheelConfig = env.NewDefaultWheelConfig()
	}
	if cfg.workers == 0 {
		cfg.workers = 8
	}
	if cfg.settleTimeout == 0 {
		cfg.settleTimeout = time.Minute
	}

	f := &fixture{
		users: &fakeUserRepo{balances: map[int]int64{}},
		spins: &fakeWheelRepo{},
		stats: wheel_stats_repo.NewWheelStatsRepository(10),
	}
	s, err := NewWheelService(cfg, passTx{}, f.users, f.spins, f.stats, zap.NewNop(), opts...)
	require.NoError(t, err)
	f.serv = s.(*serv)
	t.Cleanup(f.serv.Close)
	return f
}

func assertOnGrid(t *testing.T, angle, step float64) {
	t.Helper()
	steps := angle / step
	assert.InDelta(t, math.Round(steps), steps, 1e-9, "angle=%v", angle)
}

func userCtx(id int) context.Context {
	return middleware.WithUserID(context.Background(), id)
}

func TestServiceUnauthorized(t *testing.T) {
	f := newFixture(t, testConfig{})

	_, err := f.serv.State(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, _, err = f.serv.Fling(context.Background(), model.Fling{VelocityY: 100})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.serv.History(context.Background(), 10)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestServiceStateIsPerPlayer(t *testing.T) {
	f := newFixture(t, testConfig{})

	a, err := f.serv.State(userCtx(1))
	require.NoError(t, err)
	assert.Equal(t, 12, a.Segments)
	assert.Len(t, a.Slices, 12)
	assert.NotEmpty(t, a.ID)

	again, err := f.serv.State(userCtx(1))
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	b, err := f.serv.State(userCtx(2))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestServiceSetSegments(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := userCtx(1)

	applied, state, err := f.serv.SetSegments(ctx, "5")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 5, state.Segments)
	assert.Len(t, state.Slices, 5)

	applied, state, err = f.serv.SetSegments(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "abc", state.InputText)
	assert.Equal(t, 5, state.Segments)
}

func TestServiceFlingSettlesAndCredits(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := userCtx(1)

	accepted, state, err := f.serv.Fling(ctx, model.Fling{VelocityX: 40, VelocityY: 0})
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.False(t, state.SpinEnabled)

	require.Eventually(t, func() bool {
		return len(f.spins.forUser(1)) == 1
	}, 2*time.Second, 5*time.Millisecond)

	spin := f.spins.forUser(1)[0]
	state, err = f.serv.State(ctx)
	require.NoError(t, err)
	assert.True(t, state.SpinEnabled)
	assert.True(t, state.Finished)
	require.NotNil(t, state.Winner)
	assert.Equal(t, state.Winner.Value, spin.Value)
	assert.Equal(t, state.Winner.Index, spin.SliceIndex)
	assert.Equal(t, state.ID, spin.WheelID)
	assert.Equal(t, int64(spin.Value), spin.Balance)

	assert.Equal(t, int64(spin.Value), f.users.balance(1))
	assert.Equal(t, 1, f.serv.Stats().TotalSpins)
}

func TestServiceBusyFlingIgnored(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := newFixture(t, testConfig{}, WithClock(clock))
	ctx := userCtx(1)

	accepted, _, err := f.serv.Fling(ctx, model.Fling{VelocityY: 2500})
	require.NoError(t, err)
	require.True(t, accepted)

	accepted, state, err := f.serv.Fling(ctx, model.Fling{VelocityY: -9000})
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.False(t, state.SpinEnabled)

	// Close доводит идущий спин
	f.serv.Close()
	spins := f.spins.forUser(1)
	require.Len(t, spins, 1)
	assert.Equal(t, 2500.0, spins[0].Velocity)
	assertOnGrid(t, spins[0].FinalAngle, 30)
}

func TestServiceWatchdogForcesSettle(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := newFixture(t, testConfig{settleTimeout: 30 * time.Millisecond}, WithClock(clock))

	accepted, _, err := f.serv.Fling(userCtx(1), model.Fling{VelocityY: 0})
	require.NoError(t, err)
	require.True(t, accepted)

	require.Eventually(t, func() bool {
		return len(f.spins.forUser(1)) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestServicePoolSaturationSettlesInline(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := newFixture(t, testConfig{workers: 1}, WithClock(clock))

	accepted, _, err := f.serv.Fling(userCtx(1), model.Fling{VelocityY: 2500})
	require.NoError(t, err)
	require.True(t, accepted)

	accepted, state, err := f.serv.Fling(userCtx(2), model.Fling{VelocityY: 2500})
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.True(t, state.Finished)
	assertOnGrid(t, state.CurrentAngle, 30)
	assert.Len(t, f.spins.forUser(2), 1)
	assert.Empty(t, f.spins.forUser(1))
}

func TestServiceStoreFailure(t *testing.T) {
	f := newFixture(t, testConfig{})
	f.users.err = errors.New("db down")

	accepted, _, err := f.serv.Fling(userCtx(1), model.Fling{VelocityY: 0})
	require.NoError(t, err)
	require.True(t, accepted)

	require.Eventually(t, func() bool {
		s, err := f.serv.State(userCtx(1))
		return err == nil && s.Finished
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, f.spins.forUser(1))
	assert.Zero(t, f.serv.Stats().TotalSpins)
}

func TestServiceHistoryLimit(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := userCtx(3)
	for i := 0; i < 3; i++ {
		_, err := f.spins.InsertSpin(ctx, &model.SpinRecord{UserID: 3, Value: 200 * (i + 1)})
		require.NoError(t, err)
	}

	spins, err := f.serv.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, spins, 2)
	assert.Equal(t, 600, spins[0].Value)

	_, err = f.serv.History(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(maxHistoryLimit), f.spins.lastLimit)

	_, err = f.serv.History(ctx, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(maxHistoryLimit), f.spins.lastLimit)
}

func TestServiceSubscribe(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := userCtx(1)

	frames, cancel, err := f.serv.Subscribe(ctx)
	require.NoError(t, err)

	_, _, err = f.serv.Fling(ctx, model.Fling{VelocityY: 0})
	require.NoError(t, err)

	var last model.Frame
	timeout := time.After(2 * time.Second)
	for last.Winner == nil {
		select {
		case fr := <-frames:
			last = fr
		case <-timeout:
			t.Fatal("no settled frame")
		}
	}
	assert.Equal(t, model.PhaseIdle, last.Phase)

	cancel()
	cancel()
	_, open := <-frames
	for open {
		_, open = <-frames
	}
}

func TestServiceClose(t *testing.T) {
	f := newFixture(t, testConfig{})
	_, err := f.serv.State(userCtx(1))
	require.NoError(t, err)

	f.serv.Close()
	_, err = f.serv.State(userCtx(1))
	assert.ErrorIs(t, err, engine.ErrWheelClosed)
}

func (s *serv) loaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wheels)
}

func TestServiceSweepEvictsIdleWheels(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := newFixture(t, testConfig{}, WithClock(clock))
	ttl := f.serv.cfg.IdleTTL()

	first := map[int]string{}
	for id := 1; id <= 3; id++ {
		st, err := f.serv.State(userCtx(id))
		require.NoError(t, err)
		first[id] = st.ID
	}
	require.Equal(t, 3, f.serv.loaded())

	assert.Zero(t, f.serv.sweep(clock.Advance(ttl/2)))
	assert.Equal(t, 3, f.serv.loaded())

	// Обращение продлевает жизнь колеса
	_, err := f.serv.State(userCtx(2))
	require.NoError(t, err)

	assert.Equal(t, 2, f.serv.sweep(clock.Advance(ttl/2)))
	assert.Equal(t, 1, f.serv.loaded())

	assert.Equal(t, 1, f.serv.sweep(clock.Advance(ttl)))
	assert.Zero(t, f.serv.loaded())

	// Выгруженный игрок получает новое колесо
	st, err := f.serv.State(userCtx(1))
	require.NoError(t, err)
	assert.NotEqual(t, first[1], st.ID)
	assert.Equal(t, 1, f.serv.loaded())
}

func TestServiceSweepKeepsBusyWheels(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := newFixture(t, testConfig{}, WithClock(clock))
	ttl := f.serv.cfg.IdleTTL()

	_, cancel, err := f.serv.Subscribe(userCtx(1))
	require.NoError(t, err)

	accepted, _, err := f.serv.Fling(userCtx(2), model.Fling{VelocityY: 2500})
	require.NoError(t, err)
	require.True(t, accepted)

	_, err = f.serv.State(userCtx(3))
	require.NoError(t, err)

	// Часы не двигаются, чтобы спин не закончился
	later := clock.Now().Add(2 * ttl)

	// Подписанное и крутящееся колеса остаются
	assert.Equal(t, 1, f.serv.sweep(later))
	assert.Equal(t, 2, f.serv.loaded())

	cancel()
	assert.Equal(t, 1, f.serv.sweep(later))
	assert.Equal(t, 1, f.serv.loaded())

	st, err := f.serv.State(userCtx(2))
	require.NoError(t, err)
	assert.Equal(t, model.PhaseSpinning, st.Phase)
}
