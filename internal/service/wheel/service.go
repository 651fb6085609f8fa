package wheel

import (
	"context"
	"fmt"
	"sync"
	"time"
	"wheel_backend/internal/config"
	"wheel_backend/internal/metrics"
	"wheel_backend/internal/middleware"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/wheel/engine"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const (
	maxHistoryLimit = 100
	// maxSweepInterval как часто ищутся простаивающие колеса при большом idle_ttl
	maxSweepInterval = time.Minute
)

// session колесо игрока и время последнего обращения к нему
type session struct {
	wheel    *engine.Wheel
	lastSeen time.Time
}

type serv struct {
	cfg       config.WheelConfig
	engineCfg engine.Config
	clock     engine.Clock

	txManager trm.Manager
	userRepo  repository.UserRepository
	wheelRepo repository.WheelRepository
	statsRepo repository.WheelStatsRepository

	pool *ants.Pool
	log  *zap.Logger

	mu     sync.Mutex
	wheels map[int]*session // Колесо игрока по его id
	closed bool

	done    chan struct{}
	drivers sync.WaitGroup
}

// Option опция сервиса
type Option func(*serv)

// WithClock источник времени для анимации
func WithClock(c engine.Clock) Option {
	return func(s *serv) {
		s.clock = c
	}
}

// NewWheelService колеса игроков, анимация крутится в пуле ants
func NewWheelService(
	cfg config.WheelConfig,
	txManager trm.Manager,
	userRepo repository.UserRepository,
	wheelRepo repository.WheelRepository,
	statsRepo repository.WheelStatsRepository,
	log *zap.Logger,
	opts ...Option,
) (service.WheelService, error) {
	engineCfg := EngineConfig(cfg)
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("wheel engine config: %w", err)
	}

	pool, err := ants.NewPool(cfg.AnimationWorkers(), ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("animation pool: %w", err)
	}

	s := &serv{
		cfg:       cfg,
		engineCfg: engineCfg,
		clock:     engine.SystemClock{},
		txManager: txManager,
		userRepo:  userRepo,
		wheelRepo: wheelRepo,
		statsRepo: statsRepo,
		pool:      pool,
		log:       log.Named("wheel"),
		wheels:    make(map[int]*session),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.drivers.Add(1)
	go s.sweepLoop()

	return s, nil
}

// EngineConfig параметры движка из конфига приложения
func EngineConfig(cfg config.WheelConfig) engine.Config {
	return engine.Config{
		DisplayWidth:    cfg.DisplayWidth(),
		InnerRadius:     cfg.InnerRadius(),
		PadAngle:        cfg.PadAngle(),
		PrizeStep:       cfg.PrizeStep(),
		PrizeSteps:      cfg.PrizeSteps(),
		DefaultSegments: cfg.DefaultSegments(),
		MaxSegments:     cfg.MaxSegments(),
		Deceleration:    cfg.Deceleration(),
		VelocityScale:   cfg.VelocityScale(),
		FrameInterval:   cfg.FrameInterval(),
		RestDelta:       cfg.RestDelta(),
		SnapDuration:    cfg.SnapDuration(),
	}
}

// wheelFor колесо игрока из контекста, создается при первом обращении
func (s *serv) wheelFor(ctx context.Context) (*engine.Wheel, int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, 0, service.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, 0, engine.ErrWheelClosed
	}
	now := s.clock.Now()
	if sess, ok := s.wheels[userID]; ok {
		sess.lastSeen = now
		return sess.wheel, userID, nil
	}

	w, err := engine.NewWheel(uuid.NewString(), s.engineCfg,
		engine.WithClock(s.clock),
		engine.WithSettle(func(o model.SpinOutcome) {
			s.settle(userID, o)
		}),
	)
	if err != nil {
		return nil, 0, err
	}
	s.wheels[userID] = &session{wheel: w, lastSeen: now}
	metrics.SetActiveWheels(len(s.wheels))
	s.log.Debug("wheel created", zap.Int("user_id", userID), zap.String("wheel_id", w.ID()))

	return w, userID, nil
}

func (s *serv) State(ctx context.Context) (*model.WheelState, error) {
	w, _, err := s.wheelFor(ctx)
	if err != nil {
		return nil, err
	}
	state := w.Snapshot()
	return &state, nil
}

func (s *serv) SetSegments(ctx context.Context, text string) (bool, *model.WheelState, error) {
	w, userID, err := s.wheelFor(ctx)
	if err != nil {
		return false, nil, err
	}

	applied, err := w.SetSegmentsInput(text)
	if err != nil {
		return false, nil, err
	}
	state := w.Snapshot()
	if applied {
		s.log.Debug("segments changed", zap.Int("user_id", userID), zap.Int("segments", state.Segments))
	}
	return applied, &state, nil
}

func (s *serv) Subscribe(ctx context.Context) (<-chan model.Frame, func(), error) {
	w, userID, err := s.wheelFor(ctx)
	if err != nil {
		return nil, nil, err
	}

	frames, cancel := w.Subscribe(s.cfg.FrameBuffer())
	metrics.SubscriberOpened()

	var once sync.Once
	return frames, func() {
		once.Do(func() {
			cancel()
			metrics.SubscriberClosed()
			s.touch(userID)
		})
	}, nil
}

// History последние спины игрока, limit ограничен сверху
func (s *serv) History(ctx context.Context, limit uint64) ([]model.SpinRecord, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}
	if limit == 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	spins, err := s.wheelRepo.ListSpins(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list spins: %w", err)
	}
	return spins, nil
}

func (s *serv) Stats() model.WheelStats {
	return s.statsRepo.Stats()
}

// Close останавливает анимации (идущие спины доводятся и начисляются) и закрывает колеса
func (s *serv) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.drivers.Wait()
	s.pool.Release()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.wheels {
		sess.wheel.Close()
		delete(s.wheels, id)
	}
	metrics.SetActiveWheels(0)
}

// touch продлевает жизнь колеса игрока
func (s *serv) touch(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.wheels[userID]; ok {
		sess.lastSeen = s.clock.Now()
	}
}

func (s *serv) sweepLoop() {
	defer s.drivers.Done()

	interval := s.cfg.IdleTTL() / 2
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(s.clock.Now())
		case <-s.done:
			return
		}
	}
}

// sweep выгружает колеса в Idle без подписчиков, к которым не обращались idle_ttl.
// Возвращает количество выгруженных
func (s *serv) sweep(now time.Time) int {
	ttl := s.cfg.IdleTTL()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.wheels {
		if now.Sub(sess.lastSeen) < ttl {
			continue
		}
		if sess.wheel.Subscribers() > 0 || sess.wheel.Snapshot().Phase != model.PhaseIdle {
			continue
		}
		sess.wheel.Close()
		delete(s.wheels, userID)
		evicted++
		s.log.Debug("idle wheel evicted", zap.Int("user_id", userID), zap.String("wheel_id", sess.wheel.ID()))
	}
	if evicted > 0 {
		metrics.SetActiveWheels(len(s.wheels))
	}
	return evicted
}
