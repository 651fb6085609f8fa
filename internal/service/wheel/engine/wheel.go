package engine

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
	"wheel_backend/internal/model"
)

var (
	// ErrWheelBusy жест пришел во время анимации
	ErrWheelBusy = errors.New("wheel is spinning")
	// ErrWheelClosed колесо закрыто
	ErrWheelClosed = errors.New("wheel is closed")
)

// SettleFunc вызывается один раз после остановки спина, вне блокировки колеса
type SettleFunc func(model.SpinOutcome)

// Option опция колеса
type Option func(*Wheel)

// WithClock подменяет источник времени
func WithClock(c Clock) Option {
	return func(w *Wheel) {
		w.clock = c
	}
}

// WithRand подменяет генератор цветов и призов
func WithRand(rng *rand.Rand) Option {
	return func(w *Wheel) {
		w.rng = rng
	}
}

// WithSettle обработчик остановки
func WithSettle(fn SettleFunc) Option {
	return func(w *Wheel) {
		w.onSettle = fn
	}
}

// spin параметры текущего вращения
type spin struct {
	startedAt time.Time
	velocity  float64 // Скорость жеста
	decay     Decay
	decayFor  time.Duration
	snap      Tween
	snapAt    time.Time
	segments  int
}

// Wheel колесо призов: разметка, угол и машина состояний Idle -> Spinning -> Settling -> Idle.
// Новый жест принимается только в Idle
type Wheel struct {
	mu sync.Mutex

	id       string
	cfg      Config
	layout   Layout
	clock    Clock
	rng      *rand.Rand
	onSettle SettleFunc
	hub      *hub

	text     string
	segments int
	slices   []model.Slice
	version  int

	phase    model.WheelPhase
	angle    float64
	finished bool
	winner   *model.Slice
	spin     *spin
	seq      uint64
	closed   bool
}

// NewWheel создает колесо с cfg.DefaultSegments секторами
func NewWheel(id string, cfg Config, opts ...Option) (*Wheel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Wheel{
		id:       id,
		cfg:      cfg,
		layout:   cfg.Layout(),
		clock:    SystemClock{},
		hub:      newHub(),
		segments: cfg.DefaultSegments,
		phase:    model.PhaseIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = newRand()
	}

	if err := w.regenerate(cfg.DefaultSegments); err != nil {
		return nil, err
	}
	w.text = strconv.Itoa(cfg.DefaultSegments)

	return w, nil
}

func (w *Wheel) ID() string {
	return w.id
}

// regenerate пересоздает секторы целиком, под блокировкой
func (w *Wheel) regenerate(segments int) error {
	slices, err := w.layout.Generate(segments, w.rng)
	if err != nil {
		return err
	}
	w.segments = segments
	w.slices = slices
	w.version++
	return nil
}

func (w *Wheel) angleBySegment() float64 {
	return fullTurn / float64(w.segments)
}

// SetSegmentsInput принимает текст поля ввода. Текст запоминается всегда,
// секторы пересоздаются только для валидного нового значения в Idle
func (w *Wheel) SetSegmentsInput(text string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false, ErrWheelClosed
	}
	w.text = text

	n, ok := ParseSegments(text, w.cfg.MaxSegments)
	if !ok || n == w.segments || w.phase != model.PhaseIdle {
		return false, nil
	}
	if err := w.regenerate(n); err != nil {
		return false, err
	}
	w.publish()

	return true, nil
}

// Release отпускание жеста со скоростью по вертикали.
// Вне Idle жест игнорируется и возвращается ErrWheelBusy
func (w *Wheel) Release(velocityY float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWheelClosed
	}
	if w.phase != model.PhaseIdle {
		return ErrWheelBusy
	}

	now := w.clock.Now()
	decay := Decay{
		From:         w.angle,
		Velocity:     velocityY / w.cfg.VelocityScale,
		Deceleration: w.cfg.Deceleration,
	}
	w.spin = &spin{
		startedAt: now,
		velocity:  velocityY,
		decay:     decay,
		decayFor:  decay.Duration(w.cfg.FrameInterval, w.cfg.RestDelta),
		segments:  w.segments,
	}
	w.phase = model.PhaseSpinning
	w.finished = false
	w.publish()

	return nil
}

// Duration плановая длительность текущего спина, 0 в Idle
func (w *Wheel) Duration() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.spin == nil {
		return 0
	}
	return w.spin.decayFor + w.cfg.SnapDuration
}

// Tick продвигает анимацию к моменту now и возвращает кадр
func (w *Wheel) Tick(now time.Time) model.Frame {
	w.mu.Lock()

	var outcome *model.SpinOutcome
	switch w.phase {
	case model.PhaseSpinning:
		if w.advanceDecay(now) {
			outcome = w.advanceSnap(now)
		}
	case model.PhaseSettling:
		outcome = w.advanceSnap(now)
	}

	frame := w.frame(outcome)
	if w.phase != model.PhaseIdle || outcome != nil {
		w.hub.publish(frame)
	}
	w.mu.Unlock()

	w.notify(outcome)
	return frame
}

// Settle доводит текущий спин до конца сразу. Победитель считается от остановленного угла
func (w *Wheel) Settle() model.Frame {
	w.mu.Lock()

	var outcome *model.SpinOutcome
	if w.spin != nil {
		end := w.spin.startedAt.Add(w.spin.decayFor)
		if w.phase == model.PhaseSpinning {
			w.advanceDecay(end)
		}
		outcome = w.advanceSnap(w.spin.snapAt.Add(w.cfg.SnapDuration))
	}

	frame := w.frame(outcome)
	if outcome != nil {
		w.hub.publish(frame)
	}
	w.mu.Unlock()

	w.notify(outcome)
	return frame
}

// advanceDecay возвращает true, если затухание закончилось и началась доводка
func (w *Wheel) advanceDecay(now time.Time) bool {
	s := w.spin
	elapsed := now.Sub(s.startedAt)
	if elapsed < s.decayFor {
		w.angle = s.decay.At(elapsed)
		return false
	}

	w.angle = NormalizeAngle(s.decay.At(s.decayFor))
	s.snap = Tween{
		From:     w.angle,
		To:       Snap(w.angle, fullTurn/float64(s.segments)),
		Duration: w.cfg.SnapDuration,
	}
	s.snapAt = s.startedAt.Add(s.decayFor)
	w.phase = model.PhaseSettling
	return true
}

// advanceSnap возвращает итог, если доводка закончилась
func (w *Wheel) advanceSnap(now time.Time) *model.SpinOutcome {
	s := w.spin
	elapsed := now.Sub(s.snapAt)
	if elapsed < s.snap.Duration {
		w.angle = s.snap.At(elapsed)
		return nil
	}

	w.angle = s.snap.To
	winner := ResolveWinner(w.angle, w.segments, w.slices)
	w.winner = winner
	w.finished = true
	w.phase = model.PhaseIdle
	w.spin = nil

	outcome := &model.SpinOutcome{
		WheelID:    w.id,
		Segments:   w.segments,
		FinalAngle: w.angle,
		Velocity:   s.velocity,
		StartedAt:  s.startedAt,
		SettledAt:  s.snapAt.Add(s.snap.Duration),
	}
	if winner != nil {
		outcome.Winner = *winner
	}
	return outcome
}

func (w *Wheel) notify(outcome *model.SpinOutcome) {
	if outcome != nil && w.onSettle != nil {
		w.onSettle(*outcome)
	}
}

// frame под блокировкой
func (w *Wheel) frame(outcome *model.SpinOutcome) model.Frame {
	w.seq++
	f := model.Frame{
		WheelID:  w.id,
		Seq:      w.seq,
		Layout:   w.version,
		Angle:    w.angle,
		KnobTilt: KnobTilt(w.angle, w.angleBySegment()/2, w.angleBySegment()),
		Phase:    w.phase,
		At:       w.clock.Now(),
	}
	if outcome != nil && w.winner != nil {
		winner := *w.winner
		f.Winner = &winner
	}
	return f
}

func (w *Wheel) publish() {
	w.hub.publish(w.frame(nil))
}

// Subscribe подписка на кадры. cancel обязательно вызвать
func (w *Wheel) Subscribe(buffer int) (<-chan model.Frame, func()) {
	return w.hub.subscribe(buffer)
}

// Subscribers количество подписчиков
func (w *Wheel) Subscribers() int {
	return w.hub.count()
}

// Snapshot копия состояния
func (w *Wheel) Snapshot() model.WheelState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := model.WheelState{
		ID:             w.id,
		InputText:      w.text,
		Segments:       w.segments,
		Layout:         w.version,
		AngleBySegment: w.angleBySegment(),
		AngleOffset:    w.angleBySegment() / 2,
		CurrentAngle:   w.angle,
		Phase:          w.phase,
		SpinEnabled:    w.phase == model.PhaseIdle,
		Finished:       w.finished,
		Slices:         w.slices,
	}
	if w.winner != nil {
		winner := *w.winner
		state.Winner = &winner
	}
	return state
}

// Close отписывает всех и запрещает новые жесты. Идущий спин не прерывается
func (w *Wheel) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.hub.close()
}
