package wheel

import (
	"context"
	"errors"
	"time"
	"wheel_backend/internal/metrics"
	"wheel_backend/internal/model"
	"wheel_backend/internal/service/wheel/engine"

	"go.uber.org/zap"
)

// Fling отпускание жеста. Учитывается только вертикальная скорость.
// Жест во время спина молча игнорируется: accepted=false без ошибки
func (s *serv) Fling(ctx context.Context, fling model.Fling) (bool, *model.WheelState, error) {
	w, userID, err := s.wheelFor(ctx)
	if err != nil {
		return false, nil, err
	}

	err = w.Release(fling.VelocityY)
	if errors.Is(err, engine.ErrWheelBusy) {
		metrics.ObserveFling(metrics.FlingBusy)
		state := w.Snapshot()
		return false, &state, nil
	}
	if err != nil {
		return false, nil, err
	}

	metrics.ObserveFling(metrics.FlingAccepted)
	s.log.Debug("fling accepted",
		zap.Int("user_id", userID),
		zap.Float64("velocity_y", fling.VelocityY),
		zap.Duration("planned", w.Duration()),
	)
	s.drive(w)

	state := w.Snapshot()
	return true, &state, nil
}

// drive отдает анимацию в пул. Если пул переполнен или сервис закрыт, спин доводится сразу
func (s *serv) drive(w *engine.Wheel) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		w.Settle()
		return
	}
	s.drivers.Add(1)
	s.mu.Unlock()

	err := s.pool.Submit(func() {
		defer s.drivers.Done()
		s.animate(w)
	})
	if err != nil {
		s.drivers.Done()
		metrics.ObserveForcedSettle()
		s.log.Warn("animation pool unavailable, settling inline", zap.String("wheel_id", w.ID()), zap.Error(err))
		w.Settle()
	}
}

// animate тикает колесо каждый кадр до остановки.
// Сторож доводит спин, если он идет дольше плана на settle_timeout
func (s *serv) animate(w *engine.Wheel) {
	ticker := time.NewTicker(s.cfg.FrameInterval())
	defer ticker.Stop()

	watchdog := time.NewTimer(w.Duration() + s.cfg.SettleTimeout())
	defer watchdog.Stop()

	for {
		select {
		case <-ticker.C:
			if f := w.Tick(s.clock.Now()); f.Phase == model.PhaseIdle {
				return
			}
		case <-watchdog.C:
			metrics.ObserveForcedSettle()
			s.log.Warn("spin overran, forcing settle", zap.String("wheel_id", w.ID()))
			w.Settle()
			return
		case <-s.done:
			w.Settle()
			return
		}
	}
}
