package wheel

import (
	"context"
	"time"
	"wheel_backend/internal/metrics"
	"wheel_backend/internal/model"

	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

// settle начисляет приз и сохраняет спин одной транзакцией.
// Вызывается движком один раз на спин, вне блокировки колеса
func (s *serv) settle(userID int, o model.SpinOutcome) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	record := model.SpinRecord{
		UserID:     userID,
		WheelID:    o.WheelID,
		Segments:   o.Segments,
		SliceIndex: o.Winner.Index,
		Value:      o.Winner.Value,
		Color:      o.Winner.Color,
		FinalAngle: o.FinalAngle,
		Velocity:   o.Velocity,
		CreatedAt:  o.SettledAt,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.AddBalance(txCtx, userID, int64(o.Winner.Value))
		if err != nil {
			return err
		}
		record.Balance = balance

		record.ID, err = s.wheelRepo.InsertSpin(txCtx, &record)
		return err
	})
	if err != nil {
		metrics.ObserveSettleError()
		s.log.Error("failed to store spin",
			zap.Int("user_id", userID),
			zap.String("wheel_id", o.WheelID),
			zap.Int("value", o.Winner.Value),
			zap.Error(err),
		)
		return
	}

	s.statsRepo.Record(o.Winner.Value)
	metrics.ObserveSpin(o.Winner.Value, o.SettledAt.Sub(o.StartedAt))

	s.log.Info("spin settled",
		zap.Int("user_id", userID),
		zap.String("wheel_id", o.WheelID),
		zap.Int64("spin_id", record.ID),
		zap.Int("slice", o.Winner.Index),
		zap.Int("value", o.Winner.Value),
		zap.Float64("angle", o.FinalAngle),
		zap.Int64("balance", record.Balance),
	)
}
