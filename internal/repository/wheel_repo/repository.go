package wheel_repo

import (
	"context"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "wheel_spins"
	colID         = "id"
	colUserID     = "user_id"
	colWheelID    = "wheel_id"
	colSegments   = "segments"
	colSliceIndex = "slice_index"
	colValue      = "value"
	colColor      = "color"
	colFinalAngle = "final_angle"
	colVelocity   = "velocity"
	colBalance    = "balance"
	colCreatedAt  = "created_at"
)

// DefaultListLimit лимит истории, если не задан
const DefaultListLimit = 50

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWheelRepository(dbc *pgxpool.Pool) repository.WheelRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// InsertSpin - сохраняет результат спина, возвращает его ID
func (r *repo) InsertSpin(ctx context.Context, spin *model.SpinRecord) (int64, error) {
	query := psql.Insert(table).
		Columns(colUserID, colWheelID, colSegments, colSliceIndex, colValue, colColor,
			colFinalAngle, colVelocity, colBalance, colCreatedAt).
		Values(spin.UserID, spin.WheelID, spin.Segments, spin.SliceIndex, spin.Value, spin.Color,
			spin.FinalAngle, spin.Velocity, spin.Balance, spin.CreatedAt).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, repository.MapPgError(err)
	}

	return id, nil
}

// ListSpins - последние спины игрока, новые первыми
func (r *repo) ListSpins(ctx context.Context, userID int, limit uint64) ([]model.SpinRecord, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	query := psql.Select(colID, colUserID, colWheelID, colSegments, colSliceIndex, colValue, colColor,
		colFinalAngle, colVelocity, colBalance, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colID + " DESC").
		Limit(limit)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SpinRecord, error) {
		var s model.SpinRecord
		err := row.Scan(&s.ID, &s.UserID, &s.WheelID, &s.Segments, &s.SliceIndex, &s.Value, &s.Color,
			&s.FinalAngle, &s.Velocity, &s.Balance, &s.CreatedAt)
		return s, err
	})
}
