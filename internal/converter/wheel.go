package converter

import (
	"strconv"
	"wheel_backend/internal/api/dto/wheel"
	"wheel_backend/internal/model"
)

func ToFling(req wheel.FlingRequest) model.Fling {
	return model.Fling{
		VelocityX: req.VelocityX,
		VelocityY: req.VelocityY,
	}
}

func ToStateResponse(state model.WheelState) wheel.StateResponse {
	return wheel.StateResponse{
		ID:             state.ID,
		InputText:      state.InputText,
		Segments:       state.Segments,
		Layout:         state.Layout,
		AngleBySegment: state.AngleBySegment,
		AngleOffset:    state.AngleOffset,
		CurrentAngle:   state.CurrentAngle,
		Phase:          state.Phase.String(),
		SpinEnabled:    state.SpinEnabled,
		Finished:       state.Finished,
		Winner:         toSlicePtr(state.Winner),
		Slices:         toSlices(state.Slices),
	}
}

func ToFrameResponse(frame model.Frame) wheel.FrameResponse {
	return wheel.FrameResponse{
		WheelID:  frame.WheelID,
		Seq:      frame.Seq,
		Layout:   frame.Layout,
		Angle:    frame.Angle,
		KnobTilt: frame.KnobTilt,
		Phase:    frame.Phase.String(),
		Winner:   toSlicePtr(frame.Winner),
		At:       frame.At,
	}
}

func ToHistoryResponse(spins []model.SpinRecord) wheel.HistoryResponse {
	result := make([]wheel.Spin, len(spins))
	for i, s := range spins {
		result[i] = wheel.Spin{
			ID:         s.ID,
			WheelID:    s.WheelID,
			Segments:   s.Segments,
			SliceIndex: s.SliceIndex,
			Value:      s.Value,
			Color:      s.Color,
			FinalAngle: s.FinalAngle,
			Velocity:   s.Velocity,
			Balance:    s.Balance,
			CreatedAt:  s.CreatedAt,
		}
	}
	return wheel.HistoryResponse{Spins: result}
}

func ToStatsResponse(stats model.WheelStats) wheel.StatsResponse {
	hits := make(map[string]int, len(stats.ValueHits))
	for value, count := range stats.ValueHits {
		hits[strconv.Itoa(value)] = count
	}
	return wheel.StatsResponse{
		TotalSpins:  stats.TotalSpins,
		TotalPayout: stats.TotalPayout,
		AvgPayout:   stats.AvgPayout,
		MaxPayout:   stats.MaxPayout,
		ValueHits:   hits,
		WindowAvg:   stats.WindowAvg,
		WindowSize:  stats.WindowSize,
	}
}

func toSlices(slices []model.Slice) []wheel.Slice {
	result := make([]wheel.Slice, len(slices))
	for i, s := range slices {
		result[i] = toSlice(s)
	}
	return result
}

func toSlicePtr(s *model.Slice) *wheel.Slice {
	if s == nil {
		return nil
	}
	res := toSlice(*s)
	return &res
}

func toSlice(s model.Slice) wheel.Slice {
	return wheel.Slice{
		Index:      s.Index,
		Path:       s.Path.String(),
		Color:      s.Color,
		Value:      s.Value,
		Centroid:   wheel.Point{X: s.Centroid.X, Y: s.Centroid.Y},
		StartAngle: s.StartAngle,
		EndAngle:   s.EndAngle,
	}
}
