package wheel

import "time"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Slice struct {
	Index      int     `json:"index"`
	Path       string  `json:"path"`  // SVG path сектора, центр колеса в (0,0)
	Color      string  `json:"color"` // #rrggbb
	Value      int     `json:"value"` // Приз
	Centroid   Point   `json:"centroid"`
	StartAngle float64 `json:"start_angle"` // Радианы по часовой от 12 часов
	EndAngle   float64 `json:"end_angle"`
}

type StateResponse struct {
	ID             string  `json:"id"`
	InputText      string  `json:"input_text"` // Текст поля ввода как есть
	Segments       int     `json:"segments"`
	Layout         int     `json:"layout"` // Версия разметки, меняется при пересоздании секторов
	AngleBySegment float64 `json:"angle_by_segment"`
	AngleOffset    float64 `json:"angle_offset"`
	CurrentAngle   float64 `json:"current_angle"`
	Phase          string  `json:"phase"` // idle | spinning | settling
	SpinEnabled    bool    `json:"spin_enabled"`
	Finished       bool    `json:"finished"`
	Winner         *Slice  `json:"winner"`
	Slices         []Slice `json:"slices"`
}

type SegmentsRequest struct {
	Text string `json:"text"`
}

type SegmentsResponse struct {
	Text    string        `json:"text"`
	Applied bool          `json:"applied"` // false, если значение невалидно, не изменилось или колесо крутится
	State   StateResponse `json:"state"`
}

type FlingRequest struct {
	VelocityX float64 `json:"velocity_x"` // Не используется
	VelocityY float64 `json:"velocity_y"` // Пикселей в секунду
}

type FlingResponse struct {
	Accepted bool          `json:"accepted"`
	State    StateResponse `json:"state"`
}

type FrameResponse struct {
	WheelID  string    `json:"wheel_id"`
	Seq      uint64    `json:"seq"`
	Layout   int       `json:"layout"`
	Angle    float64   `json:"angle"`
	KnobTilt float64   `json:"knob_tilt"` // Отклонение указателя в градусах
	Phase    string    `json:"phase"`
	Winner   *Slice    `json:"winner,omitempty"` // Только в кадре остановки
	At       time.Time `json:"at"`
}

type Spin struct {
	ID         int64     `json:"id"`
	WheelID    string    `json:"wheel_id"`
	Segments   int       `json:"segments"`
	SliceIndex int       `json:"slice_index"`
	Value      int       `json:"value"`
	Color      string    `json:"color"`
	FinalAngle float64   `json:"final_angle"`
	Velocity   float64   `json:"velocity"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Spins []Spin `json:"spins"`
}

type StatsResponse struct {
	TotalSpins  int            `json:"total_spins"`
	TotalPayout int64          `json:"total_payout"`
	AvgPayout   float64        `json:"avg_payout"`
	MaxPayout   int            `json:"max_payout"`
	ValueHits   map[string]int `json:"value_hits"` // Приз -> сколько раз выпал
	WindowAvg   float64        `json:"window_avg"`
	WindowSize  int            `json:"window_size"`
}
