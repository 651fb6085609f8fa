package wheel_stats_repo

import (
	"maps"
	"sync"
	"wheel_backend/internal/model"
)

const defaultWindowSize = 500

// StatsRepo статистика выпавших призов в памяти процесса
type StatsRepo struct {
	mtx sync.RWMutex

	totalSpins  int
	totalPayout int64
	maxPayout   int
	valueHits   map[int]int

	// Кольцевое окно последних призов
	window     []int
	windowPos  int
	windowSum  int64
	windowSize int
}

// NewWheelStatsRepository windowSize <= 0 заменяется значением по умолчанию
func NewWheelStatsRepository(windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StatsRepo{
		valueHits:  make(map[int]int),
		window:     make([]int, 0, windowSize),
		windowSize: windowSize,
	}
}

// Record учитывает приз одного спина
func (r *StatsRepo) Record(value int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.totalSpins++
	r.totalPayout += int64(value)
	if value > r.maxPayout {
		r.maxPayout = value
	}
	r.valueHits[value]++

	// Поддерживаем размер окна
	if len(r.window) < r.windowSize {
		r.window = append(r.window, value)
	} else {
		r.windowSum -= int64(r.window[r.windowPos])
		r.window[r.windowPos] = value
		r.windowPos = (r.windowPos + 1) % r.windowSize
	}
	r.windowSum += int64(value)
}

// Stats копия текущей статистики
func (r *StatsRepo) Stats() model.WheelStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	stats := model.WheelStats{
		TotalSpins:  r.totalSpins,
		TotalPayout: r.totalPayout,
		MaxPayout:   r.maxPayout,
		ValueHits:   maps.Clone(r.valueHits),
		WindowSize:  len(r.window),
	}
	if r.totalSpins > 0 {
		stats.AvgPayout = float64(r.totalPayout) / float64(r.totalSpins)
	}
	if len(r.window) > 0 {
		stats.WindowAvg = float64(r.windowSum) / float64(len(r.window))
	}
	return stats
}
