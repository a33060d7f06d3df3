package stats

const (
	DefaultDays = 7
	MaxDays     = 90
)

// Summary is the aggregate over the reporting window
type Summary struct {
	Customers    int     `json:"customers"`
	Reservations int     `json:"reservations"`
	Revenue      int64   `json:"revenue"`
	AverageSeats float64 `json:"average_seats"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DailyStat is one reservation date in the window
type DailyStat struct {
	Date         string `json:"date"`
	Reservations int    `json:"reservations"`
	Seats        int    `json:"seats"`
	Revenue      int64  `json:"revenue"`
}

type RestaurantStats struct {
	RestaurantID    string         `json:"restaurant_id"`
	Days            int            `json:"days"`
	Since           string         `json:"since"`
	Summary         Summary        `json:"summary"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	Daily           []DailyStat    `json:"daily"`
	Occupancy       int            `json:"occupancy"`
}

// ClampDays keeps the window between one day and MaxDays
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDays
	case days > MaxDays:
		return MaxDays
	}
	return days
}
