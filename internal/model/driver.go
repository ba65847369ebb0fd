package model

// Driver is one of the four top-level emotional drivers
type Driver string

const (
	DriverControl         Driver = "control"
	DriverAvoidance       Driver = "avoidance"
	DriverValidation      Driver = "validation"
	DriverFearOfRejection Driver = "fear-of-rejection"
)

// Drivers lists every driver in canonical order. Ranking ties resolve in this order.
var Drivers = []Driver{DriverControl, DriverAvoidance, DriverValidation, DriverFearOfRejection}

// Valid reports whether d is one of the four known drivers
func (d Driver) Valid() bool {
	for _, known := range Drivers {
		if d == known {
			return true
		}
	}
	return false
}

// Archetype is the display identity of a driver
type Archetype struct {
	Driver      Driver `json:"driver" bson:"driver"`
	Name        string `json:"name" bson:"name"`
	Symbol      string `json:"symbol" bson:"symbol"`
	Description string `json:"description" bson:"description"`
}

// DriverScores accumulates points per driver
type DriverScores map[Driver]int

// NewDriverScores returns scores seeded with zero for every driver
func NewDriverScores() DriverScores {
	scores := make(DriverScores, len(Drivers))
	for _, d := range Drivers {
		scores[d] = 0
	}
	return scores
}

// Total sums every driver's score
func (s DriverScores) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}
