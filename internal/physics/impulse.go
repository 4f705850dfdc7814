package physics

import "github.com/san-kum/wheelspin/internal/wheel"

// DefaultScaleFactor converts drag speed in px/ms into rad/tick.
// Lower it to make flicks spin slower.
const DefaultScaleFactor = 0.2

// Mapper turns a released drag into an angular velocity impulse.
type Mapper struct {
	ScaleFactor float64
}

func NewMapper(scale float64) (Mapper, error) {
	if !wheel.Finite(scale) || scale <= 0 {
		return Mapper{}, wheel.Invalid("scale_factor", "must be positive, got %v", scale)
	}
	return Mapper{ScaleFactor: scale}, nil
}

// Impulse returns velocity · sign(direction) · ScaleFactor.
func (m Mapper) Impulse(velocity float64, direction wheel.Direction) float64 {
	velocity = wheel.Sanitize(velocity)
	return wheel.Sanitize(velocity * wheel.DirectionOf(direction.Float()).Float() * m.ScaleFactor)
}
