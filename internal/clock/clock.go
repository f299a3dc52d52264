package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time. Month windows are always derived
// from UTC, so implementations must not bake in a location.
type Clock interface {
	Now() time.Time
}

var Module = fx.Provide(NewSystemClock)

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
