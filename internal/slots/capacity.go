package slots

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// HasRoom reports whether one more appointment fits into a slot already
// holding occupied active appointments.
func HasRoom(cfg domain.CapacityConfig, occupied int) bool {
	if !cfg.AllowMultiple {
		return occupied == 0
	}
	return occupied < cfg.EffectiveCap()
}

// Remaining returns the number of free spots, never negative
func Remaining(cfg domain.CapacityConfig, occupied int) int {
	left := cfg.EffectiveCap() - occupied
	if left < 0 {
		return 0
	}
	return left
}
