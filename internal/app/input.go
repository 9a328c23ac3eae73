package app

// Held movement keys fire on the first tick and then every moveRepeat ticks
// once moveDelay has passed.
const (
	moveDelay  = 10
	moveRepeat = 3
)

// repeatFires reports whether a key held for d ticks should fire this tick.
func repeatFires(d int) bool {
	if d == 1 {
		return true
	}
	return d > moveDelay && (d-moveDelay)%moveRepeat == 0
}
