package suggest

// RuntimeRange bounds the discovery query's runtime filter, in minutes.
// A zero field means unbounded on that side.
type RuntimeRange struct {
	MinMinutes int
	MaxMinutes int
}

// BracketFor maps a time budget to a coarse runtime band. The band
// boundaries (60 and 120 inclusive) and the emitted bounds are deliberate:
// a short budget still admits titles up to 90 minutes, expressing
// "approximately this much time or less" rather than a hard cutoff.
func BracketFor(timeBudgetMinutes int) RuntimeRange {
	switch {
	case timeBudgetMinutes <= 60:
		return RuntimeRange{MaxMinutes: 90}
	case timeBudgetMinutes <= 120:
		return RuntimeRange{MinMinutes: 60, MaxMinutes: 120}
	default:
		return RuntimeRange{MinMinutes: 120}
	}
}
