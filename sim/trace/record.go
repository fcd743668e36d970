// Package trace provides per-day admission tracing for deck simulations.
// It stores pure data types and does not import sim.
package trace

// DayRecord captures the admission outcome of one simulated day.
type DayRecord struct {
	Day       int
	Due       int     // cards due for review before admission
	Reviewed  int     // due cards admitted
	Deferred  int     // due cards carried to the next day
	Forgotten int     // admitted reviews that lapsed
	NewQueued int     // never-learned cards waiting for a first review
	Learned   int     // new cards admitted
	Cost      float64 // cost spent on admitted cards
}
