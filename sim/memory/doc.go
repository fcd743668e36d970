// Package memory implements the 17-parameter memory model used by the deck
// simulator: the power forgetting curve and the stability and difficulty
// transitions applied after each review.
//
// All functions are pure. Methods take *Parameters only to avoid copying
// the weight array in the simulator's inner loop; they never mutate it.
package memory
