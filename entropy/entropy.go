// Package entropy provides the deterministic pseudo-random stream used by the
// simulation: a monotonic 64-bit counter pushed through an avalanche hash.
package entropy

// Mix64 is the 64-bit finalizer from MurmurHash3 (fmix64).
// Every input bit affects every output bit with roughly even probability.
func Mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// Draw hashes a counter value together with two small per-cell inputs.
// The result is correlated with the inputs but dominated by the counter.
func Draw(counter uint64, neighbors int, age uint32) uint64 {
	return Mix64(Mix64(counter) ^ uint64(neighbors)<<32 ^ uint64(age))
}

// Jitter returns a value in [0, spread) derived from Draw.
// A spread of zero yields zero.
func Jitter(counter uint64, neighbors int, age uint32, spread uint32) uint32 {
	if spread == 0 {
		return 0
	}
	return uint32(Draw(counter, neighbors, age) % uint64(spread))
}

// Stream is a monotonically incrementing counter.
// The zero value starts at zero; it is not safe for concurrent use.
type Stream struct {
	counter uint64
}

// NewStream creates a stream starting at the given counter value.
func NewStream(start uint64) *Stream {
	return &Stream{counter: start}
}

// Counter returns the next counter value without consuming it.
func (s *Stream) Counter() uint64 {
	return s.counter
}

// Next consumes and returns one counter value.
func (s *Stream) Next() uint64 {
	c := s.counter
	s.counter++
	return c
}

// Advance consumes n counter values at once and returns the first of them.
// Parallel callers derive their own values from the returned base.
func (s *Stream) Advance(n uint64) uint64 {
	c := s.counter
	s.counter += n
	return c
}
