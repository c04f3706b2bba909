package paybox

import (
	"sync/atomic"
	"time"
)

// questionWidth is the fixed width of NUMQUESTION on the wire, which
// also bounds the counter range.
const questionWidth = 10

const questionModulus = 1e10

// questionSequence hands out the per-request NUMQUESTION values. Paybox
// uses them for ordering and duplicate detection, so two concurrent
// calls through one gateway must never observe the same number: the
// counter is a single atomic, not a read-modify-write.
type questionSequence struct {
	counter atomic.Int64
}

// newQuestionSequence seeds the counter from the wall clock (millisecond
// offset into the current day) so short-lived processes created on the
// same day are unlikely to replay numbers Paybox has already seen.
func newQuestionSequence(now time.Time) *questionSequence {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	seq := &questionSequence{}
	seq.counter.Store(now.Sub(midnight).Milliseconds())
	return seq
}

// Next returns the next question number, zero-padded to wire width.
// Strictly increasing for the lifetime of the gateway instance.
func (s *questionSequence) Next() string {
	n := s.counter.Add(1)
	return padNumber(n%questionModulus, questionWidth)
}
