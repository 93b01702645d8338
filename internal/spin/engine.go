package spin

import (
	"errors"
	"math/rand"
)

// DefaultThreshold - every Rp 500.000 of order total earns one spin
const DefaultThreshold int64 = 500_000

// Chances returns how many spins an order total earns (integer division)
func Chances(total, threshold int64) int {
	if threshold <= 0 {
		return 0
	}
	return int(total / threshold)
}

// Completed is the "Spin Completed" value persisted on the order row
type Completed string

const (
	CompletedNo      Completed = "Tidak"
	CompletedYes     Completed = "Ya"
	CompletedSkipped Completed = "Skipped"
)

// ParseCompleted maps a stored cell back to a known value; anything
// unrecognized (blank cells on legacy rows) reads as "Tidak".
func ParseCompleted(s string) Completed {
	switch Completed(s) {
	case CompletedYes, CompletedSkipped:
		return Completed(s)
	default:
		return CompletedNo
	}
}

// State of one order's spin lifecycle
type State int

const (
	StateNotEligible State = iota
	StateEligiblePending
	StateInProgress
	StateCompleted
	StateSkipped
)

var (
	ErrNotEligible      = errors.New("order is not eligible for the prize wheel")
	ErrAlreadyCompleted = errors.New("spins for this order have already been used")
	ErrNoSpinsLeft      = errors.New("no spins remaining for this order")
	ErrSessionClosed    = errors.New("spin session is closed")
)

// Session tracks one open visit to the spin page for a persisted order.
//
// Entitlement is derived once from the order total. Spins performed here
// add to the spins already recorded on the order row; the row itself is
// only patched when the session closes, spin-by-spin writes go to the
// reward log alone.
type Session struct {
	OrderID      string
	CustomerName string

	entitlement int
	used        int // cumulative, includes spins from earlier sessions
	state       State
	gifts       []string
	rng         *rand.Rand
}

// NewSession opens a spin session from the order's persisted spin fields.
// Re-entry for a completed ("Ya") or fully-used order is rejected; an
// order closed as Skipped with entitlement left can reopen.
func NewSession(orderID, customerName string, total, threshold int64, spinsUsed int, completed Completed) (*Session, error) {
	entitlement := Chances(total, threshold)
	if entitlement == 0 {
		return nil, ErrNotEligible
	}
	if completed == CompletedYes {
		return nil, ErrAlreadyCompleted
	}
	if spinsUsed < 0 {
		spinsUsed = 0
	}
	s := &Session{
		OrderID:      orderID,
		CustomerName: customerName,
		entitlement:  entitlement,
		used:         spinsUsed,
		state:        StateInProgress,
		rng:          rand.New(rand.NewSource(rand.Int63())),
	}
	// Inconsistent rows (used beyond entitlement) are not repaired,
	// remaining just bottoms out at zero.
	if s.Remaining() == 0 {
		return nil, ErrNoSpinsLeft
	}
	return s, nil
}

// Seed replaces the session's random source, for deterministic draws
func (s *Session) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Remaining spins, never negative even if the stored count drifted
func (s *Session) Remaining() int {
	remaining := s.entitlement - s.used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SpinsUsed is the cumulative count to be persisted on close
func (s *Session) SpinsUsed() int { return s.used }

// Gifts won during this session, in draw order
func (s *Session) Gifts() []string { return s.gifts }

// State of the session
func (s *Session) State() State { return s.state }

// Spin draws one prize uniformly at random. Each spin consumes one
// chance; the "Try Again" sentinel consumes the spin but wins nothing.
// Repeat prizes across spins of the same order are possible.
func (s *Session) Spin() (Prize, error) {
	if s.state != StateInProgress {
		return Prize{}, ErrSessionClosed
	}
	if s.Remaining() == 0 {
		return Prize{}, ErrNoSpinsLeft
	}

	prize := Prizes[s.rng.Intn(len(Prizes))]
	s.used++
	if prize.Label != TryAgainLabel {
		s.gifts = append(s.gifts, prize.Label)
	}
	return prize, nil
}

// Close ends the session and resolves its state: any spin used means
// Completed ("Ya"), an untouched wheel means Skipped. Only "Ya" blocks
// reopening later; Skipped leaves the wheel available while spins
// remain. The caller persists SpinsUsed and the returned value together
// in one write.
func (s *Session) Close() Completed {
	if s.state != StateInProgress {
		if s.state == StateSkipped {
			return CompletedSkipped
		}
		return CompletedYes
	}
	if s.used > 0 {
		s.state = StateCompleted
		return CompletedYes
	}
	s.state = StateSkipped
	return CompletedSkipped
}
