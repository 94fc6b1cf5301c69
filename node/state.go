package node

import (
	"sync"
	"sync/atomic"
)

// ackState tracks which sides have acknowledged a single phase's probes.
type ackState struct {
	left  bool
	right bool
}

func (a *ackState) complete() bool { return a.left && a.right }

// state holds every mutable field of the HS phase state machine.
// phaseAcks and the scalars it co-varies with (phase, roundsForReport)
// share a single mutex; messagesSent and completionFlag are atomics.
type state struct {
	mu              sync.Mutex
	phase           int
	active          bool
	hasWinner       bool
	winnerUID       int64
	phaseAcks       map[int]*ackState
	roundsForReport int

	messagesSent   atomic.Int64
	completionFlag atomic.Bool
}

func newState() *state {
	return &state{
		active:    true,
		phaseAcks: make(map[int]*ackState),
	}
}

// startPhase creates a fresh ackState entry for phase p, replacing any
// entry an earlier setAck created for p.
func (s *state) startPhase(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phaseAcks[p] = &ackState{}
}

// setAck sets the ack bit for dir on phase p, creating the entry if a
// reflection raced ahead of this node's own probe emission.
func (s *state) setAck(phase int, dir bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var a, ok = s.phaseAcks[phase]
	if !ok {
		a = &ackState{}
		s.phaseAcks[phase] = a
	}
	if dir {
		a.right = true
	} else {
		a.left = true
	}
}

// acksComplete reports whether both sides of phase p have acknowledged.
func (s *state) acksComplete(phase int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var a, ok = s.phaseAcks[phase]
	return ok && a.complete()
}

// advancePhase moves from p to p+1 and bumps the round high-water mark.
func (s *state) advancePhase(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p + 1
	if s.phase > s.roundsForReport {
		s.roundsForReport = s.phase
	}
}

func (s *state) currentPhase() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *state) setInactive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

func (s *state) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// trySetWinner sets winnerUID the first time it's called and reports
// whether this call was the one that set it: the winner is never
// overwritten once set.
func (s *state) trySetWinner(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasWinner {
		return false
	}
	s.hasWinner = true
	s.winnerUID = uid
	return true
}

func (s *state) winner() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winnerUID, s.hasWinner
}

// bumpRounds raises roundsForReport to at least r.
func (s *state) bumpRounds(r int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r > s.roundsForReport {
		s.roundsForReport = r
	}
}

func (s *state) rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roundsForReport
}

func (s *state) incMessagesSent() {
	s.messagesSent.Add(1)
}

func (s *state) messages() int64 {
	return s.messagesSent.Load()
}
