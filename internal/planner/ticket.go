package planner

// Ticket identifies one outstanding external lookup.
type Ticket uint64

// sequencer hands out tickets; only the most recent one may apply its result.
type sequencer struct {
	latest Ticket
}

func (s *sequencer) issue() Ticket {
	s.latest++
	return s.latest
}

func (s *sequencer) isLatest(t Ticket) bool {
	return t != 0 && t == s.latest
}
