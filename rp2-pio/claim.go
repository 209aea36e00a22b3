package pio

// smMask is the set of claimed state machines of one PIO block, one bit per
// state machine index.
type smMask uint8

func (m smMask) has(index uint8) bool { return m&(1<<index) != 0 }

// tryClaim claims index and reports whether it was free.
func (m *smMask) tryClaim(index uint8) bool {
	if m.has(index) {
		return false
	}
	*m |= 1 << index
	return true
}

func (m *smMask) release(index uint8) { *m &^= 1 << index }

// claimFirst claims the lowest free index of the four state machines.
func (m *smMask) claimFirst() (index uint8, ok bool) {
	for i := uint8(0); i < 4; i++ {
		if m.tryClaim(i) {
			return i, true
		}
	}
	return 0, false
}
