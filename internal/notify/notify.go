// Package notify provides a synchronous change signal.
package notify

// Signal delivers a zero-argument notification to every connected
// function, in connection order, before Emit returns. It is not safe for
// concurrent use; the owner of the signal serializes access.
type Signal struct {
	next  int
	slots []slot
}

type slot struct {
	id int
	fn func()
}

// Connect registers fn and returns a function that disconnects it.
func (s *Signal) Connect(fn func()) (disconnect func()) {
	id := s.next
	s.next++
	s.slots = append(s.slots, slot{id: id, fn: fn})

	return func() {
		for i, sl := range s.slots {
			if sl.id == id {
				s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every connected function.
func (s *Signal) Emit() {
	// Slots connected or disconnected by a receiver take effect on the next Emit.
	slots := s.slots
	for _, sl := range slots {
		sl.fn()
	}
}

// Len returns the number of connected functions.
func (s *Signal) Len() int {
	return len(s.slots)
}
