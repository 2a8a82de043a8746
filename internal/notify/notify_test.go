package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitInOrder(t *testing.T) {
	var s Signal
	var got []int

	s.Connect(func() { got = append(got, 1) })
	s.Connect(func() { got = append(got, 2) })
	s.Emit()

	assert.Equal(t, []int{1, 2}, got)
}

func TestDisconnect(t *testing.T) {
	var s Signal
	calls := 0

	disconnect := s.Connect(func() { calls++ })
	s.Emit()
	disconnect()
	s.Emit()
	disconnect()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestDisconnectDuringEmit(t *testing.T) {
	var s Signal
	calls := 0

	var disconnect func()
	disconnect = s.Connect(func() {
		calls++
		disconnect()
	})
	s.Connect(func() { calls++ })

	s.Emit()
	s.Emit()

	assert.Equal(t, 3, calls)
}
