package vm

// Timers contains the delay and sound down-counters.
type Timers struct {
	Delay uint8
	Sound uint8

	beepEdge bool // sound timer crossed from 1 to 0 on the last tick
}

// tick decrements both counters towards zero.
func (t *Timers) tick() {
	t.beepEdge = false

	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.beepEdge = t.Sound == 1
		t.Sound--
	}
}

// takeBeepEdge returns whether the last tick ended a sound and clears the edge.
func (t *Timers) takeBeepEdge() bool {
	edge := t.beepEdge
	t.beepEdge = false
	return edge
}
