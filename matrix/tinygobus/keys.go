package tinygobus

// KeyState is the debounce phase of one key.
type KeyState uint8

const (
	Released KeyState = iota
	Pressing
	Held
	Releasing
)

// Keys debounces active-low buttons by polling. Call Update once per frame;
// a key reports a press on the update after it has read low for Debounce
// consecutive polls.
type Keys struct {
	pins     []InputPin
	state    []KeyState
	cycle    []int
	Debounce int
}

// NewKeys tracks one key per pin, in order. A nil pin never reads pressed.
func NewKeys(pins ...InputPin) *Keys {
	return &Keys{
		pins:  pins,
		state: make([]KeyState, len(pins)),
		cycle: make([]int, len(pins)),
	}
}

// Update polls every pin and calls pressed with the index of each key that
// has just been pressed.
func (k *Keys) Update(pressed func(key int)) {
	for i, pin := range k.pins {
		down := pin != nil && !pin.Get()

		switch k.state[i] {
		case Released:
			if !down {
				k.cycle[i] = 0
				continue
			}
			if k.cycle[i] >= k.Debounce {
				k.state[i] = Pressing
				k.cycle[i] = 0
			} else {
				k.cycle[i]++
			}
		case Pressing:
			k.state[i] = Held
			pressed(i)
		case Held:
			if down {
				k.cycle[i] = 0
				continue
			}
			if k.cycle[i] >= k.Debounce {
				k.state[i] = Releasing
				k.cycle[i] = 0
			} else {
				k.cycle[i]++
			}
		case Releasing:
			k.state[i] = Released
		}
	}
}

// State returns the debounce phase of key.
func (k *Keys) State(key int) KeyState {
	return k.state[key]
}
