package vm

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys.
type Keypad struct {
	keys [KeyCount]bool
}

// Set updates the state of a key, indexes above 0xF are ignored.
func (k *Keypad) Set(index uint8, pressed bool) {
	if int(index) >= KeyCount {
		return
	}
	k.keys[index] = pressed
}

// Pressed returns whether the key for the low nibble of index is pressed.
func (k *Keypad) Pressed(index uint8) bool {
	return k.keys[index&0x0F]
}

// firstPressed returns the lowest index of all pressed keys.
func (k *Keypad) firstPressed() (uint8, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}
