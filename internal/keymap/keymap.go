// Package keymap translates host keyboard characters to keypad indexes.
//
// The keypad of the machine is laid out as a 4x4 grid:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// A layout maps the 4x4 block of keys below the host number row onto it.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Layout names.
const (
	Qwerty = "qwerty"
	Azerty = "azerty"
)

// ErrUnknownLayout is returned for layout names that are not supported.
var ErrUnknownLayout = errors.New("unknown keyboard layout")

// keypadOrder lists the keypad indexes in row-major grid order.
var keypadOrder = [16]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

var layouts = map[string]string{
	Qwerty: "1234qwerasdfzxcv",
	Azerty: "1234azerqsdfwxcv",
}

// Layout maps host characters to keypad indexes.
type Layout struct {
	name string
	keys map[rune]uint8
}

// Lookup returns the layout for the given name, matched case insensitively.
func Lookup(name string) (Layout, error) {
	name = strings.ToLower(name)
	grid, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %s. Valid options: %s", ErrUnknownLayout, name, strings.Join(Names(), ", "))
	}

	l := Layout{
		name: name,
		keys: make(map[rune]uint8, len(keypadOrder)),
	}
	for i, r := range grid {
		l.keys[r] = keypadOrder[i]
	}
	return l, nil
}

// Names returns the sorted names of all supported layouts.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the name of the layout.
func (l Layout) Name() string {
	return l.name
}

// Key returns the keypad index for the host character.
func (l Layout) Key(r rune) (uint8, bool) {
	index, ok := l.keys[unicode.ToLower(r)]
	return index, ok
}
