package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyCode identifies the kind of key.
type KeyCode uint8

const (
	KeyChar KeyCode = iota
	KeyFunction
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyEnter
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyTab
)

var keyNames = map[KeyCode]string{
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyInsert:    "insert",
	KeyEnter:     "enter",
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyTab:       "tab",
}

// Key is a keyboard key. Rune is set for KeyChar, Num for KeyFunction.
type Key struct {
	Code KeyCode
	Rune rune
	Num  uint8
}

// Char creates a character key.
func Char(r rune) Key {
	return Key{Code: KeyChar, Rune: r}
}

// Function creates a function key, F1 is Function(1).
func Function(n uint8) Key {
	return Key{Code: KeyFunction, Num: n}
}

// Named creates a key with no payload, such as KeyEnter.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

// IsChar reports whether k is the character r.
func (k Key) IsChar(r rune) bool {
	return k.Code == KeyChar && k.Rune == r
}

func (k Key) String() string {
	switch k.Code {
	case KeyChar:
		return string(k.Rune)
	case KeyFunction:
		return "f" + strconv.Itoa(int(k.Num))
	default:
		if name, ok := keyNames[k.Code]; ok {
			return name
		}
		return fmt.Sprintf("KeyCode(%d)", uint8(k.Code))
	}
}

// ParseKey parses a key name: a single character, f1..f64, or a named key.
func ParseKey(s string) (Key, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}

	lower := strings.ToLower(s)
	switch lower {
	case "space":
		return Char(' '), nil
	case "esc":
		return Named(KeyEscape), nil
	case "return":
		return Named(KeyEnter), nil
	case "del":
		return Named(KeyDelete), nil
	}
	for code, name := range keyNames {
		if name == lower {
			return Named(code), nil
		}
	}
	if strings.HasPrefix(lower, "f") {
		if n, err := strconv.ParseUint(lower[1:], 10, 8); err == nil && n >= 1 && n <= 64 {
			return Function(uint8(n)), nil
		}
	}
	return Key{}, fmt.Errorf("unknown key: %q", s)
}

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << 0
	ModCtrl  Modifiers = 1 << 1
	ModAlt   Modifiers = 1 << 2
)

// Has reports whether all of o are held.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// IsShiftOnly reports whether Shift is the only modifier.
func (m Modifiers) IsShiftOnly() bool { return m == ModShift }

// ParseModifiers parses names joined by '+', such as "ctrl+shift".
func ParseModifiers(s string) (Modifiers, error) {
	var out Modifiers
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mod, ok := parseModifier(part)
		if !ok {
			return ModNone, fmt.Errorf("unknown modifier: %q", part)
		}
		out |= mod
	}
	return out, nil
}

func parseModifier(s string) (Modifiers, bool) {
	switch strings.ToLower(s) {
	case "shift":
		return ModShift, true
	case "ctrl", "control":
		return ModCtrl, true
	case "alt", "meta":
		return ModAlt, true
	case "none":
		return ModNone, true
	}
	return ModNone, false
}

func (m Modifiers) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Keybind is a key with the modifiers that must accompany it.
type Keybind struct {
	Key       Key
	Modifiers Modifiers
}

// Bind creates a keybind.
func Bind(key Key, mods Modifiers) Keybind {
	return Keybind{Key: key, Modifiers: mods}
}

// BindChar creates a keybind for a character with no modifiers.
func BindChar(r rune) Keybind {
	return Keybind{Key: Char(r)}
}

// ParseKeybind parses "ctrl+a", "shift+tab", "f5" and similar.
// The last '+' separated part is the key.
func ParseKeybind(s string) (Keybind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Keybind{}, fmt.Errorf("empty keybind")
	}
	// "ctrl++" binds the plus key
	keyPart := s
	modPart := ""
	if strings.HasSuffix(s, "++") {
		keyPart, modPart = "+", strings.TrimSuffix(s, "++")
	} else if i := strings.LastIndex(s, "+"); i > 0 {
		keyPart, modPart = s[i+1:], s[:i]
	}

	key, err := ParseKey(keyPart)
	if err != nil {
		return Keybind{}, fmt.Errorf("parse keybind %q: %w", s, err)
	}
	mods, err := ParseModifiers(modPart)
	if err != nil {
		return Keybind{}, fmt.Errorf("parse keybind %q: %w", s, err)
	}
	return Keybind{Key: key, Modifiers: mods}, nil
}

func (k Keybind) String() string {
	if k.Modifiers == ModNone {
		return k.Key.String()
	}
	return k.Modifiers.String() + "+" + k.Key.String()
}

// Matches reports whether a key event with key and mods satisfies k.
// Character binds with no modifiers other than Shift compare the character
// case-insensitively and ignore Shift on both sides.
func (k Keybind) Matches(key Key, mods Modifiers) bool {
	if k.Key.Code == KeyChar && key.Code == KeyChar &&
		(k.Modifiers == ModNone || k.Modifiers.IsShiftOnly()) &&
		(mods == ModNone || mods.IsShiftOnly()) {
		return unicode.ToLower(k.Key.Rune) == unicode.ToLower(key.Rune)
	}
	return k.Key == key && k.Modifiers == mods
}

// IsKeybindPressed reports whether ev is a KeyPressed matching bind.
func IsKeybindPressed(ev Event, bind Keybind) bool {
	e, ok := ev.(KeyPressed)
	return ok && bind.Matches(e.Key, e.Modifiers)
}

// IsKeybindReleased reports whether ev is a KeyReleased matching bind.
func IsKeybindReleased(ev Event, bind Keybind) bool {
	e, ok := ev.(KeyReleased)
	return ok && bind.Matches(e.Key, e.Modifiers)
}

// IsKeybindRepeat reports whether ev is a KeyRepeat matching bind.
func IsKeybindRepeat(ev Event, bind Keybind) bool {
	e, ok := ev.(KeyRepeat)
	return ok && bind.Matches(e.Key, e.Modifiers)
}
