// Package prefs stores the dashboard theme settings of each admin user.
package prefs

import (
	"context"
	"errors"
	"fmt"
)

type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

type Color string

const (
	ColorDefault Color = "default"
	ColorVibrant Color = "vibrant"
	ColorGreen   Color = "green"
	ColorOrange  Color = "orange"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorTeal    Color = "teal"
	ColorRed     Color = "red"
)

// Slot names a colorable part of the dashboard.
type Slot string

const (
	SlotNav     Slot = "nav"
	SlotSidebar Slot = "sidebar"
	SlotButton  Slot = "button"
)

// Storage keys, one per setting.
const (
	KeyThemeMode    = "dex-admin-theme-mode"
	KeyNavColor     = "dex-admin-nav-color"
	KeySidebarColor = "dex-admin-sidebar-color"
	KeyButtonColor  = "dex-admin-button-color"
)

// Keys lists every storage key in a stable order.
var Keys = []string{KeyThemeMode, KeyNavColor, KeySidebarColor, KeyButtonColor}

var ErrInvalid = errors.New("invalid theme setting")

var colors = map[Color]bool{
	ColorDefault: true, ColorVibrant: true, ColorGreen: true, ColorOrange: true,
	ColorPurple: true, ColorPink: true, ColorTeal: true, ColorRed: true,
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLight, ModeDark, ModeSystem:
		return m, nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrInvalid, s)
}

func ParseColor(s string) (Color, error) {
	if c := Color(s); colors[c] {
		return c, nil
	}
	return "", fmt.Errorf("%w: color %q", ErrInvalid, s)
}

func ParseSlot(s string) (Slot, error) {
	switch sl := Slot(s); sl {
	case SlotNav, SlotSidebar, SlotButton:
		return sl, nil
	}
	return "", fmt.Errorf("%w: slot %q", ErrInvalid, s)
}

// Settings are the persisted theme choices.
type Settings struct {
	Mode         Mode  `json:"mode"`
	NavColor     Color `json:"navColor"`
	SidebarColor Color `json:"sidebarColor"`
	ButtonColor  Color `json:"buttonColor"`
}

func Defaults() Settings {
	return Settings{
		Mode:         ModeLight,
		NavColor:     ColorDefault,
		SidebarColor: ColorDefault,
		ButtonColor:  ColorDefault,
	}
}

// FromValues builds settings from stored key/value pairs. Missing or
// unknown values fall back to the defaults.
func FromValues(values map[string]string) Settings {
	s := Defaults()
	if m, err := ParseMode(values[KeyThemeMode]); err == nil {
		s.Mode = m
	}
	if c, err := ParseColor(values[KeyNavColor]); err == nil {
		s.NavColor = c
	}
	if c, err := ParseColor(values[KeySidebarColor]); err == nil {
		s.SidebarColor = c
	}
	if c, err := ParseColor(values[KeyButtonColor]); err == nil {
		s.ButtonColor = c
	}
	return s
}

// Values returns the storage form of s.
func (s Settings) Values() map[string]string {
	return map[string]string{
		KeyThemeMode:    string(s.Mode),
		KeyNavColor:     string(s.NavColor),
		KeySidebarColor: string(s.SidebarColor),
		KeyButtonColor:  string(s.ButtonColor),
	}
}

func (s *Settings) color(slot Slot) *Color {
	switch slot {
	case SlotNav:
		return &s.NavColor
	case SlotSidebar:
		return &s.SidebarColor
	default:
		return &s.ButtonColor
	}
}

func slotKey(slot Slot) string {
	switch slot {
	case SlotNav:
		return KeyNavColor
	case SlotSidebar:
		return KeySidebarColor
	default:
		return KeyButtonColor
	}
}

// Resolve reports whether the dark appearance applies.
func Resolve(mode Mode, systemDark bool) bool {
	return mode == ModeDark || (mode == ModeSystem && systemDark)
}

// Store persists settings as string key/value pairs per owner.
type Store interface {
	// Load returns the stored values of owner; an unknown owner has none.
	Load(ctx context.Context, owner string) (map[string]string, error)
	Save(ctx context.Context, owner string, values map[string]string) error
	Remove(ctx context.Context, owner string, keys []string) error
	Close() error
}
