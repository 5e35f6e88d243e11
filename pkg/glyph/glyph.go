package glyph

import (
	"fmt"

	"tableflip.dev/sobok/pkg/schedule"
)

type Glyph struct {
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

var (
	Pending   = Glyph{Symbol: "○", Meaning: "slot pending"}
	Doing     = Glyph{Symbol: "◐", Meaning: "slot partly taken"}
	Done      = Glyph{Symbol: "●", Meaning: "slot done"}
	Checked   = Glyph{Symbol: "✔", Meaning: "pill taken"}
	Unchecked = Glyph{Symbol: "·", Meaning: "pill not taken"}
	Liked     = Glyph{Symbol: "♥", Meaning: "you left a sticker"}
)

// Completion returns the glyph for a slot state.
func Completion(c schedule.Completion) Glyph {
	switch c {
	case schedule.Done:
		return Done
	case schedule.Doing:
		return Doing
	default:
		return Pending
	}
}

// Check returns the glyph for a pill's checked flag.
func Check(checked bool) Glyph {
	if checked {
		return Checked
	}
	return Unchecked
}

// Slots is the legend for slot completion.
func Slots() []Glyph {
	return []Glyph{Pending, Doing, Done}
}

// Pills is the legend for pill rows.
func Pills() []Glyph {
	return []Glyph{Unchecked, Checked, Liked}
}

func (g Glyph) String() string {
	return g.Symbol
}
