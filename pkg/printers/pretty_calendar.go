package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sobok/pkg/dateindex"
	"tableflip.dev/sobok/pkg/glyph"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// RenderMonth paints the month containing day. Days in progress are yellow,
// done days green, and day itself is underlined.
func (pp *PrettyPrint) RenderMonth(day schedule.Day, idx dateindex.Index) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	out := pp.out()
	d := timeutil.StartDay(day)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", day.Month, day.Year)
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(out, "%s%s\n", strings.Repeat(" ", mid), m)

	h := color.New(color.Faint)
	_, _ = h.Fprintln(out, "Su Mo Tu We Th Fr Sa")

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	first := timeutil.FirstOfMonth(day)
	days := timeutil.DaysIn(day)
	for i := 1; i <= days; i++ {
		current := first.AddDays(i - 1)
		_, _ = dayPrinter(current, day, idx).Fprintf(out, "%2d", i)
		_, _ = fmt.Fprint(out, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// RenderWeek paints the Sunday to Saturday week containing day, coloured the
// same way as RenderMonth. Days outside day's month have no status.
func (pp *PrettyPrint) RenderWeek(day schedule.Day, idx dateindex.Index) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	out := pp.out()
	week := timeutil.WeekOf(day, time.Sunday)

	tf := color.New(color.FgWhite, color.Italic)
	_, _ = tf.Fprintf(out, "%s %d - %s %d\n", week[0].Month.String()[:3], week[0].Day, week[6].Month.String()[:3], week[6].Day)

	h := color.New(color.Faint)
	_, _ = h.Fprintln(out, "Su Mo Tu We Th Fr Sa")

	for _, current := range week {
		status := dateindex.None
		if current.SameMonth(day) {
			status = idx.Status(current)
		}
		printer := statusPrinter(status)
		if current == day {
			printer = color.New(color.Underline).Add(printerAttrs(status)...)
		}
		_, _ = printer.Fprintf(out, "%2d", current.Day)
		_, _ = fmt.Fprint(out, " ")
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func dayPrinter(current, day schedule.Day, idx dateindex.Index) *color.Color {
	if current == day {
		return color.New(color.Underline).Add(printerAttrs(idx.Status(current))...)
	}
	return statusPrinter(idx.Status(current))
}

func statusPrinter(s dateindex.Status) *color.Color {
	switch s {
	case dateindex.InProgress:
		return color.New(color.Bold, color.FgYellow)
	case dateindex.Complete:
		return color.New(color.Bold, color.FgGreen)
	default:
		return color.New(color.Faint, color.FgWhite)
	}
}

func printerAttrs(s dateindex.Status) []color.Attribute {
	switch s {
	case dateindex.InProgress:
		return []color.Attribute{color.Bold, color.FgYellow}
	case dateindex.Complete:
		return []color.Attribute{color.Bold, color.FgGreen}
	default:
		return []color.Attribute{color.FgWhite}
	}
}

// Legend prints what the glyphs and calendar colours mean.
func (pp *PrettyPrint) Legend() {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	out := pp.out()
	_, _ = fmt.Fprintln(out, glyph.Bold(glyph.Underline("Slots")))
	for _, g := range glyph.Slots() {
		_, _ = fmt.Fprintf(out, "  %s  %s\n", g, g.Meaning)
	}
	_, _ = fmt.Fprintln(out, glyph.Bold(glyph.Underline("Pills")))
	for _, g := range glyph.Pills() {
		_, _ = fmt.Fprintf(out, "  %s  %s\n", g, g.Meaning)
	}
	_, _ = fmt.Fprintln(out, glyph.Bold(glyph.Underline("Calendar")))
	_, _ = color.New(color.Bold, color.FgYellow).Fprintln(out, "  12  some slots taken")
	_, _ = color.New(color.Bold, color.FgGreen).Fprintln(out, "  12  every slot taken")
}
