package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/sobok/pkg/dateindex"
	"tableflip.dev/sobok/pkg/glyph"
	"tableflip.dev/sobok/pkg/schedule"
)

// PrettyPrint renders controller results for a terminal. It satisfies
// controller.Presenter and controller.CalendarRenderer.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool

	mu sync.Mutex
}

var (
	spacing = strings.Repeat(" ", len("0000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " pill")
	default:
		_, _ = c.Fprintln(pp.out(), " pills")
	}
}

// OnScheduleListUpdated prints the pills of the active date grouped by time
// slot, each slot headed by its completion.
func (pp *PrettyPrint) OnScheduleListUpdated(schedules []schedule.Schedule, pills []schedule.PillEntry) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	groups := schedule.GroupBySlot(pills)
	if len(groups) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " no pills\n\n")
		return
	}

	completion := make(map[int]schedule.Completion, len(schedules))
	for _, s := range schedules {
		completion[s.ID] = s.Completion
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	for _, g := range groups {
		state := schedule.Pending
		if len(g.Pills) > 0 {
			state = completion[g.Pills[0].ScheduleID]
		}
		pp.TitleWithCount(fmt.Sprintf("%s %s", glyph.Completion(state), g.TimeSlot), len(g.Pills))

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, p := range g.Pills {
			row := []interface{}{}
			if pp.ShowID {
				row = append(row, y.Sprint(strconv.Itoa(p.ScheduleID)))
			}
			row = append(row, glyph.Check(p.Checked).String(), p.Name, stickerCell(p, faint))
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

func stickerCell(p schedule.PillEntry, faint *color.Color) string {
	if p.StickerCount == 0 {
		return ""
	}
	cell := faint.Sprintf("%d stickers", p.StickerCount)
	if p.IsLiked {
		cell = glyph.Liked.String() + " " + cell
	}
	return cell
}

// OnIndexUpdated prints a one line summary of the month.
func (pp *PrettyPrint) OnIndexUpdated(idx dateindex.Index) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	c := color.New(color.Faint)
	_, _ = c.Fprintf(pp.out(), "%d days done, %d in progress\n", len(idx.Done), len(idx.Doing))
}

// OnError prints err in red with its kind.
func (pp *PrettyPrint) OnError(err error) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	r := color.New(color.FgRed)
	_, _ = r.Fprintf(pp.out(), "error (%s): %v\n", schedule.KindOf(err), err)
}

// OnStickers lists the stickers left on a schedule.
func (pp *PrettyPrint) OnStickers(scheduleID int, stickers []schedule.StickerReaction) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	pp.Title(fmt.Sprintf("Stickers on %d", scheduleID))
	if len(stickers) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Like"), bold.Sprint("Sticker"), bold.Sprint("From"), bold.Sprint("When"))
	for _, s := range stickers {
		from := s.SenderName
		if s.SenderIsLiked {
			from = glyph.Liked.String() + " you"
		}
		when := ""
		if !s.Created.IsZero() {
			when = s.Created.Local().Format("Jan 2 15:04")
		}
		tbl.AddRow(s.LikeScheduleID, s.StickerID, from, when)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
