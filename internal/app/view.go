package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dshills/griddrop/internal/backend"
	"github.com/dshills/griddrop/internal/grid"
)

var (
	zoneStyle        = backend.Style{Fg: backend.ColorGray, Bg: backend.ColorDefault, Dim: true}
	headerStyle      = backend.Style{Fg: backend.ColorDefault, Bg: backend.ColorDefault, Bold: true}
	hoverStyle       = backend.Style{Fg: backend.ColorBlack, Bg: backend.ColorGreen, Bold: true}
	itemStyle        = backend.Style{Fg: backend.ColorBlack, Bg: backend.ColorCyan}
	draggingStyle    = backend.Style{Fg: backend.ColorBlack, Bg: backend.ColorYellow, Bold: true}
	placeholderStyle = backend.Style{Fg: backend.ColorGray, Bg: backend.ColorDefault}
	statusStyle      = backend.Style{Fg: backend.ColorDefault, Bg: backend.ColorDefault, Reverse: true}
)

// draw renders the board and the status bar.
func (app *Application) draw() {
	b := app.backend
	if b == nil {
		return
	}
	start := time.Now()

	b.Clear()
	width, height := b.Size()

	hover := app.hoveredZone()
	for _, zoneID := range app.board.ZoneIDs() {
		app.drawZone(zoneID, zoneID == hover)
	}

	// The dragged item is drawn last so it stays on top.
	if id := app.board.ActiveItem(); id != "" {
		if bounds, ok := app.board.ItemBounds(id); ok {
			drawBox(b, bounds, '█', draggingStyle, id)
		}
	}

	if ui := app.config.UI(); ui.ShowStatusBar && height > 0 {
		app.drawStatusBar(ui.Title, width, height-1)
	}

	b.Show()
	app.metrics.RecordFrame(time.Since(start))
}

// hoveredZone returns the drop container under the pointer while dragging.
func (app *Application) hoveredZone() string {
	st := app.store.State()
	if !st.Dragging() {
		return ""
	}
	p := st.Draggable.Initial.Add(st.Draggable.Translate)
	id, _ := app.dnd.DroppableAt(p)
	return id
}

func (app *Application) drawZone(zoneID string, hovered bool) {
	b := app.backend
	zone, _ := app.board.Zone(zoneID)
	bounds := zone.Bounds()
	r := toRect(bounds, false)

	style := headerStyle
	if hovered {
		style = hoverStyle
	}
	label := fmt.Sprintf(" %s (%d) ", zoneID, zone.Count())
	backend.DrawText(b, r.Left, r.Top-1, label, style)
	b.Fill(r, backend.Cell{Rune: '·', Style: zoneStyle})

	origin := bounds.Origin()
	g := zone.Grid()
	if pos, ok := zone.PlaceholderPosition(); ok {
		drawBox(b, slotBounds(origin, pos, g), '░', placeholderStyle, "")
	}

	items := app.board.Items(zoneID)
	for _, slot := range zone.Layout() {
		if slot.Dragging || slot.Index >= len(items) {
			continue
		}
		drawBox(b, slotBounds(origin, slot.Position, g), ' ', itemStyle, items[slot.Index])
	}
}

func (app *Application) drawStatusBar(title string, width, y int) {
	b := app.backend
	b.Fill(backend.Rect{Left: 0, Top: y, Right: width, Bottom: y + 1}, backend.Cell{Rune: ' ', Style: statusStyle})

	state := "idle"
	if id := app.board.ActiveItem(); id != "" {
		state = "dragging " + id
		if hover := app.hoveredZone(); hover != "" {
			state += " over " + hover
		}
	}

	s := app.metrics.Snapshot()
	parts := []string{
		title,
		state,
		fmt.Sprintf("drags %d  moves %d", s.DragsStarted, s.Reorders),
	}
	if app.status != "" {
		parts = append(parts, app.status)
	}
	if n := len(app.config.ConfigErrors()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d config errors", n))
	}
	backend.DrawText(b, 1, y, truncate(strings.Join(parts, " | "), width-2), statusStyle)
}

// drawBox fills bounds, leaving a one-cell gutter on the right and bottom,
// and centers label on its middle row.
func drawBox(b backend.Backend, bounds grid.Bounds, fill rune, style backend.Style, label string) {
	r := toRect(bounds, true)
	if r.Right <= r.Left || r.Bottom <= r.Top {
		return
	}
	b.Fill(r, backend.Cell{Rune: fill, Style: style})
	if label == "" {
		return
	}
	label = truncate(label, r.Right-r.Left)
	x := r.Left + (r.Right-r.Left-len([]rune(label)))/2
	y := r.Top + (r.Bottom-r.Top-1)/2
	backend.DrawText(b, x, y, label, style)
}

func slotBounds(origin, pos grid.Point, g grid.Settings) grid.Bounds {
	return grid.Rect(origin.X+pos.X, origin.Y+pos.Y, g.ColumnWidth, g.RowHeight)
}

// toRect converts bounds to whole cells.
func toRect(b grid.Bounds, gutter bool) backend.Rect {
	r := backend.Rect{
		Left:   int(math.Round(b.Left)),
		Top:    int(math.Round(b.Top)),
		Right:  int(math.Round(b.Right)),
		Bottom: int(math.Round(b.Bottom)),
	}
	if gutter {
		r.Right--
		r.Bottom--
	}
	return r
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
