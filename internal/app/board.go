package app

import (
	"fmt"
	"math"

	"github.com/dshills/griddrop/internal/config"
	"github.com/dshills/griddrop/internal/dropzone"
	"github.com/dshills/griddrop/internal/event"
	"github.com/dshills/griddrop/internal/grid"
	"github.com/dshills/griddrop/internal/input/pointer"
	"github.com/dshills/griddrop/internal/traverse"
)

// Board layout in cells.
const (
	boardLeft = 1
	boardTop  = 2
)

// Reorder is a committed move of one item.
type Reorder struct {
	Item        string
	SourceID    string
	SourceIndex int
	TargetID    string
	TargetIndex int
}

// Board is the demo model: a row of drop zones, each holding an ordered
// list of item ids. It is only used from the event loop goroutine.
type Board struct {
	coord *traverse.Coordinator
	cfg   config.ZonesConfig
	zones []*boardZone
	byID  map[string]*boardZone

	active   *dropzone.Item
	activeID string

	onReorder func(Reorder)
}

type boardZone struct {
	zone   *dropzone.Zone
	items  []string
	bounds grid.Bounds
}

// NewBoard creates the zones named by cfg, each filled with cfg.Items items.
// Zones have no size until Layout is called.
func NewBoard(cfg config.ZonesConfig, bus *event.Bus, logger traverse.Logger) *Board {
	b := &Board{
		cfg:  cfg,
		byID: make(map[string]*boardZone, len(cfg.Names)),
	}
	opts := []traverse.Option{traverse.WithBus(bus)}
	if logger != nil {
		opts = append(opts, traverse.WithLogger(logger))
	}
	b.coord = traverse.New(b.apply, opts...)

	for _, name := range cfg.Names {
		bz := &boardZone{items: make([]string, cfg.Items)}
		for i := range bz.items {
			bz.items[i] = fmt.Sprintf("%s-%d", name, i+1)
		}
		bz.zone = dropzone.New(b.coord, name, dropzone.Options{
			BoxesPerRow: cfg.BoxesPerRow,
			RowHeight:   cfg.RowHeight,
			Measure:     func() grid.Bounds { return bz.bounds },
		})
		bz.zone.SetCount(len(bz.items))
		b.zones = append(b.zones, bz)
		b.byID[name] = bz
	}
	return b
}

// OnReorder sets the function told about every committed reorder.
func (b *Board) OnReorder(fn func(Reorder)) {
	b.onReorder = fn
}

// Coordinator returns the board's traverse coordinator.
func (b *Board) Coordinator() *traverse.Coordinator {
	return b.coord
}

// Layout places the zones side by side. Every zone is tall enough to hold
// all items of the board.
func (b *Board) Layout() {
	total := 0
	for _, bz := range b.zones {
		total += len(bz.items)
	}
	rows := 1
	if b.cfg.BoxesPerRow > 0 {
		rows = max(1, int(math.Ceil(float64(total)/float64(b.cfg.BoxesPerRow))))
	}

	width := b.cfg.Width()
	height := float64(rows) * b.cfg.RowHeight
	left := float64(boardLeft)
	for _, bz := range b.zones {
		bz.bounds = grid.Rect(left, boardTop, width, height)
		bz.zone.SetBounds(bz.bounds)
		left += width + float64(b.cfg.Gap)
	}
}

// ZoneIDs returns the zone ids, left to right.
func (b *Board) ZoneIDs() []string {
	ids := make([]string, len(b.zones))
	for i, bz := range b.zones {
		ids[i] = bz.zone.ID()
	}
	return ids
}

// Zone returns the zone with the given id.
func (b *Board) Zone(id string) (*dropzone.Zone, bool) {
	bz, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	return bz.zone, true
}

// Items returns a copy of a zone's item order.
func (b *Board) Items(zoneID string) []string {
	bz, ok := b.byID[zoneID]
	if !ok {
		return nil
	}
	return append([]string(nil), bz.items...)
}

// Locate returns the zone and index of an item.
func (b *Board) Locate(itemID string) (zoneID string, index int, ok bool) {
	for _, bz := range b.zones {
		if i := grid.IndexOf(bz.items, itemID); i >= 0 {
			return bz.zone.ID(), i, true
		}
	}
	return "", -1, false
}

// ItemBounds returns where an item is drawn: under the pointer while it is
// dragged, otherwise its resting slot.
func (b *Board) ItemBounds(itemID string) (grid.Bounds, bool) {
	zoneID, index, ok := b.Locate(itemID)
	if !ok {
		return grid.Bounds{}, false
	}
	bz := b.byID[zoneID]
	g := bz.zone.Grid()
	if !g.Valid() {
		return grid.Bounds{}, false
	}

	var pos grid.Point
	if b.active != nil && b.activeID == itemID {
		pos = b.active.Position()
	} else {
		pos = bz.zone.Item(index).Position()
	}
	return grid.Rect(bz.bounds.Left+pos.X, bz.bounds.Top+pos.Y, g.ColumnWidth, g.RowHeight), true
}

// ActiveItem returns the id of the item being dragged, or "".
func (b *Board) ActiveItem() string {
	return b.activeID
}

// Begin starts dragging an item. It returns false for an unknown item or a
// zone that disables dragging.
func (b *Board) Begin(itemID string) bool {
	zoneID, index, ok := b.Locate(itemID)
	if !ok {
		return false
	}
	bz := b.byID[zoneID]
	it := bz.zone.Item(index)
	if !it.Begin() {
		return false
	}
	b.active, b.activeID = it, itemID
	return true
}

// Move follows the pointer offset since the press.
func (b *Board) Move(offset pointer.Coordinates) {
	if b.active != nil {
		b.active.Move(offset)
	}
}

// End drops the active item at the pointer offset since the press.
func (b *Board) End(offset pointer.Coordinates) {
	if b.active == nil {
		return
	}
	it := b.active
	b.clearActive()
	it.End(offset)
}

// Cancel abandons the active drag without reordering.
func (b *Board) Cancel() {
	if b.active == nil {
		return
	}
	it := b.active
	b.clearActive()
	it.Cancel()
}

func (b *Board) clearActive() {
	b.active, b.activeID = nil, ""
}

// SetDisableDrag toggles dragging out of a zone.
func (b *Board) SetDisableDrag(zoneID string, disabled bool) error {
	bz, ok := b.byID[zoneID]
	if !ok {
		return fmt.Errorf("zone %q: %w", zoneID, ErrUnknownZone)
	}
	bz.zone.SetDisableDrag(disabled)
	return nil
}

// apply is the coordinator's change function.
func (b *Board) apply(sourceID string, sourceIndex, targetIndex int, targetID string) {
	src, ok := b.byID[sourceID]
	if !ok || sourceIndex < 0 || sourceIndex >= len(src.items) {
		return
	}
	item := src.items[sourceIndex]

	if targetID == "" || targetID == sourceID {
		items := grid.Swap(src.items, sourceIndex, targetIndex)
		targetIndex = grid.IndexOf(items, item)
		if targetIndex == sourceIndex {
			return
		}
		src.items = items
		targetID = sourceID
	} else {
		dst, ok := b.byID[targetID]
		if !ok {
			return
		}
		src.items, dst.items = grid.Move(src.items, dst.items, sourceIndex, targetIndex)
		dst.zone.SetCount(len(dst.items))
		targetIndex = grid.IndexOf(dst.items, item)
	}
	src.zone.SetCount(len(src.items))

	if b.onReorder != nil {
		b.onReorder(Reorder{
			Item:        item,
			SourceID:    sourceID,
			SourceIndex: sourceIndex,
			TargetID:    targetID,
			TargetIndex: targetIndex,
		})
	}
}

// Close removes every zone from the coordinator.
func (b *Board) Close() {
	b.Cancel()
	for _, bz := range b.zones {
		bz.zone.Close()
	}
}

// itemNode exposes an item to the drag store.
type itemNode struct {
	board *Board
	id    string
}

func (n itemNode) Bounds() grid.Bounds {
	bounds, _ := n.board.ItemBounds(n.id)
	return bounds
}

// zoneNode exposes a zone to the drag store.
type zoneNode struct {
	zone *boardZone
}

func (n zoneNode) Bounds() grid.Bounds {
	return n.zone.bounds
}
