package store

import "github.com/dshills/griddrop/internal/input/pointer"

// ActionType names an action for logging and event topics.
type ActionType string

// Action types.
const (
	ActionDragStart            ActionType = "dragStart"
	ActionDragMove             ActionType = "dragMove"
	ActionDragEnd              ActionType = "dragEnd"
	ActionDragCancel           ActionType = "dragCancel"
	ActionRegisterDroppable    ActionType = "registerDroppable"
	ActionSetDroppableDisabled ActionType = "setDroppableDisabled"
	ActionUnregisterDroppable  ActionType = "unregisterDroppable"
	ActionRegisterDraggable    ActionType = "registerDraggable"
	ActionUnregisterDraggable  ActionType = "unregisterDraggable"
)

// Action is a state transition request. The set of actions is closed.
type Action interface {
	Type() ActionType
	action()
}

// DragStart makes ID the active draggable.
type DragStart struct {
	ID          string
	DroppableID string
	Initial     pointer.Coordinates
}

// DragMove updates the translation of the active draggable.
type DragMove struct {
	Coordinates pointer.Coordinates
}

// DragEnd clears the active draggable after a release.
type DragEnd struct{}

// DragCancel clears the active draggable after a cancellation.
type DragCancel struct{}

// RegisterDroppable adds or replaces a container.
type RegisterDroppable struct {
	Container DroppableContainer
}

// SetDroppableDisabled toggles a container, provided Key still matches.
type SetDroppableDisabled struct {
	ID       string
	Key      string
	Disabled bool
}

// UnregisterDroppable removes a container, provided Key still matches.
type UnregisterDroppable struct {
	ID  string
	Key string
}

// RegisterDraggable adds or replaces a draggable node.
type RegisterDraggable struct {
	Node DraggableNode
}

// UnregisterDraggable removes a draggable node, provided Key still matches.
type UnregisterDraggable struct {
	ID  string
	Key string
}

func (DragStart) Type() ActionType            { return ActionDragStart }
func (DragMove) Type() ActionType             { return ActionDragMove }
func (DragEnd) Type() ActionType              { return ActionDragEnd }
func (DragCancel) Type() ActionType           { return ActionDragCancel }
func (RegisterDroppable) Type() ActionType    { return ActionRegisterDroppable }
func (SetDroppableDisabled) Type() ActionType { return ActionSetDroppableDisabled }
func (UnregisterDroppable) Type() ActionType  { return ActionUnregisterDroppable }
func (RegisterDraggable) Type() ActionType    { return ActionRegisterDraggable }
func (UnregisterDraggable) Type() ActionType  { return ActionUnregisterDraggable }

func (DragStart) action()            {}
func (DragMove) action()             {}
func (DragEnd) action()              {}
func (DragCancel) action()           {}
func (RegisterDroppable) action()    {}
func (SetDroppableDisabled) action() {}
func (UnregisterDroppable) action()  {}
func (RegisterDraggable) action()    {}
func (UnregisterDraggable) action()  {}
