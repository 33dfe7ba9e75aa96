// Package input turns window events into viewer actions: orbit, pan and
// zoom go straight to the camera, everything else comes back as an Action.
package input

import (
	"github.com/Faultbox/poolviz/internal/engine/camera"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	Key1
	Key2
	Key3
	KeyM
	KeyG
	KeyL
	KeyF12
)

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	// DeltaX and DeltaY are the relative motion of a mouse move.
	DeltaX int
	DeltaY int
	Wheel  float32
	Button Button
}

// ActionKind says what the viewer should do after an event.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionResize
	ActionPreset
	ActionCycleMaterial
	ActionToggleGrid
	ActionToggleLanguage
	ActionCapture
	ActionHover
)

// Action is the outcome of one event.
type Action struct {
	Kind   ActionKind
	Preset lighting.Preset
	Width  int
	Height int
	X, Y   int
}

var presetKeys = map[Key]lighting.Preset{
	Key1: lighting.Day,
	Key2: lighting.Sunset,
	Key3: lighting.Night,
}

var keyActions = map[Key]ActionKind{
	KeyEscape: ActionQuit,
	KeyM:      ActionCycleMaterial,
	KeyG:      ActionToggleGrid,
	KeyL:      ActionToggleLanguage,
	KeyF12:    ActionCapture,
}

// Controller drives an orbit camera from mouse input. The left button
// orbits, the right or middle button pans and the wheel zooms.
type Controller struct {
	Camera *camera.OrbitCamera

	orbiting bool
	panning  bool
}

// NewController creates a controller for c.
func NewController(c *camera.OrbitCamera) *Controller {
	return &Controller{Camera: c}
}

// Dragging reports whether a mouse button is held on the scene.
func (c *Controller) Dragging() bool {
	return c.orbiting || c.panning
}

// Handle applies ev to the camera and returns what else should happen.
func (c *Controller) Handle(ev Event) Action {
	switch ev.Type {
	case EventQuit:
		return Action{Kind: ActionQuit}

	case EventWindowResize:
		return Action{Kind: ActionResize, Width: ev.Width, Height: ev.Height}

	case EventKeyDown:
		if p, ok := presetKeys[ev.Key]; ok {
			return Action{Kind: ActionPreset, Preset: p}
		}
		if k, ok := keyActions[ev.Key]; ok {
			return Action{Kind: k}
		}

	case EventMouseDown:
		switch ev.Button {
		case ButtonLeft:
			c.orbiting = true
		case ButtonMiddle, ButtonRight:
			c.panning = true
		}

	case EventMouseUp:
		switch ev.Button {
		case ButtonLeft:
			c.orbiting = false
		case ButtonMiddle, ButtonRight:
			c.panning = false
		}

	case EventMouseMove:
		dx, dy := float32(ev.DeltaX), float32(ev.DeltaY)
		switch {
		case c.orbiting:
			c.Camera.HandleDrag(dx, dy)
		case c.panning:
			c.Camera.HandlePan(dx, dy)
		default:
			return Action{Kind: ActionHover, X: ev.MouseX, Y: ev.MouseY}
		}

	case EventMouseWheel:
		c.Camera.HandleZoom(ev.Wheel)
	}
	return Action{}
}
