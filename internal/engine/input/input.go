// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shaderbasics/internal/engine/control"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
}

// VisibilityKeys toggle the visibility of scene objects 0, 1 and 2.
var VisibilityKeys = []sdl.Scancode{sdl.SCANCODE_F3, sdl.SCANCODE_F4, sdl.SCANCODE_F5}

// Input handles all input processing.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			key := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				i.held[key] = true
				i.events = append(i.events, Event{Type: EventKeyDown, Key: key, Repeat: e.Repeat != 0})
			} else if e.Type == sdl.KEYUP {
				delete(i.held, key)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
			}
		}
	}

	return quit
}

// Resized returns the last window size reported during the frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

// IsKeyPressed checks if a key went down this frame, ignoring auto-repeat.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld checks if a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Controls maps the frame's keyboard state to camera and render controls.
func (i *Input) Controls() control.Controls {
	c := control.Controls{
		Forward:   i.IsKeyHeld(sdl.SCANCODE_W),
		Backward:  i.IsKeyHeld(sdl.SCANCODE_S),
		Left:      i.IsKeyHeld(sdl.SCANCODE_A),
		Right:     i.IsKeyHeld(sdl.SCANCODE_D),
		YawLeft:   i.IsKeyHeld(sdl.SCANCODE_LEFT),
		YawRight:  i.IsKeyHeld(sdl.SCANCODE_RIGHT),
		PitchUp:   i.IsKeyHeld(sdl.SCANCODE_UP),
		PitchDown: i.IsKeyHeld(sdl.SCANCODE_DOWN),

		ToggleWireframe: i.IsKeyPressed(sdl.SCANCODE_F1),
		ToggleCulling:   i.IsKeyPressed(sdl.SCANCODE_F2),

		Escape:  i.IsKeyPressed(sdl.SCANCODE_ESCAPE),
		Confirm: i.IsKeyPressed(sdl.SCANCODE_Y),
		Cancel:  i.IsKeyPressed(sdl.SCANCODE_N),
	}
	for idx, key := range VisibilityKeys {
		if i.IsKeyPressed(key) {
			c.ToggleVisible = append(c.ToggleVisible, idx)
		}
	}
	return c
}
