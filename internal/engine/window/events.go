package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/poolviz/internal/engine/input"
)

func key(sym sdl.Keycode) input.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_1, sdl.K_KP_1:
		return input.Key1
	case sdl.K_2, sdl.K_KP_2:
		return input.Key2
	case sdl.K_3, sdl.K_KP_3:
		return input.Key3
	case sdl.K_m:
		return input.KeyM
	case sdl.K_g:
		return input.KeyG
	case sdl.K_l:
		return input.KeyL
	case sdl.K_F12:
		return input.KeyF12
	}
	return input.KeyUnknown
}

func button(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return 0
}

// PollEvents drains the SDL queue into dst and returns it. Mouse
// positions are scaled to drawable pixels.
func (w *Window) PollEvents(dst []input.Event) []input.Event {
	dst = dst[:0]
	sx, sy := w.pixelScale()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				dst = append(dst, input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			dst = append(dst, input.Event{Type: typ, Key: key(e.Keysym.Sym)})

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(float32(e.X) * sx),
				MouseY: int(float32(e.Y) * sy),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = input.EventMouseUp
			}
			dst = append(dst, input.Event{
				Type:   typ,
				MouseX: int(float32(e.X) * sx),
				MouseY: int(float32(e.Y) * sy),
				Button: button(e.Button),
			})

		case *sdl.MouseWheelEvent:
			dst = append(dst, input.Event{Type: input.EventMouseWheel, Wheel: float32(e.Y)})
		}
	}
	return dst
}

func (w *Window) pixelScale() (float32, float32) {
	ww, wh := w.GetSize()
	dw, dh := w.DrawableSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	return float32(dw) / float32(ww), float32(dh) / float32(wh)
}
