// Package render maps a device state snapshot onto a frame of draw
// primitives. Rendering is pure: it never mutates the state, and the same
// state always produces an identical frame.
package render

import (
	"fmt"

	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/video"
)

const (
	titleBarHeight = 16
	fieldListTop   = 28
	fieldRowHeight = 22
	statusBarTop   = video.FramebufferHeight - 14
)

var fields = []device.Field{
	device.FieldMoney,
	device.FieldTrainerID,
	device.FieldTimePlayed,
	device.FieldGender,
}

// Render produces the frame for a state snapshot. Primitives are pushed
// back-to-front, so the display can composite them naively.
func Render(s *device.State) *video.Frame {
	f := video.NewFrame()
	f.Push(video.Fill{Color: video.White})

	f.Push(video.Rect{X: 0, Y: 0, W: video.FramebufferWidth, H: titleBarHeight, Color: video.TitleRed})
	f.Push(video.Text{X: video.FramebufferWidth / 2, Y: 4, Color: video.White, Content: "POKEDIT", Center: true})

	if s.Game() == nil {
		f.Push(video.Text{
			X: video.FramebufferWidth / 2, Y: 76,
			Color: video.DarkGrey, Content: "NO SAVE LOADED", Center: true,
		})
		renderStatusBar(f, s)
		return f
	}

	for i, field := range fields {
		y := fieldListTop + i*fieldRowHeight
		if field == s.Field() {
			f.Push(video.Rect{X: 6, Y: y - 3, W: video.FramebufferWidth - 12, H: 14, Color: video.Highlight})
			if s.BlinkOn() {
				f.Push(video.Text{X: 10, Y: y, Color: video.Black, Content: ">"})
			}
		}
		f.Push(video.Text{X: 22, Y: y, Color: video.DarkGrey, Content: field.String()})

		value := fieldValue(s, field)
		f.Push(video.Text{
			X: video.FramebufferWidth - 10 - len(value)*video.GlyphWidth,
			Y: y, Color: video.Black, Content: value,
		})
	}

	renderStatusBar(f, s)
	return f
}

func fieldValue(s *device.State, field device.Field) string {
	g := s.Game()
	switch field {
	case device.FieldMoney:
		return fmt.Sprintf("%d", g.Money())
	case device.FieldTrainerID:
		id := g.TrainerID()
		return fmt.Sprintf("%05d/%05d", id.Public, id.Private)
	case device.FieldTimePlayed:
		return g.TimePlayed().String()
	case device.FieldGender:
		gender, err := g.Gender()
		if err != nil {
			return "?"
		}
		return gender.String()
	}
	return ""
}

func renderStatusBar(f *video.Frame, s *device.State) {
	f.Push(video.Rect{
		X: 0, Y: statusBarTop,
		W: video.FramebufferWidth, H: video.FramebufferHeight - statusBarTop,
		Color: video.LightGrey,
	})

	left := "NO SAVE"
	if g := s.Game(); g != nil {
		left = g.Version().String()
	}
	f.Push(video.Text{X: 4, Y: statusBarTop + 3, Color: video.Black, Content: left})

	right := ""
	if s.Step() != 1 {
		right = fmt.Sprintf("X%d ", s.Step())
	}
	if s.Dirty() {
		right += "*"
	}
	if right != "" {
		f.Push(video.Text{
			X: video.FramebufferWidth - 4 - len(right)*video.GlyphWidth,
			Y: statusBarTop + 3, Color: video.Black, Content: right,
		})
	}
}
