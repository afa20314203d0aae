package controllers

import "io"

// Command is a user action dispatched to a Session.
type Command interface {
	commandName() string
}

// DragMove moves the axis line to screen column X.
type DragMove struct{ X int }

type DragRelease struct{}

type SwitchSide struct{}

// SetAxis places the axis at an image column.
type SetAxis struct{ Axis int }

type Load struct{ Path string }

// LoadFrom loads from an already opened reader, such as a dialog result.
type LoadFrom struct {
	Reader io.Reader
	Name   string
}

type Save struct{ Path string }

// SaveTo saves to an already opened writer. A writer that is also an
// io.Closer is closed.
type SaveTo struct {
	Writer io.Writer
	Name   string
}

func (DragMove) commandName() string    { return "drag_move" }
func (DragRelease) commandName() string { return "drag_release" }
func (SwitchSide) commandName() string  { return "switch_side" }
func (SetAxis) commandName() string     { return "set_axis" }
func (Load) commandName() string        { return "load" }
func (LoadFrom) commandName() string    { return "load_from" }
func (Save) commandName() string        { return "save" }
func (SaveTo) commandName() string      { return "save_to" }
