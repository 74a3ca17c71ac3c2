// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package daterange

// Picker is the contract of a date-picker widget. The coordinator only talks
// to pickers through this interface.
type Picker interface {
	// OnChange registers the handler called when the user selects a date.
	OnChange(func(Date))
	// SetSelectable installs the predicate deciding which days are enabled.
	SetSelectable(func(Date) bool)
	// SetValue programmatically selects d and re-renders.
	SetValue(d Date)
	// Fill re-renders using the current value and predicate.
	Fill()
	Hide()
	Focus()
	Value() Date
}

// Field is an in-memory Picker. It keeps the widget state a browser picker
// would keep (value, popup visibility, focus) so that the coordinator can be
// driven from a terminal prompt or a test.
type Field struct {
	Name string

	value      Date
	visible    bool
	focused    bool
	renders    int
	selectable func(Date) bool
	handlers   []func(Date)
}

func NewField(name string, initial Date) *Field {
	return &Field{Name: name, value: initial}
}

func (f *Field) OnChange(fn func(Date)) {
	f.handlers = append(f.handlers, fn)
}

func (f *Field) SetSelectable(fn func(Date) bool) {
	f.selectable = fn
}

func (f *Field) SetValue(d Date) {
	f.value = d
	f.renders++
}

func (f *Field) Fill() {
	f.renders++
}

// Hide closes the popup. The field loses focus with it, as focus moves on
// to whatever the coordinator focuses next.
func (f *Field) Hide() {
	f.visible = false
	f.focused = false
}

func (f *Field) Focus() {
	f.focused = true
	f.visible = true
}

// Open shows the popup the way clicking the input does.
func (f *Field) Open() {
	f.focused = true
	f.visible = true
}

// Blur drops focus, closing the popup without selecting.
func (f *Field) Blur() {
	f.focused = false
	f.visible = false
}

func (f *Field) Value() Date {
	return f.value
}

func (f *Field) Visible() bool { return f.visible }
func (f *Field) Focused() bool { return f.focused }

// Renders counts SetValue and Fill calls.
func (f *Field) Renders() int { return f.renders }

// Selectable reports whether d is enabled in the picker.
func (f *Field) Selectable(d Date) bool {
	return f.selectable == nil || f.selectable(d)
}

// Select simulates the user clicking a day. Disabled days are ignored and
// false is returned.
func (f *Field) Select(d Date) bool {
	if !f.Selectable(d) {
		return false
	}
	f.value = d
	for _, fn := range f.handlers {
		fn(d)
	}
	return true
}

// Emit fires the change handlers without consulting the predicate, like a
// widget that does not honour disabled days.
func (f *Field) Emit(d Date) {
	f.value = d
	for _, fn := range f.handlers {
		fn(d)
	}
}
