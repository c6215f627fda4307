package form

import "sync"

// A Widget is anything on screen that shows one field as text.
type Widget interface {
	Text() string
	SetText(text string)
}

// Binding keeps a set of widgets and a State in step, in both directions. The State is the live model: every edit
// is copied into it as it happens, and every change to it is rendered back.
type Binding struct {
	state    *State
	widgets  map[Field]Widget
	schedule func(func())

	mu        sync.Mutex
	rendering bool
}

// Bind renders the current State into widgets, then observes it. Changes are rendered through schedule, which must
// run the function on whichever thread owns the widgets.
func Bind(state *State, widgets map[Field]Widget, schedule func(func())) *Binding {
	b := &Binding{
		state:    state,
		widgets:  widgets,
		schedule: schedule,
	}
	for f := range widgets {
		b.Refresh(f)
	}
	state.Observe(func(f Field, _ string) {
		if _, ok := b.widgets[f]; ok {
			b.schedule(func() { b.Refresh(f) })
		}
	})
	return b
}

// Edited copies the text of the field's widget into the State. Call it whenever the user changes the widget.
func (b *Binding) Edited(f Field) {
	w, ok := b.widgets[f]
	if !ok || b.isRendering() {
		return
	}
	b.state.Set(f, w.Text())
}

// Refresh renders the State's current value of f. The value is read at render time, so a refresh that was queued
// behind newer edits never puts an old value back.
func (b *Binding) Refresh(f Field) {
	w, ok := b.widgets[f]
	if !ok {
		return
	}
	value := b.state.Get(f)
	if w.Text() == value {
		return
	}
	b.setRendering(true)
	defer b.setRendering(false)
	w.SetText(value)
}

func (b *Binding) isRendering() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rendering
}

func (b *Binding) setRendering(rendering bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rendering = rendering
}
