package input

// Cell is the single source of truth for one field. Each binding owns a
// backing slot that mirrors the canonical value; subscribers are notified
// after every write so views can refresh before the next render.
type Cell struct {
	field       Field
	value       float64
	slots       map[Source]float64
	subscribers []func(src Source, v float64)
}

func newCell(f Field, initial float64) *Cell {
	c := &Cell{
		field: f,
		value: initial,
		slots: make(map[Source]float64, len(f.Bindings)),
	}
	for _, b := range f.Bindings {
		c.slots[b] = initial
	}
	return c
}

// Field returns the field description
func (c *Cell) Field() Field {
	return c.field
}

// Value returns the canonical value
func (c *Cell) Value() float64 {
	return c.value
}

// Slot returns the value shown by a binding
func (c *Cell) Slot(src Source) (float64, bool) {
	v, ok := c.slots[src]
	return v, ok
}

// Subscribe registers fn to run after every write.
// The source passed to fn is the binding that originated the edit.
func (c *Cell) Subscribe(fn func(src Source, v float64)) {
	c.subscribers = append(c.subscribers, fn)
}

// set writes v to the canonical slot and propagates it to every binding
func (c *Cell) set(src Source, v float64) {
	c.value = v
	for b := range c.slots {
		c.slots[b] = v
	}
	for _, fn := range c.subscribers {
		fn(src, v)
	}
}
