package debugger

// Breakpoint is a paused address. Predefined marks breakpoints seeded from
// the command line rather than added interactively.
type Breakpoint struct {
	Address    uint16
	Predefined bool
}

// Breakpoints holds the breakpoint set in insertion order.
type Breakpoints struct {
	points []Breakpoint
}

// Get returns the breakpoint at an address, if any.
func (b *Breakpoints) Get(address uint16) (Breakpoint, bool) {
	for _, point := range b.points {
		if point.Address == address {
			return point, true
		}
	}
	return Breakpoint{}, false
}

// Contains reports whether any breakpoint exists at an address.
func (b *Breakpoints) Contains(address uint16) bool {
	_, ok := b.Get(address)
	return ok
}

// Insert adds a breakpoint. Returns false without inserting when one
// already exists at the same address.
func (b *Breakpoints) Insert(point Breakpoint) bool {
	if b.Contains(point.Address) {
		return false
	}
	b.points = append(b.points, point)
	return true
}

// Remove deletes every breakpoint at an address, reporting whether any
// existed.
func (b *Breakpoints) Remove(address uint16) bool {
	kept := b.points[:0]
	removed := false
	for _, point := range b.points {
		if point.Address == address {
			removed = true
			continue
		}
		kept = append(kept, point)
	}
	b.points = kept
	return removed
}

// Len returns the number of breakpoints.
func (b *Breakpoints) Len() int {
	return len(b.points)
}

// IsEmpty reports whether no breakpoints are set.
func (b *Breakpoints) IsEmpty() bool {
	return len(b.points) == 0
}

// All returns the breakpoints in insertion order. The slice is shared; the
// caller must not mutate it.
func (b *Breakpoints) All() []Breakpoint {
	return b.points
}
