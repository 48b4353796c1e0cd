package state

// ListCursor tracks the selected row of a list
type ListCursor struct {
	index int
}

// Index returns the selected row
func (c *ListCursor) Index() int {
	return c.index
}

// Move shifts the selection by delta within a list of n rows
func (c *ListCursor) Move(delta, n int) {
	c.index += delta
	c.Clamp(n)
}

// Clamp keeps the selection inside a list of n rows
func (c *ListCursor) Clamp(n int) {
	c.index = min(max(c.index, 0), max(n-1, 0))
}

// Reset selects the first row
func (c *ListCursor) Reset() {
	c.index = 0
}
