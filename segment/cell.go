package segment

import "github.com/phonolab/phonoseg/feature"

// Cell is an aliasable storage location for one feature value.
//
// Sharing is pointer sharing: any number of segments may bind the same *Cell
// for the same feature, and a SetValue through one of them is immediately
// observable through all of the others. A Cell is freed by the garbage
// collector once no segment references it.
type Cell struct {
	val feature.Value
}

// NewCell creates a cell holding v.
func NewCell(v feature.Value) *Cell {
	return &Cell{val: v}
}

// Value returns the stored value. Reading always dereferences to the final
// stored value; nil means "undefined".
func (c *Cell) Value() feature.Value {
	return c.val
}

// SetValue replaces the stored value in place. Every segment sharing this
// cell observes the change.
func (c *Cell) SetValue(v feature.Value) {
	c.val = v
}
