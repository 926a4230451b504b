package model

// ColumnState describes whether support columns pin the plank's angle.
// With DoubleColumns the plank is held level, with SingleColumn it is
// held at the maximum tilt, and with NoColumns the angle is free and
// governed by torque.
type ColumnState int

const (
	DoubleColumns ColumnState = iota
	SingleColumn
	NoColumns
)

func (c ColumnState) String() string {
	switch c {
	case DoubleColumns:
		return "double"
	case SingleColumn:
		return "single"
	case NoColumns:
		return "none"
	default:
		return "unknown"
	}
}
