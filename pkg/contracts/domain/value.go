package domain

import "strconv"

// Value is a single table cell: either a numeric reading or an explicit
// missing marker. A missing value is never conflated with zero.
type Value struct {
	Num     float64 `json:"num"`
	Present bool    `json:"present"`
}

// Number returns a present numeric value.
func Number(f float64) Value {
	return Value{Num: f, Present: true}
}

// Missing returns the explicit missing marker.
func Missing() Value {
	return Value{}
}

// IsMissing reports whether the cell carries no reported value.
func (v Value) IsMissing() bool {
	return !v.Present
}

// String serializes the value for tabular output. Missing values serialize
// as the empty field.
func (v Value) String() string {
	if !v.Present {
		return ""
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}
