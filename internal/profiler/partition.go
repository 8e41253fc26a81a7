package profiler

import (
	"factcheck/domain/table"
)

// TypePartition splits column names by whether min/max/mean/median use numeric
// semantics. Both lists keep source order and together hold every column once.
type TypePartition struct {
	Numeric    []string
	NonNumeric []string
	numeric    map[string]bool
}

// Partition splits descriptors by their type tag
func Partition(descriptors []table.Descriptor) TypePartition {
	p := TypePartition{
		Numeric:    make([]string, 0, len(descriptors)),
		NonNumeric: make([]string, 0, len(descriptors)),
		numeric:    make(map[string]bool, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.Type.IsNumeric() {
			p.Numeric = append(p.Numeric, d.Name)
			p.numeric[d.Name] = true
		} else {
			p.NonNumeric = append(p.NonNumeric, d.Name)
		}
	}
	return p
}

// IsNumeric reports whether the named column is in the numeric partition
func (p TypePartition) IsNumeric(name string) bool {
	return p.numeric[name]
}

// Len returns the total number of partitioned columns
func (p TypePartition) Len() int {
	return len(p.Numeric) + len(p.NonNumeric)
}
