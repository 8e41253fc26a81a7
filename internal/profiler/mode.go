package profiler

import (
	"factcheck/domain/table"
)

// Mode returns the most frequent non-null value. When several values share the
// highest frequency, the one that appears first in source order wins. ok is
// false when there are no non-null values.
func Mode(values []table.Value) (table.Value, bool) {
	counts := make(map[string]int, len(values))
	best := 0
	for _, v := range values {
		if v.IsNull {
			continue
		}
		k := v.Key()
		counts[k]++
		if counts[k] > best {
			best = counts[k]
		}
	}
	if best == 0 {
		return table.Value{}, false
	}

	for _, v := range values {
		if !v.IsNull && counts[v.Key()] == best {
			return v, true
		}
	}
	return table.Value{}, false
}
