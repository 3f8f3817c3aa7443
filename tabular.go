package toon

// TabularFields returns the field names shared by every element of l when l
// qualifies for tabular form: it is non-empty, every element is a non-empty
// Map whose values are all scalars, and every Map has exactly the same keys
// in exactly the same order. Keys are never reordered to find a match.
func TabularFields(l List) ([]string, bool) {
	if len(l) == 0 {
		return nil, false
	}

	first, ok := l[0].(*Map)
	if !ok || first.Len() == 0 || !allScalar(first) {
		return nil, false
	}
	fields := first.Keys()

	for _, v := range l[1:] {
		m, ok := v.(*Map)
		if !ok || m.Len() != len(fields) || !allScalar(m) {
			return nil, false
		}
		for i, f := range m.fields {
			if f.Key != fields[i] {
				return nil, false
			}
		}
	}

	return fields, true
}

func allScalar(m *Map) bool {
	for _, f := range m.fields {
		if !isScalar(f.Value) {
			return false
		}
	}
	return true
}
