package groupsort

// compareRows lexicographically compares row i of a against row j of b:
// group keys in declared order, then time, ant1, ant2. a and b may be
// the same shard or different ones (both must share group-column
// count). Returns -1, 0 or 1.
func compareRows(a *GroupSortData, i int, b *GroupSortData, j int) int {
	for g := range a.groups {
		vi, vj := a.groups[g].Value(i), b.groups[g].Value(j)
		if vi != vj {
			return cmpInt32(vi, vj)
		}
	}
	if ti, tj := a.time.Value(i), b.time.Value(j); ti != tj {
		return cmpFloat64(ti, tj)
	}
	if a1, a2 := a.ant1.Value(i), b.ant1.Value(j); a1 != a2 {
		return cmpInt32(a1, a2)
	}
	return cmpInt32(a.ant2.Value(i), b.ant2.Value(j))
}

func cmpInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// less reports whether row i sorts before row j within the same shard.
func (d *GroupSortData) less(i, j int) bool {
	return compareRows(d, i, d, j) < 0
}
