package utils

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Contains(val int) bool {
	for _, ival := range I {
		if ival == val {
			return true
		}
	}
	return false
}

// InverseMap returns a full-length map from global index to position within I,
// with -1 marking globals not present in I.
func (I Index) InverseMap(fullLen int) (inv Index) {
	inv = make(Index, fullLen)
	for i := range inv {
		inv[i] = -1
	}
	for pos, val := range I {
		inv[val] = pos
	}
	return
}
