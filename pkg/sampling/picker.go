package sampling

import (
	"errors"
	"fmt"
)

// ErrIndexNotFound is returned when no area bucket contains the target.
var ErrIndexNotFound = errors.New("cannot find triangle for area")

// PickTriangle returns the leftmost index i with cum[i] >= target and
// (i == 0 or cum[i-1] < target). Triangle i owns (cum[i-1], cum[i]];
// triangle 0 owns [0, cum[0]].
func PickTriangle(cum []float64, target float64) (uint32, error) {
	if len(cum) == 0 || target < 0 || target > cum[len(cum)-1] || target != target {
		return 0, fmt.Errorf("%w: %v", ErrIndexNotFound, target)
	}

	lo, hi := 0, len(cum)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case cum[mid] >= target && (mid == 0 || cum[mid-1] < target):
			return uint32(mid), nil
		case target <= cum[mid]:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrIndexNotFound, target)
}
