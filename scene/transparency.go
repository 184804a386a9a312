package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// SortBackToFront returns positions ordered farthest-first from eye, the
// order blended geometry has to be drawn in. Positions at equal distance keep
// their relative order. The input slice is not modified.
func SortBackToFront(eye mgl32.Vec3, positions []mgl32.Vec3) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(positions))
	copy(out, positions)
	sort.SliceStable(out, func(a, b int) bool {
		return eye.Sub(out[a]).LenSqr() > eye.Sub(out[b]).LenSqr()
	})
	return out
}
