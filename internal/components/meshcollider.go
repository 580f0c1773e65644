package components

import (
	"math"

	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// NewTriangle computes the normal from the winding (counter-clockwise is front).
func NewTriangle(v0, v1, v2 rl.Vector3) Triangle {
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0))
	if rl.Vector3Length(n) > 1e-12 {
		n = rl.Vector3Normalize(n)
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: n}
}

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min, Max rl.Vector3
}

// EmptyAABB is an inverted box that any Extend call replaces.
func EmptyAABB() AABB {
	return AABB{
		Min: rl.Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32},
		Max: rl.Vector3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32},
	}
}

func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: vector3Min(a.Min, p), Max: vector3Max(a.Max, p)}
}

func (a AABB) Union(b AABB) AABB {
	return AABB{Min: vector3Min(a.Min, b.Min), Max: vector3Max(a.Max, b.Max)}
}

func (a AABB) Expand(r float32) AABB {
	e := rl.Vector3{X: r, Y: r, Z: r}
	return AABB{Min: rl.Vector3Subtract(a.Min, e), Max: rl.Vector3Add(a.Max, e)}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// BVHNode is a node in the bounding volume hierarchy
type BVHNode struct {
	Bounds    AABB
	Left      *BVHNode
	Right     *BVHNode
	Triangles []int // indices into the triangle array (only for leaf nodes)
}

// MeshCollider is a static triangle soup in world space. Moving the object
// after Build does not move the collider.
type MeshCollider struct {
	engine.BaseComponent
	Triangles []Triangle
	Root      *BVHNode
}

func NewMeshCollider() *MeshCollider {
	return &MeshCollider{}
}

// Build takes world-space triangles and builds the BVH over them.
func (m *MeshCollider) Build(tris []Triangle) {
	m.Triangles = tris
	m.Root = nil
	if len(tris) == 0 {
		return
	}
	indices := make([]int, len(tris))
	for i := range indices {
		indices[i] = i
	}
	m.Root = m.buildBVHNode(indices, 0)
}

// Built reports whether the collider has geometry to query.
func (m *MeshCollider) Built() bool {
	return m.Root != nil
}

func (m *MeshCollider) Bounds() AABB {
	if m.Root == nil {
		return EmptyAABB()
	}
	return m.Root.Bounds
}

func (m *MeshCollider) buildBVHNode(indices []int, depth int) *BVHNode {
	node := &BVHNode{Bounds: m.computeBounds(indices)}

	if len(indices) <= 4 || depth > 20 {
		node.Triangles = indices
		return node
	}

	// Split on the longest axis
	size := rl.Vector3Subtract(node.Bounds.Max, node.Bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.Triangles = indices
		return node
	}

	node.Left = m.buildBVHNode(indices[:mid], depth+1)
	node.Right = m.buildBVHNode(indices[mid:], depth+1)
	return node
}

func (m *MeshCollider) computeBounds(indices []int) AABB {
	bounds := EmptyAABB()
	for _, idx := range indices {
		tri := &m.Triangles[idx]
		bounds = bounds.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return bounds
}

func centroid(t *Triangle) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

// partitionTriangles splits around the mean centroid and returns the split index.
func (m *MeshCollider) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += getAxisValue(centroid(&m.Triangles[idx]), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if getAxisValue(centroid(&m.Triangles[indices[left]]), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// Query appends the indices of triangles whose node bounds overlap box.
func (m *MeshCollider) Query(box AABB, out []int) []int {
	return queryBVH(m.Root, box, out)
}

func queryBVH(node *BVHNode, query AABB, out []int) []int {
	if node == nil || !node.Bounds.Intersects(query) {
		return out
	}
	if node.Triangles != nil {
		return append(out, node.Triangles...)
	}
	out = queryBVH(node.Left, query, out)
	return queryBVH(node.Right, query, out)
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Min(float64(a.X), float64(b.X))),
		Y: float32(math.Min(float64(a.Y), float64(b.Y))),
		Z: float32(math.Min(float64(a.Z), float64(b.Z))),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Max(float64(a.X), float64(b.X))),
		Y: float32(math.Max(float64(a.Y), float64(b.Y))),
		Z: float32(math.Max(float64(a.Z), float64(b.Z))),
	}
}
