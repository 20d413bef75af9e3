package core

import "errors"

// Sentinel errors for core operations. Query-time errors are wrapped with
// additional context by callers (pathsearch, backfill, the tfcache façade);
// ingestion-time errors are recovered locally per spec and never escape here.
var (
	// ErrEmptyFrameID indicates an empty frame ID was supplied.
	ErrEmptyFrameID = errors.New("core: frame ID is empty")

	// ErrSelfTransform indicates a sample's parent and child frame are identical.
	ErrSelfTransform = errors.New("core: parent and child frame are identical")

	// ErrInvalidQuaternion indicates a non-finite or near-zero-length quaternion.
	ErrInvalidQuaternion = errors.New("core: invalid quaternion")

	// ErrNoData indicates a TimeCache holds no samples.
	ErrNoData = errors.New("core: no data in cache")

	// ErrOldData indicates an insert was rejected for being older than newest-Δ.
	ErrOldData = errors.New("core: sample older than retention window")

	// ErrFrameNotFound indicates a FrameHandle does not resolve to a known Frame.
	ErrFrameNotFound = errors.New("core: frame not found")

	// ErrNoSuchParent indicates a Frame has no TimeCache for the given parent.
	ErrNoSuchParent = errors.New("core: no cache for that parent frame")
)

// Vector3 is a translation in R^3, stored as float64 per spec.md §9's
// "Numeric semantics".
type Vector3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Lerp linearly interpolates between v and o at fraction frac ∈ [0,1].
func (v Vector3) Lerp(o Vector3, frac float64) Vector3 {
	return Vector3{
		X: v.X + (o.X-v.X)*frac,
		Y: v.Y + (o.Y-v.Y)*frac,
		Z: v.Z + (o.Z-v.Z)*frac,
	}
}

// Quaternion is a rotation, stored as (X, Y, Z, W). Callers are responsible
// for supplying unit-length quaternions (spec.md §3); Validate only rejects
// non-finite and near-zero-length values.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion is the rotation that leaves vectors unchanged.
var IdentityQuaternion = Quaternion{X: 0, Y: 0, Z: 0, W: 1}

// FrameHandle is a stable, non-owning reference to a Frame inside a
// FrameRegistry's arena. Zero is reserved and never assigned to a Frame.
type FrameHandle uint32

// invalidHandle is the reserved zero handle; FrameRegistry.Get rejects it.
const invalidHandle FrameHandle = 0

// TransformStorage is one rigid-transform sample on a directed parent→child
// edge at a point in time. It is immutable once constructed; TimeCache never
// mutates a stored sample, only evicts it.
type TransformStorage struct {
	Translation Vector3
	Rotation    Quaternion
	TimestampNS int64
	Parent      FrameHandle
	Child       FrameHandle
}

// Inverse returns the rigid transform that undoes ts: (-q⁻¹·t, q⁻¹), with
// Parent/Child swapped and the timestamp preserved.
func (ts TransformStorage) Inverse() TransformStorage {
	qInv := ts.Rotation.Conjugate()
	return TransformStorage{
		Translation: qInv.Rotate(ts.Translation).Scale(-1),
		Rotation:    qInv,
		TimestampNS: ts.TimestampNS,
		Parent:      ts.Child,
		Child:       ts.Parent,
	}
}

// Compose returns the rigid transform equivalent to applying ts first, then
// other: other ∘ ts. ts is the inner (child-side) leg and other the outer
// (parent-side) leg, so other.Child must equal ts.Parent; the result spans
// other.Parent to ts.Child. The timestamp of the result is other's.
func (ts TransformStorage) Compose(other TransformStorage) TransformStorage {
	return TransformStorage{
		Translation: other.Rotation.Rotate(ts.Translation).Add(other.Translation),
		Rotation:    other.Rotation.Mul(ts.Rotation),
		TimestampNS: other.TimestampNS,
		Parent:      other.Parent,
		Child:       ts.Child,
	}
}
