package tfcache

import "github.com/katalvlaran/tfcache/core"

// StampedTransform is a rigid transform between two named frames at a point
// in time — the result of LookupTransform and its dual-time variant.
type StampedTransform struct {
	Translation core.Vector3
	Rotation    core.Quaternion
	TimestampNS int64
	TargetFrame string
	SourceFrame string
}

// Point3 is a point in R^3, expressed in whatever frame its enclosing
// stamped type names.
type Point3 struct {
	X, Y, Z float64
}

// PointStamped is a point tagged with the frame it's expressed in and the
// time it was observed or is requested at.
type PointStamped struct {
	Point       Point3
	Frame       string
	TimestampNS int64
}

// Pose is a position and orientation, expressed in whatever frame its
// enclosing stamped type names.
type Pose struct {
	Position    Point3
	Orientation core.Quaternion
}

// PoseStamped is a Pose tagged with the frame it's expressed in and the time
// it was observed or is requested at.
type PoseStamped struct {
	Pose        Pose
	Frame       string
	TimestampNS int64
}
