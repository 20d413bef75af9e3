package core_test

import (
	"fmt"

	"github.com/katalvlaran/tfcache/core"
)

func Example() {
	reg := core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
	mapFrame := reg.ResolveOrInsert("/map")
	baseFrame := reg.ResolveOrInsert("/base")

	_ = reg.Insert(core.TransformStorage{
		Parent:      mapFrame,
		Child:       baseFrame,
		Translation: core.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 1_000_000_000,
	})

	frame, _ := reg.Get(baseFrame)
	tc, _ := frame.Cache(mapFrame)
	sample, _ := tc.GetData(1_000_000_000, mapFrame)
	fmt.Println(sample.Translation)
	// Output: {1 2 3}
}
