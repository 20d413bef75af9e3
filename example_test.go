package tfcache_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tfcache"
	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/internal/config"
)

func Example() {
	c := tfcache.NewCore(nil, config.Config{
		Retention:       config.DefaultRetention,
		BackfillWindow:  config.DefaultBackfillWindow,
		StoreTimeout:    config.DefaultStoreTimeout,
		MaxElapsedRetry: config.DefaultMaxElapsedRetry,
	})
	reg := c.Registry()
	mapFrame := reg.ResolveOrInsert("/map")
	baseFrame := reg.ResolveOrInsert("/base")
	_ = reg.Insert(core.TransformStorage{
		Parent:      mapFrame,
		Child:       baseFrame,
		Translation: core.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: tfcache.SecondsToNanos(1),
	})

	out, err := c.LookupTransform(context.Background(), "/map", "/base", tfcache.SecondsToNanos(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out.Translation.X, out.Translation.Y, out.Translation.Z)
	// Output: 1 2 3
}
