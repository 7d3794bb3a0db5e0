// Package backend is a registry of gp.Backend implementations.
//
// Backend packages register a factory from init(), so importing them is
// enough to make them selectable:
//
//	import (
//		"github.com/gogpu/gp/backend"
//		_ "github.com/gogpu/gp/backend/native"
//	)
//
//	b, err := backend.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctx, err := gp.New(b)
//
// # Backend Selection
//
// Default tries the backends in priority order ("native", then
// "recording") and falls back to any other registered backend. Get creates
// a specific backend by name.
package backend
