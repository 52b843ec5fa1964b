// Package crt holds the CRT filter model: the enumerations a session cycles
// through, colour decoding, the internal render resolution, the shadow-mask
// registry and the [Filters] parameter set read by the drawer.
//
// All cycling goes through explicit variant lists, so adding a variant only
// means appending it to the list:
//
//	f := crt.NewFilters(1)
//	f.ColorChannels = f.ColorChannels.Next()  // horizontal overlapping
//	f.SetLayering(f.LayeringKind.Next())      // Solid only
package crt
