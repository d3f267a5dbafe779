// Package raster provides the mutable pixel grid edited by a blur session.
//
// A Buffer owns a zero-origin *image.NRGBA. Its width and height never change
// after construction; every read and write is checked against them.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Snapshots
//
// Snapshot returns a deep copy with its own pixel storage. Mutating the live
// buffer after a snapshot never changes the snapshot, which is what makes it
// safe to keep snapshots in an undo history.
//
// # Masks
//
// A Mask is a binary per-pixel classification over a local coordinate space.
// Select combines two equally sized pixel grids by taking the first source
// where the mask is set and the second everywhere else. There is no partial
// coverage: a pixel comes from exactly one source.
//
// # Thread Safety
//
// Buffer is not safe for concurrent mutation. A session owns its live buffer
// exclusively and drives it from a single goroutine.
package raster
