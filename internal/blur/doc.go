// Package blur implements the Gaussian region blur and the circular
// compositor that anonymizes a clicked area of an image.
//
// # Gaussian
//
// Gaussian is a pure function: it takes a rectangular region and an odd
// kernel size and returns a blurred copy of identical dimensions. The standard
// deviation is kernelSize/3. Edges use clamped extension, so blurring the
// same region twice with the same kernel always gives the same result.
//
// # Compositor
//
// Compositor.Apply blurs a disc of pixels around a point. The blur is computed
// over the disc's clamped bounding box and then cut out with a binary circular
// mask: pixels inside the disc take the blurred value, everything else keeps
// its original value. The boundary is hard, not feathered.
//
// Before writing, Apply hands a full-image snapshot to a Recorder so the edit
// can be undone. A click whose bounding box misses the image entirely is a
// no-op: nothing is recorded and the buffer is untouched.
package blur
