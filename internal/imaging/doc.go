// Package imaging connects edit buffers to files and to the screen.
//
// It holds the pieces of the blur tool that deal with encoded images and
// display rather than with editing:
//
//   - Load decodes a file into a raster.Buffer (LoadFailure is ErrLoad)
//   - Save and OutputPath write the edited buffer next to the original
//   - RenderPreview and EncodePreview draw the brush ring and status label
//     over a copy of the buffer and scale it to fit a display
//   - Zoom magnifies part of the buffer for precise placement of clicks
//   - SampleColor reads back one pixel in several color representations
//   - CompareRegion measures how far an area has moved from the loaded image
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Preview coordinates are image coordinates; scaling for display happens last.
//
// # Supported Formats
//
// PNG, JPEG, GIF, TIFF and BMP, chosen by file extension on save. JPEG input
// is auto-oriented from its EXIF tag.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing, unreadable or undecodable input files (wrapping ErrLoad)
//   - Coordinates outside the image (wrapping raster.ErrOutOfBounds)
//   - Unsupported output extensions and write failures
package imaging
