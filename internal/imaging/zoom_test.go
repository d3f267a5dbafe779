package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

func TestNamedRegion(t *testing.T) {
	tests := []struct {
		name string
		want image.Rectangle
	}{
		{"top-left", image.Rect(0, 0, 50, 40)},
		{"top-right", image.Rect(50, 0, 100, 40)},
		{"bottom-left", image.Rect(0, 40, 50, 80)},
		{"bottom-right", image.Rect(50, 40, 100, 80)},
		{"top-half", image.Rect(0, 0, 100, 40)},
		{"bottom-half", image.Rect(0, 40, 100, 80)},
		{"left-half", image.Rect(0, 0, 50, 80)},
		{"right-half", image.Rect(50, 0, 100, 80)},
		{"center", image.Rect(25, 20, 75, 60)},
		{"full", image.Rect(0, 0, 100, 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(100, 80, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamedRegion_Unknown(t *testing.T) {
	for _, name := range []string{"invalid", "TOP-LEFT", "middle", ""} {
		if _, err := NamedRegion(100, 100, name); err == nil {
			t.Errorf("NamedRegion(%q) should fail", name)
		}
	}
}

func TestZoom(t *testing.T) {
	buf := createPatternBuffer(100, 100)

	result, err := Zoom(buf, image.Rect(40, 40, 60, 60), 2, PreviewOptions{})
	if err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	if result.Width != 40 || result.Height != 40 {
		t.Errorf("size: got %dx%d, want 40x40", result.Width, result.Height)
	}
	if result.X1 != 40 || result.Y2 != 60 {
		t.Errorf("region: got (%d,%d)-(%d,%d)", result.X1, result.Y1, result.X2, result.Y2)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Region (40,40)-(60,60) straddles all four quadrants; nearest neighbor
	// keeps them crisp when magnified.
	want := []struct {
		x, y int
		c    color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{39, 0, color.NRGBA{0, 255, 0, 255}},
		{0, 39, color.NRGBA{0, 0, 255, 255}},
		{39, 39, color.NRGBA{255, 255, 255, 255}},
	}
	for _, w := range want {
		got := color.NRGBAModel.Convert(img.At(w.x, w.y)).(color.NRGBA)
		if got != w.c {
			t.Errorf("(%d,%d): got %v, want %v", w.x, w.y, got, w.c)
		}
	}
}

func TestZoom_DefaultScale(t *testing.T) {
	buf := raster.NewBuffer(50, 50, color.NRGBA{1, 2, 3, 255})

	result, err := Zoom(buf, image.Rect(0, 0, 30, 20), 0, PreviewOptions{})
	if err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 || result.Scale != 1 {
		t.Errorf("got %dx%d scale %v, want 30x20 scale 1", result.Width, result.Height, result.Scale)
	}
}

func TestZoom_DrawsRing(t *testing.T) {
	buf := raster.NewBuffer(100, 100, color.NRGBA{0, 0, 0, 255})
	cursor := image.Pt(50, 50)

	result, err := Zoom(buf, image.Rect(0, 0, 100, 100), 1, PreviewOptions{Cursor: &cursor, Radius: 20})
	if err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	data, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(70, 50)).(color.NRGBA)
	if got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("ring pixel (70,50): got %v, want green", got)
	}
	if !buf.Equal(raster.NewBuffer(100, 100, color.NRGBA{0, 0, 0, 255})) {
		t.Error("Zoom modified the live buffer")
	}
}

func TestZoom_Invalid(t *testing.T) {
	buf := raster.NewBuffer(50, 50, color.Black)

	tests := []struct {
		name   string
		region image.Rectangle
		scale  float64
		bounds bool
	}{
		{"outside", image.Rect(40, 40, 60, 60), 1, true},
		{"negative", image.Rectangle{Min: image.Pt(-5, 0), Max: image.Pt(10, 10)}, 1, true},
		{"empty", image.Rect(10, 10, 10, 20), 1, false},
		{"swapped", image.Rectangle{Min: image.Pt(20, 20), Max: image.Pt(10, 10)}, 1, false},
		{"negative scale", image.Rect(0, 0, 10, 10), -1, false},
		{"huge scale", image.Rect(0, 0, 10, 10), 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Zoom(buf, tt.region, tt.scale, PreviewOptions{})
			if err == nil {
				t.Fatal("Zoom should fail")
			}
			if tt.bounds && !errors.Is(err, raster.ErrOutOfBounds) {
				t.Errorf("got %v, want raster.ErrOutOfBounds", err)
			}
		})
	}
}

func TestZoom_RingOffsetIntoRegion(t *testing.T) {
	buf := raster.NewBuffer(200, 200, color.NRGBA{0, 0, 0, 255})
	before := buf.Snapshot()
	cursor := image.Pt(110, 100)
	region := image.Rect(100, 80, 160, 140)

	result, err := Zoom(buf, region, 1, PreviewOptions{Cursor: &cursor, Radius: 20})
	if err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	data, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	green := color.NRGBA{0, 255, 0, 255}
	black := color.NRGBA{0, 0, 0, 255}
	// The ring's right edge is at image (130,100), view (30,20). Its left
	// edge at image x=90 falls outside the region.
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{30, 20, green},
		{10, 0, green},
		{10, 20, black},
		{0, 20, black},
	}
	for _, tt := range tests {
		got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
		if got != tt.want {
			t.Errorf("view (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if !buf.Equal(before) {
		t.Error("Zoom modified the live buffer")
	}
}

func TestZoom_CursorOutsideRegion(t *testing.T) {
	buf := raster.NewBuffer(200, 200, color.NRGBA{0, 0, 0, 255})
	cursor := image.Pt(10, 10)

	result, err := Zoom(buf, image.Rect(100, 100, 150, 150), 2, PreviewOptions{Cursor: &cursor, Radius: 20})
	if err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	data, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if got != (color.NRGBA{0, 0, 0, 255}) {
				t.Fatalf("(%d,%d): got %v, want black", x, y, got)
			}
		}
	}
}

func TestZoom_OutputTooLarge(t *testing.T) {
	buf := raster.NewBuffer(600, 600, color.Black)

	tests := []struct {
		name   string
		region image.Rectangle
		scale  float64
		wantOK bool
	}{
		{"at limit", image.Rect(0, 0, 512, 100), 8, true},
		{"too wide", image.Rect(0, 0, 513, 100), 8, false},
		{"too tall", image.Rect(0, 0, 10, 600), 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Zoom(buf, tt.region, tt.scale, PreviewOptions{})
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Zoom failed: %v", err)
				}
				if result.Width != MaxZoomDimension {
					t.Errorf("width: got %d, want %d", result.Width, MaxZoomDimension)
				}
				return
			}
			if err == nil {
				t.Fatal("Zoom should reject an oversized view")
			}
		})
	}
}
