package blur

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// recorder collects pushed snapshots.
type recorder struct {
	snapshots []*raster.Buffer
}

func (r *recorder) Push(s *raster.Buffer) {
	r.snapshots = append(r.snapshots, s)
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name            string
		cx, cy, r, w, h int
		want            image.Rectangle
		wantEmpty       bool
	}{
		{"fully inside", 50, 50, 20, 100, 100, image.Rect(30, 30, 70, 70), false},
		{"clamped top-left", 0, 0, 50, 10, 10, image.Rect(0, 0, 10, 10), false},
		{"clamped bottom-right", 95, 98, 10, 100, 100, image.Rect(85, 88, 100, 100), false},
		{"far outside", -1000, -1000, 50, 100, 100, image.Rectangle{}, true},
		{"just past right edge", 110, 50, 10, 100, 100, image.Rectangle{}, true},
		{"touching right edge from outside", 105, 50, 10, 100, 100, image.Rect(95, 40, 100, 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingBox(tt.cx, tt.cy, tt.r, tt.w, tt.h)
			if got.Empty() != tt.wantEmpty {
				t.Fatalf("Empty(): got %v, want %v (box %v)", got.Empty(), tt.wantEmpty, got)
			}
			if !tt.wantEmpty && got != tt.want {
				t.Errorf("box: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_UniformBlackImage(t *testing.T) {
	buf := raster.NewBuffer(100, 100, color.NRGBA{0, 0, 0, 255})
	before := buf.Snapshot()
	rec := &recorder{}

	box, applied, err := NewCompositor().Apply(buf, rec, 50, 50, 20, 51)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !applied {
		t.Fatal("Apply should report applied for an in-bounds click")
	}
	if box != image.Rect(30, 30, 70, 70) {
		t.Errorf("box: got %v, want (30,30)-(70,70)", box)
	}
	if !buf.Equal(before) {
		t.Error("blurring a uniform image should leave it unchanged")
	}
	if len(rec.snapshots) != 1 {
		t.Fatalf("history entries: got %d, want 1", len(rec.snapshots))
	}
	if !rec.snapshots[0].Equal(before) {
		t.Error("history entry should equal the pre-click image")
	}
}

func TestApply_ChangesInsideCircleOnly(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(120, 120, 2))
	before := buf.Snapshot()
	rec := &recorder{}
	cx, cy, r := 60, 60, 25

	box, applied, err := NewCompositor().Apply(buf, rec, cx, cy, r, 31)
	if err != nil || !applied {
		t.Fatalf("Apply: applied=%v err=%v", applied, err)
	}

	changedInside := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			got, _ := buf.At(x, y)
			want, _ := before.At(x, y)
			dx, dy := x-cx, y-cy
			inCircle := dx*dx+dy*dy <= r*r && image.Pt(x, y).In(box)

			if !inCircle && got != want {
				t.Fatalf("pixel (%d,%d) outside the circle changed: %v -> %v", x, y, want, got)
			}
			if inCircle && got != want {
				changedInside++
			}
		}
	}

	if changedInside == 0 {
		t.Error("no pixel inside the circle changed")
	}
	center, _ := buf.At(cx, cy)
	orig, _ := before.At(cx, cy)
	if center == orig {
		t.Errorf("center pixel unchanged after blur: %v", center)
	}
}

func TestApply_HardCircularBoundary(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(80, 80, 1))
	before := buf.Snapshot()

	_, _, err := NewCompositor().Apply(buf, nil, 40, 40, 10, 21)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Corner of the bounding box lies outside the disc and must keep its value.
	got, _ := buf.At(31, 31)
	want, _ := before.At(31, 31)
	if got != want {
		t.Errorf("box corner (31,31) changed: %v -> %v", want, got)
	}
}

func TestApply_OutsideImageIsNoOp(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(50, 50, 5))
	before := buf.Snapshot()
	rec := &recorder{}

	_, applied, err := NewCompositor().Apply(buf, rec, -1000, -1000, 50, 51)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied {
		t.Error("click far outside the image should not apply")
	}
	if len(rec.snapshots) != 0 {
		t.Errorf("history entries: got %d, want 0", len(rec.snapshots))
	}
	if !buf.Equal(before) {
		t.Error("buffer changed by a degenerate click")
	}
}

func TestApply_ClampsToSmallImage(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(10, 10, 1))
	rec := &recorder{}

	box, applied, err := NewCompositor().Apply(buf, rec, 0, 0, 50, 51)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !applied {
		t.Fatal("click at the corner should apply")
	}
	if box != image.Rect(0, 0, 10, 10) {
		t.Errorf("box: got %v, want whole image (0,0)-(10,10)", box)
	}
	if len(rec.snapshots) != 1 {
		t.Errorf("history entries: got %d, want 1", len(rec.snapshots))
	}
}

func TestApply_SnapshotTakenBeforeWrite(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(60, 60, 2))
	before := buf.Snapshot()
	rec := &recorder{}

	if _, _, err := NewCompositor().Apply(buf, rec, 30, 30, 15, 21); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !rec.snapshots[0].Equal(before) {
		t.Error("snapshot does not match the image before the blur")
	}
	if rec.snapshots[0].Equal(buf) {
		t.Error("snapshot aliases the live buffer")
	}
}

func TestApply_CustomBlur(t *testing.T) {
	buf := raster.NewBuffer(20, 20, color.NRGBA{0, 0, 0, 255})
	white := func(region image.Image, kernelSize int) *image.NRGBA {
		b := region.Bounds()
		img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for i := range img.Pix {
			img.Pix[i] = 255
		}
		return img
	}

	_, _, err := NewCompositorWithBlur(white).Apply(buf, nil, 10, 10, 3, 11)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	mask := raster.CircleMask(20, 20, 10, 10, 3)
	box := BoundingBox(10, 10, 3, 20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			got, _ := buf.At(x, y)
			isWhite := got == (color.NRGBA{255, 255, 255, 255})
			want := mask.Covered(x, y) && image.Pt(x, y).In(box)
			if isWhite != want {
				t.Errorf("(%d,%d): white=%v, want %v", x, y, isWhite, want)
			}
		}
	}
}

func TestApply_FailedCompositeRecordsNothing(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(40, 40, 2))
	before := buf.Snapshot()
	rec := &recorder{}
	// A blur that returns the wrong size cannot be composited.
	shrink := func(region image.Image, kernelSize int) *image.NRGBA {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}

	_, ok, err := NewCompositorWithBlur(shrink).Apply(buf, rec, 20, 20, 10, 11)

	if err == nil {
		t.Fatal("expected an error for a mis-sized blur result")
	}
	if !ok {
		t.Error("a non-empty region should report ok=true even on error")
	}
	if len(rec.snapshots) != 0 {
		t.Errorf("recorded %d snapshots for a failed blur, want 0", len(rec.snapshots))
	}
	if !buf.Equal(before) {
		t.Error("buffer changed although the blur failed")
	}
}

func TestApply_RecordsOncePerBlur(t *testing.T) {
	buf := raster.FromImage(createCheckerImage(40, 40, 2))
	rec := &recorder{}
	c := NewCompositor()

	for i := 0; i < 3; i++ {
		if _, _, err := c.Apply(buf, rec, 20, 20, 10, 11); err != nil {
			t.Fatalf("Apply %d failed: %v", i, err)
		}
	}
	if _, _, err := c.Apply(buf, rec, -500, -500, 10, 11); err != nil {
		t.Fatalf("off-image Apply failed: %v", err)
	}

	if len(rec.snapshots) != 3 {
		t.Errorf("got %d snapshots, want 3", len(rec.snapshots))
	}
}
