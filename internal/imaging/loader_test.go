package imaging

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage encodes a solid-color PNG of the given size into dir and
// returns its path.
func writeTestImage(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// writeCorruptImage writes a file with an image extension but no image data.
func writeCorruptImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func pixelAt(strip *Strip, x, y int) color.NRGBA {
	return strip.Image().NRGBAAt(x, y)
}

func TestLoad_StacksInInputOrder(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{255, 0, 0, 255}
	green := color.NRGBA{0, 255, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	paths := []string{
		writeTestImage(t, dir, "a.png", 100, 50, red),
		writeTestImage(t, dir, "b.png", 100, 60, green),
		writeTestImage(t, dir, "c.png", 100, 70, blue),
	}

	strip, err := Load(context.Background(), paths, LoadOptions{Workers: 3})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if strip.Width() != 100 || strip.Height() != 180 {
		t.Fatalf("dimensions: got %dx%d, want 100x180", strip.Width(), strip.Height())
	}

	checks := []struct {
		row  int
		want color.NRGBA
	}{
		{0, red},
		{49, red},
		{50, green},
		{109, green},
		{110, blue},
		{179, blue},
	}
	for _, c := range checks {
		if got := pixelAt(strip, 10, c.row); got != c.want {
			t.Errorf("row %d: got %v, want %v", c.row, got, c.want)
		}
	}

	offsets := strip.Offsets()
	wantOffsets := []int{0, 50, 110}
	if len(offsets) != len(wantOffsets) {
		t.Fatalf("offsets: got %v, want %v", offsets, wantOffsets)
	}
	for i := range wantOffsets {
		if offsets[i] != wantOffsets[i] {
			t.Errorf("offsets[%d]: got %d, want %d", i, offsets[i], wantOffsets[i])
		}
	}

	sources := strip.Sources()
	for i := range paths {
		if sources[i] != paths[i] {
			t.Errorf("sources[%d]: got %s, want %s", i, sources[i], paths[i])
		}
	}
}

func TestLoad_UsesMinimumWidth(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestImage(t, dir, "wide.png", 200, 100, color.White),
		writeTestImage(t, dir, "narrow.png", 100, 50, color.White),
	}

	strip, err := Load(context.Background(), paths, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// 200x100 halves to 100x50.
	if strip.Width() != 100 || strip.Height() != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", strip.Width(), strip.Height())
	}
}

func TestLoad_ExplicitWidth(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestImage(t, dir, "1.png", 100, 80, color.Black),
		writeTestImage(t, dir, "2.png", 100, 20, color.Black),
	}

	strip, err := Load(context.Background(), paths, LoadOptions{Width: 50})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if strip.Width() != 50 || strip.Height() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", strip.Width(), strip.Height())
	}
}

func TestLoad_IgnoreUnloadable(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestImage(t, dir, "1.png", 40, 10, color.White),
		writeTestImage(t, dir, "2.png", 40, 20, color.White),
		writeCorruptImage(t, dir, "3.png"),
		writeTestImage(t, dir, "4.png", 40, 30, color.White),
		writeTestImage(t, dir, "5.png", 40, 40, color.White),
	}

	strip, err := Load(context.Background(), paths, LoadOptions{IgnoreUnloadable: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if strip.Height() != 100 {
		t.Errorf("Height: got %d, want 100", strip.Height())
	}
	if got := len(strip.Sources()); got != 4 {
		t.Errorf("sources: got %d, want 4", got)
	}
}

func TestLoad_CorruptSourceFailsFast(t *testing.T) {
	dir := t.TempDir()
	corrupt := writeCorruptImage(t, dir, "2.png")
	paths := []string{
		writeTestImage(t, dir, "1.png", 40, 10, color.White),
		corrupt,
	}

	_, err := Load(context.Background(), paths, LoadOptions{})
	if err == nil {
		t.Fatal("Load should fail for a corrupt source")
	}

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected *SourceError, got %T: %v", err, err)
	}
	if srcErr.Path != corrupt {
		t.Errorf("Path: got %s, want %s", srcErr.Path, corrupt)
	}
}

func TestLoad_MissingSource(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestImage(t, dir, "1.png", 40, 10, color.White),
		filepath.Join(dir, "missing.png"),
	}

	_, err := Load(context.Background(), paths, LoadOptions{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_NothingLoadable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		paths []string
	}{
		{"no paths", nil},
		{"only corrupt", []string{writeCorruptImage(t, dir, "x.png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.paths, LoadOptions{IgnoreUnloadable: true})
			if !errors.Is(err, ErrNoImagesLoaded) {
				t.Errorf("expected ErrNoImagesLoaded, got %v", err)
			}
		})
	}
}

func TestLoad_NegativeWidth(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTestImage(t, dir, "1.png", 10, 10, color.White)}

	if _, err := Load(context.Background(), paths, LoadOptions{Width: -1}); err == nil {
		t.Error("Load should reject a negative width")
	}
}

func TestLoad_DropsAlpha(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTestImage(t, dir, "1.png", 10, 10, color.NRGBA{10, 20, 30, 100})}

	strip, err := Load(context.Background(), paths, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := pixelAt(strip, 5, 5)
	want := color.NRGBA{10, 20, 30, 255}
	if got != want {
		t.Errorf("pixel: got %v, want %v", got, want)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTestImage(t, dir, "1.png", 10, 10, color.White)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, paths, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScaledHeight(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		geo  layout
		want int
	}{
		{"half", 200, 100, layout{width: 100, ceiling: 100}, 50},
		{"rounds to nearest", 3, 10, layout{width: 2, ceiling: 100}, 7},
		{"never zero", 1000, 1, layout{width: 10, ceiling: 100}, 1},
		{"clamped to ceiling", 10, 100, layout{width: 100, ceiling: 500}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scaledHeight(tt.w, tt.h, tt.geo); got != tt.want {
				t.Errorf("scaledHeight(%d, %d): got %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestPlanLayout(t *testing.T) {
	sources := []*Source{
		{Path: "a", Width: 300, Height: 1000},
		{Path: "b", Width: 200, Height: 400},
	}

	geo := planLayout(sources, 0)
	if geo.width != 200 || geo.ceiling != 1000 {
		t.Errorf("auto width: got %+v, want width 200 ceiling 1000", geo)
	}

	geo = planLayout(sources, 400)
	if geo.width != 400 || geo.ceiling != 2000 {
		t.Errorf("explicit width: got %+v, want width 400 ceiling 2000", geo)
	}
}
