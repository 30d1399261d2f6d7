package imaging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// touch creates empty files; discovery only looks at names.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiscover_SortModes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "9.jpg", "10.jpg", "8.jpg")

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortNatural, []string{"8.jpg", "9.jpg", "10.jpg"}},
		{SortLogical, []string{"10.jpg", "8.jpg", "9.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			paths, err := Discover(dir, tt.mode)
			if err != nil {
				t.Fatalf("Discover failed: %v", err)
			}
			if got := baseNames(paths); !equalStrings(got, tt.want) {
				t.Errorf("order: got %v, want %v", got, tt.want)
			}
			for _, p := range paths {
				if filepath.Dir(p) != dir {
					t.Errorf("path %s not joined onto %s", p, dir)
				}
			}
		})
	}
}

func TestDiscover_FiltersEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1.png", "2.jpeg", "3.webp", "4.jpg", "notes.txt", "5.JPG", "6.gif", "noext")
	if err := os.Mkdir(filepath.Join(dir, "7.png"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	paths, err := Discover(dir, SortNatural)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	want := []string{"1.png", "2.jpeg", "3.webp", "4.jpg"}
	if got := baseNames(paths); !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.png")
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	onlyText := filepath.Join(dir, "text")
	if err := os.Mkdir(onlyText, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	touch(t, onlyText, "readme.md")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"not a directory", filepath.Join(dir, "file.png"), ErrExpectedDirectory},
		{"missing", filepath.Join(dir, "nope"), ErrNotFound},
		{"empty directory", empty, ErrNoImagesInDirectory},
		{"no eligible files", onlyText, ErrNoImagesInDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discover(tt.path, SortNatural)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"9.jpg", "10.jpg", true},
		{"10.jpg", "9.jpg", false},
		{"page2.png", "page10.png", true},
		{"ch1-p10.png", "ch1-p9.png", false},
		{"ch2-p1.png", "ch10-p1.png", true},
		{"1.png", "01.png", true},
		{"01.png", "1.png", false},
		{"a.png", "b.png", true},
		{"a.png", "a.png", false},
		{"a", "a1", true},
		{"007.jpg", "8.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			if got := NaturalLess(tt.a, tt.b); got != tt.want {
				t.Errorf("NaturalLess(%q, %q): got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSortNames_Natural(t *testing.T) {
	names := []string{"11.jpeg", "9.jpeg", "10.jpeg", "8.jpeg"}
	SortNames(names, SortNatural)

	want := []string{"8.jpeg", "9.jpeg", "10.jpeg", "11.jpeg"}
	if !equalStrings(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"natural", SortNatural, false},
		{"n", SortNatural, false},
		{"", SortNatural, false},
		{"Logical", SortLogical, false},
		{"l", SortLogical, false},
		{"random", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSupportedImage(t *testing.T) {
	tests := map[string]bool{
		"a.jpg":      true,
		"a.jpeg":     true,
		"a.png":      true,
		"a.webp":     true,
		"a.JPG":      false,
		"a.gif":      false,
		"jpg":        false,
		"a.tar.png":  true,
		"archive.7z": false,
	}

	for name, want := range tests {
		if got := IsSupportedImage(name); got != want {
			t.Errorf("IsSupportedImage(%q): got %v, want %v", name, got, want)
		}
	}
}
