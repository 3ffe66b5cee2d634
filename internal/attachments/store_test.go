package attachments

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, dir
}

func TestSaveWritesAcceptedImages(t *testing.T) {
	s, dir := newTestStore(t)

	saved := s.Save([]Upload{
		{Filename: "backpack.png", ContentType: "image/png", Data: testPNG(t)},
		{Filename: "Strap.JPG", ContentType: "image/jpeg", Data: testJPEG(t)},
	}, "")
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved files, got %d", len(saved))
	}

	for _, name := range saved {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("saved file missing on disk: %v", err)
		}
	}
	if !strings.HasSuffix(saved[0], ".png") {
		t.Errorf("extension not preserved: %s", saved[0])
	}
	if !strings.HasSuffix(saved[1], ".jpg") {
		t.Errorf("extension not lowercased: %s", saved[1])
	}
	if saved[0] == saved[1] {
		t.Error("generated names must be unique")
	}
}

func TestSavePrefixesFilenames(t *testing.T) {
	s, _ := newTestStore(t)

	saved := s.Save([]Upload{{Filename: "x.png", ContentType: "image/png", Data: testPNG(t)}}, "found_")
	if len(saved) != 1 || !strings.HasPrefix(saved[0], "found_") {
		t.Fatalf("expected found_ prefix, got %v", saved)
	}
}

func TestSaveSkipsRejects(t *testing.T) {
	s, dir := newTestStore(t)

	saved := s.Save([]Upload{
		{Filename: "", ContentType: "image/png", Data: testPNG(t)},
		{Filename: "notes.txt", ContentType: "text/plain", Data: []byte("just text")},
		// Declared as an image but the bytes are not one.
		{Filename: "fake.png", ContentType: "image/png", Data: []byte("not an image")},
		{Filename: "real.png", ContentType: "image/png", Data: testPNG(t)},
	}, "")

	if len(saved) != 1 {
		t.Fatalf("expected only the valid image saved, got %v", saved)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected 1 file on disk, got %d", len(entries))
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	saved := s.Save([]Upload{{Filename: "x.png", ContentType: "image/png", Data: testPNG(t)}}, "")
	if len(saved) != 1 {
		t.Fatalf("save failed: %v", saved)
	}

	if !s.Delete(saved[0]) {
		t.Error("expected delete of existing file to report true")
	}
	if s.Delete(saved[0]) {
		t.Error("expected repeat delete to report false")
	}
}

func TestDeleteIgnoresPathComponents(t *testing.T) {
	s, dir := newTestStore(t)

	outside := filepath.Join(filepath.Dir(dir), "outside.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write sentinel: %v", err)
	}

	s.Delete("../outside.txt")
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the store was removed: %v", err)
	}
}
