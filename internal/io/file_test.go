package ioutils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Standard", "a.mp3"))
	touch(t, filepath.Join(root, "Incoming", "b.mp3"))
	touch(t, filepath.Join(root, ".trash", "c.mp3"))
	touch(t, filepath.Join(root, "loose.mp3"))

	got, err := ListDirs(root)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "Incoming,Standard" {
		t.Errorf("ListDirs() = %v", got)
	}

	if _, err := ListDirs(filepath.Join(root, "missing")); err == nil {
		t.Error("ListDirs on a missing directory returned no error")
	}
}

func TestWalkFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Standard", "Artist", "Album", "01.mp3"))
	touch(t, filepath.Join(root, "Standard", "Artist", "Album", "02.MP3"))
	touch(t, filepath.Join(root, "Standard", "Artist", "Album", "cover.jpg"))
	touch(t, filepath.Join(root, ".hidden", "03.mp3"))

	var got []string
	err := WalkFiles(context.Background(), root, HasExtension(".mp3"), func(path string) error {
		rel, _ := filepath.Rel(root, path)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := "Standard/Artist/Album/01.mp3,Standard/Artist/Album/02.MP3"
	if strings.Join(got, ",") != want {
		t.Errorf("WalkFiles() = %v", got)
	}
}

func TestWalkFiles_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp3"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WalkFiles(ctx, root, nil, func(string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WalkFiles() error = %v, want context.Canceled", err)
	}
}

func TestMoveFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "Incoming", "A", "01.mp3")
	dst := filepath.Join(root, "Standard", "A", "01.mp3")
	touch(t, src)

	if err := MoveFile(context.Background(), src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("source still present: %v", err)
	}

	touch(t, src)
	if err := MoveFile(context.Background(), src, dst); !errors.Is(err, fs.ErrExist) {
		t.Errorf("MoveFile over existing file error = %v", err)
	}
}

func TestRemoveEmptyDirs(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "Incoming", "Artist", "Album")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(root, "Incoming", "keep.txt"))

	RemoveEmptyDirs(deep, root)

	if DirExists(filepath.Join(root, "Incoming", "Artist")) {
		t.Error("empty artist directory not removed")
	}
	if !DirExists(filepath.Join(root, "Incoming")) {
		t.Error("non-empty shelf directory removed")
	}
	if !DirExists(root) {
		t.Error("root removed")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "Standard.m3u")
	if err := WriteFile(context.Background(), path, []byte("#EXTM3U\n")); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "#EXTM3U\n" {
		t.Errorf("content = %q", data)
	}
}
