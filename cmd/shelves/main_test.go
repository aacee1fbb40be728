package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/shelves/internal/audio"
	"github.com/handiism/shelves/internal/config"
)

type cliTestEnv struct {
	root       string
	configPath string
}

// setupCLITestEnv writes a config pointing at an empty library in a temp dir.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	env := &cliTestEnv{
		root:       filepath.Join(base, "music"),
		configPath: filepath.Join(base, "config.toml"),
	}
	if err := os.MkdirAll(env.root, 0o755); err != nil {
		t.Fatal(err)
	}

	s := config.DefaultSettings()
	s.Library.Root = env.root
	s.Journal.Path = filepath.Join(base, "journal.db")
	s.Logging.Level = "error"
	if err := s.Save(env.configPath); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return env
}

func (e *cliTestEnv) track(t *testing.T, rel, shelfTag string) string {
	t.Helper()
	path := filepath.Join(e.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	tag.SetArtist("Muse")
	tag.SetAlbum("Drones")
	tag.SetTitle(filepath.Base(rel))
	if shelfTag != "" {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: audio.ShelfDescription, Value: shelfTag,
		})
	}
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()

	cc := newCommandContext()
	defer cc.close()

	cmd := newRootCommand(cc)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func loadSettings(t *testing.T, env *cliTestEnv) *config.Settings {
	t.Helper()
	s, err := config.Load(env.configPath)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestValidateCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "validate", "Standard", ".hidden")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "Standard", "ok", "warning", "leading/trailing dot")

	out, _, err = runCLI(t, env, "validate", "Standard", "Vol. 2")
	if err == nil {
		t.Fatal("validate accepted an invalid name")
	}
	requireContains(t, out, "invalid", "album indicator")
}

func TestClassifyCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "classify",
		filepath.Join(env.root, "Incoming", "Muse", "Drones", "01.mp3"),
		filepath.Join(env.root, "Muse - Drones", "01.mp3"),
	)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "Incoming (manual)", "Artist - Album")
}

func TestScanCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.track(t, "Incoming/Muse/Drones/01.mp3", "")
	env.track(t, "Muse - Drones/01.mp3", "Standard")

	out, _, err := runCLI(t, env, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Incoming/Muse/Drones", "Incoming (manual)", "Standard", "2 albums, 2 files")

	out, _, err = runCLI(t, env, "scan", "--apply")
	if err != nil {
		t.Fatalf("scan --apply: %v", err)
	}
	requireContains(t, out, "Updated shelf tags of 1 files")

	got, err := audio.NewShelfTagger(audio.TagModify).ReadShelf(path)
	if err != nil || got != "Incoming; manual" {
		t.Errorf("tag = %q, %v", got, err)
	}

	out, _, err = runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "resolve", "apply", "location")
}

func TestSetAndResetCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.track(t, "Muse - Drones/01.mp3", "Standard")
	dir := filepath.Dir(path)

	out, _, err := runCLI(t, env, "set", dir, "Favorites")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	requireContains(t, out, "Favorites (manual)", "Added Favorites to the known shelves")

	known, _ := loadSettings(t, env).KnownShelves()
	if !known.Contains("Favorites") {
		t.Errorf("known shelves = %v", known.Names())
	}

	out, _, err = runCLI(t, env, "reset", dir)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	requireContains(t, out, "is now on Favorites")

	got, _ := audio.NewShelfTagger(audio.TagModify).ReadShelf(path)
	if got != "Favorites" {
		t.Errorf("tag after reset = %q", got)
	}

	out, _, err = runCLI(t, env, "history", dir)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "set", "reset")

	out, _, err = runCLI(t, env, "history", "--prune", "1h")
	if err != nil {
		t.Fatalf("history --prune: %v", err)
	}
	requireContains(t, out, "Removed 0 entries")
}

func TestOrganizeAndExportCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	env.track(t, "Muse - Drones/01.mp3", "Standard")

	out, _, err := runCLI(t, env, "organize", "--dry-run")
	if err != nil {
		t.Fatalf("organize --dry-run: %v", err)
	}
	requireContains(t, out, "Standard/Muse/Drones/01.mp3", "planned")

	out, _, err = runCLI(t, env, "organize")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "moved")
	if _, err := os.Stat(filepath.Join(env.root, "Standard", "Muse", "Drones", "01.mp3")); err != nil {
		t.Fatalf("album not moved: %v", err)
	}

	out, _, err = runCLI(t, env, "export", "Standard")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Wrote 1 tracks")
	if _, err := os.Stat(filepath.Join(env.root, "Standard.m3u")); err != nil {
		t.Errorf("playlist missing: %v", err)
	}
}

func TestKnownCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "known", "add", "Jazz"); err != nil {
		t.Fatalf("known add: %v", err)
	}
	if _, _, err := runCLI(t, env, "known", "add", "a:b"); err == nil {
		t.Error("known add accepted an invalid name")
	}
	if _, _, err := runCLI(t, env, "known", "remove", "Incoming"); err == nil {
		t.Error("known remove dropped a workflow shelf")
	}

	for _, dir := range []string{"Classical", "Muse - Drones"} {
		if err := os.MkdirAll(filepath.Join(env.root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	out, _, err := runCLI(t, env, "known", "scan")
	if err != nil {
		t.Fatalf("known scan: %v", err)
	}
	requireContains(t, out, "Added Classical")

	out, _, err = runCLI(t, env, "known", "prune")
	if err != nil {
		t.Fatalf("known prune: %v", err)
	}
	// Standard has no folder but is the workflow's second stage.
	requireContains(t, out, "Removed Jazz")

	out, _, err = runCLI(t, env, "known", "list")
	if err != nil {
		t.Fatalf("known list: %v", err)
	}
	requireContains(t, out, "Classical", "Incoming", "Standard")
	if strings.Contains(out, "Jazz") || strings.Contains(out, "Muse - Drones") {
		t.Errorf("unexpected shelf listed:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[library]", env.root)

	if _, _, err := runCLI(t, env, "config", "init"); err == nil {
		t.Error("config init overwrote an existing file")
	}
	out, _, err = runCLI(t, env, "config", "init", "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
}
