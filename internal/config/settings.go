package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/shelves/internal/audio"
	"github.com/handiism/shelves/internal/model"
	"github.com/handiism/shelves/internal/shelf"
)

// Library describes the music library layout.
type Library struct {
	Root            string   `toml:"root"`
	KnownShelves    []string `toml:"known_shelves"`
	ScanConcurrency int      `toml:"scan_concurrency"`
	FolderTemplate  string   `toml:"folder_template"`
	FileNameFormat  string   `toml:"file_name_format"`
	TagAction       string   `toml:"tag_action"` // modify, empty, keep
	PlaylistFormat  string   `toml:"playlist_format"`
}

// Workflow describes the stage 1 to stage 2 promotion rule.
type Workflow struct {
	Enabled                  bool     `toml:"enabled"`
	Stage1                   []string `toml:"stage_1"`
	Stage2                   string   `toml:"stage_2"`
	Stage1IncludesNonShelves bool     `toml:"stage_1_includes_non_shelves"`
	RestrictToKnown          bool     `toml:"restrict_to_known"`
}

// Names bounds what counts as a shelf name.
type Names struct {
	MaxLength       int      `toml:"max_length"`
	MaxWords        int      `toml:"max_words"`
	AlbumIndicators []string `toml:"album_indicators"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console, json
	File   string `toml:"file"`
}

// Journal configures the decision journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Settings holds all configuration options.
type Settings struct {
	Library  Library  `toml:"library"`
	Workflow Workflow `toml:"workflow"`
	Names    Names    `toml:"names"`
	Logging  Logging  `toml:"logging"`
	Journal  Journal  `toml:"journal"`
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	return expandPath("~/.config/shelves/config.toml")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Library: Library{
			Root:            "~/Music",
			KnownShelves:    []string{"Incoming", "Standard"},
			ScanConcurrency: 8,
			FolderTemplate:  model.DefaultFolderTemplate,
			TagAction:       "modify",
			PlaylistFormat:  "m3u",
		},
		Workflow: Workflow{
			Enabled: false,
			Stage1:  []string{"Incoming"},
			Stage2:  "Standard",
		},
		Names: Names{
			MaxLength:       shelf.DefaultMaxLength,
			MaxWords:        shelf.DefaultMaxWords,
			AlbumIndicators: shelf.DefaultAlbumIndicators(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Journal: Journal{
			Enabled: true,
			Path:    "~/.local/share/shelves/journal.db",
		},
	}
}

// Load reads settings from a TOML file. A missing file yields the defaults.
// Paths are expanded and the result is validated.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(settings); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := settings.normalize(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file.
//
// Writers are serialized with an advisory lock on path + ".lock", and the
// file is replaced atomically so readers never see a partial file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer lock.Unlock()

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// CreateSample writes the default settings to path unless a file exists.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	return DefaultSettings().Save(path)
}

// ToLimits converts the name settings for shelf.NewValidator.
func (s *Settings) ToLimits() shelf.Limits {
	return shelf.Limits{
		MaxLength:       s.Names.MaxLength,
		MaxWords:        s.Names.MaxWords,
		AlbumIndicators: s.Names.AlbumIndicators,
	}
}

// ToRule converts the workflow settings into a shelf.Rule.
func (s *Settings) ToRule() shelf.Rule {
	return shelf.Rule{
		Stage1:                   append([]string(nil), s.Workflow.Stage1...),
		Stage2:                   s.Workflow.Stage2,
		Enabled:                  s.Workflow.Enabled,
		Stage1IncludesNonShelves: s.Workflow.Stage1IncludesNonShelves,
	}
}

// ToEngineConfig converts settings into a shelf.EngineConfig.
func (s *Settings) ToEngineConfig() shelf.EngineConfig {
	return shelf.EngineConfig{
		Root:            s.Library.Root,
		Rule:            s.ToRule(),
		RestrictToKnown: s.Workflow.RestrictToKnown,
	}
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		Root:           s.Library.Root,
		FolderTemplate: s.Library.FolderTemplate,
		FileNameFormat: s.Library.FileNameFormat,
	}
}

// ToTagAction converts the tag action setting. Validate guarantees it parses.
func (s *Settings) ToTagAction() audio.TagEditAction {
	action, _ := audio.ParseTagEditAction(s.Library.TagAction)
	return action
}

// ToPlaylistFormat converts the playlist format setting.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	format, _ := audio.ParsePlaylistFormat(s.Library.PlaylistFormat)
	return format
}

func expandPath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return value, nil
	}
	if strings.HasPrefix(value, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if value == "~" {
			value = home
		} else if value[1] == '/' || value[1] == '\\' {
			value = filepath.Join(home, value[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(value))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}
