package config

import (
	"errors"
	"fmt"

	"github.com/handiism/shelves/internal/audio"
	"github.com/handiism/shelves/internal/shelf"
)

// Validate ensures the settings are usable.
//
// Invalid known shelf names are not an error; KnownShelves reports and
// drops them.
func (s *Settings) Validate() error {
	if err := s.validateLibrary(); err != nil {
		return err
	}
	if err := s.validateWorkflow(); err != nil {
		return err
	}
	if err := s.validateLogging(); err != nil {
		return err
	}
	if s.Journal.Enabled && s.Journal.Path == "" {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	return nil
}

func (s *Settings) validateLibrary() error {
	if s.Library.Root == "" {
		return errors.New("library.root must be set")
	}
	if s.Library.ScanConcurrency < 1 {
		return errors.New("library.scan_concurrency must be positive")
	}
	if _, err := audio.ParseTagEditAction(s.Library.TagAction); err != nil {
		return fmt.Errorf("library.tag_action: %w", err)
	}
	if _, err := audio.ParsePlaylistFormat(s.Library.PlaylistFormat); err != nil {
		return fmt.Errorf("library.playlist_format: %w", err)
	}
	return nil
}

func (s *Settings) validateWorkflow() error {
	if !s.Workflow.Enabled {
		return nil
	}
	v := shelf.NewValidator(s.ToLimits())
	if ok, msg := v.Validate(s.Workflow.Stage2); !ok {
		return fmt.Errorf("workflow.stage_2 %q: %s", s.Workflow.Stage2, msg)
	}
	for _, name := range s.Workflow.Stage1 {
		if name == shelf.Wildcard {
			continue
		}
		if ok, msg := v.Validate(name); !ok {
			return fmt.Errorf("workflow.stage_1 %q: %s", name, msg)
		}
	}
	return nil
}

func (s *Settings) validateLogging() error {
	switch s.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", s.Logging.Format)
	}
	return nil
}
