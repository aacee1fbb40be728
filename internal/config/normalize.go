package config

import (
	"fmt"
	"strings"

	"github.com/handiism/shelves/internal/model"
)

const defaultScanConcurrency = 8

func (s *Settings) normalize() error {
	var err error
	if s.Library.Root, err = expandPath(s.Library.Root); err != nil {
		return fmt.Errorf("library.root: %w", err)
	}
	if s.Journal.Path, err = expandPath(s.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if s.Logging.File, err = expandPath(s.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}

	if s.Library.ScanConcurrency <= 0 {
		s.Library.ScanConcurrency = defaultScanConcurrency
	}
	if strings.TrimSpace(s.Library.FolderTemplate) == "" {
		s.Library.FolderTemplate = model.DefaultFolderTemplate
	}
	s.Library.KnownShelves = trimAll(s.Library.KnownShelves)

	s.Workflow.Stage1 = trimAll(s.Workflow.Stage1)
	s.Workflow.Stage2 = strings.TrimSpace(s.Workflow.Stage2)

	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	s.Logging.Format = strings.ToLower(strings.TrimSpace(s.Logging.Format))
	if s.Logging.Format == "" {
		s.Logging.Format = "console"
	}
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
