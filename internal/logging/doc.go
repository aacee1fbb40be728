// Package logging builds the slog loggers used by shelves.
//
// Two formats are available: "console" writes one human readable line per
// record with the component as a bracketed prefix, "json" writes one JSON
// object per line with ts, level and msg keys. Console output is coloured
// only when it goes to a terminal.
//
//	logger, closeFn, err := logging.NewFromSettings(settings)
//	defer closeFn()
//	log := logger.With("component", "library")
package logging
