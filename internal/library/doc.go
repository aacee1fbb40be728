// Package library applies shelf resolution to a music library on disk.
//
// # Manager
//
// The Manager coordinates a run over the library:
//
//  1. Walk the library root for supported audio files
//  2. Read the shelf and album tags of each file concurrently
//  3. Group files into albums by MusicBrainz album id, or by folder
//  4. Resolve each file with the shelf engine, in path order
//  5. Write resolved shelves back to the files (optional)
//  6. Move albums into their shelf folder or export shelf playlists (optional)
//
// # Basic Usage
//
//	manager := library.NewManager(settings,
//	    library.WithLogger(logger),
//	    library.WithJournal(store),
//	    library.WithProgress(func(event library.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    }),
//	)
//
//	report, err := manager.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	changed, err := manager.Apply(ctx, report.Albums)
//
// # Album actions
//
// SetShelf, DetermineShelf and ResetShelf act on a single album directory:
// set a manual shelf, re-derive the shelf from the folder the files live in,
// or drop a manual decision and return to automatic resolution.
//
// # Concurrency
//
// Tag reads and writes run in parallel, bounded by library.scan_concurrency.
// Resolution itself is sequential in path order, so ties between shelves are
// broken the same way on every run.
package library
