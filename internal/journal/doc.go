// Package journal keeps a durable history of shelf decisions in SQLite.
//
// Every scan, manual assignment, reset and file move is appended as an Entry
// tagged with the run that produced it, so "why is this album on that shelf"
// can be answered after the fact.
//
// Example:
//
//	store, err := journal.Open("/home/me/.local/share/shelves/journal.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	entries, err := store.List(ctx, journal.Filter{AlbumID: "A1", Limit: 20})
package journal
