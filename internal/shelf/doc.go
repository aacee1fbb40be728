// Package shelf decides which shelf an album belongs to.
//
// A shelf is a top-level folder of the music library ("Standard",
// "Incoming", "Soundtracks", ...). The signals that point at a shelf often
// disagree: the user may have picked one by hand, the files may live in a
// shelf folder, a previous run may have written a shelf tag, and different
// tracks of the same album may say different things. This package turns
// those signals into one answer per album.
//
// # Names
//
// Validator checks whether a string is usable as a shelf name and whether a
// folder name found in a path is likely a shelf rather than an artist or
// album that happens to sit at the top of the library:
//
//	v := shelf.NewValidator(shelf.DefaultLimits())
//	ok, msg := v.Validate("Incoming")              // true, ""
//	ok, msg = v.Validate("Artist - Album Vol. 2")  // false, "Shelf name has too many words"
//	name, found := v.ClassifyPath("/music/Incoming/Artist/Album/01.mp3", "/music", known)
//
// # Workflow
//
// A Rule promotes albums from stage 1 shelves to a stage 2 shelf:
//
//	rule := shelf.Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true}
//	rule.Apply("Incoming") // "Standard"
//
// # Resolution
//
// Resolver holds per-album state. Votes accumulate evidence, manual writes
// lock an album to a shelf, and AlbumShelf answers with the winning shelf
// and where it came from:
//
//	r := shelf.NewResolver(shelf.WithLogger(logger))
//	r.Vote("A1", "Standard", 1, "track 1")
//	r.Vote("A1", "Incoming", 1, "track 2")
//	r.Vote("A1", "Standard", 1, "track 3")
//	res := r.AlbumShelf("A1") // {Shelf: "Standard", Source: SourceVoted}
//
// Engine combines all of the above for one file observation, applying the
// rule "where a file lives beats what its tag says, and what its tag says
// beats automatic inference".
//
// # Tags
//
// Provenance travels through the metadata layer as a plain string. ParseTag
// and Assignment.Tag are the only places that know about the "; manual"
// suffix.
//
// All types in this package are safe to use from multiple goroutines unless
// noted otherwise. Nothing here touches the filesystem.
package shelf
