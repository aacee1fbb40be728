// Package ioutils provides file system utilities for the shelves library
// scanner and organizer.
//
// This package contains functions for:
//   - Listing shelf directories below the library root
//   - Walking audio files
//   - Moving files between shelves (rename, or copy and delete across devices)
//   - File writing and directory creation
//
// # Library Traversal
//
//	shelves, err := ioutils.ListDirs("/music")
//
//	err = ioutils.WalkFiles(ctx, "/music", ioutils.HasExtension(".mp3"), func(path string) error {
//	    // read tags
//	    return nil
//	})
//
// # Moving Files
//
//	err := ioutils.MoveFile(ctx, "/music/Incoming/A/B/01.mp3", "/music/Standard/A/B/01.mp3")
//	ioutils.RemoveEmptyDirs("/music/Incoming/A/B", "/music")
//
// Functions that accept a context.Context check it before starting work;
// a single file operation is not interrupted once begun.
package ioutils
