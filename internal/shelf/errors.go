package shelf

import (
	"errors"
	"fmt"
)

var (
	// ErrShelfNotFound is returned when no shelf could be resolved for an album.
	ErrShelfNotFound = errors.New("shelf not found")

	// ErrInvalidShelf marks a shelf name rejected by Validator.Validate.
	ErrInvalidShelf = errors.New("invalid shelf name")
)

// NotFoundError reports which album could not be resolved.
type NotFoundError struct {
	AlbumID string
}

func (e *NotFoundError) Error() string {
	if e.AlbumID == "" {
		return ErrShelfNotFound.Error()
	}
	return fmt.Sprintf("shelf for album %q not found", e.AlbumID)
}

// Is makes errors.Is(err, ErrShelfNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrShelfNotFound
}
