package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrDataUnavailable       = errors.New("data unavailable")
)

const (
	SourceRoster   = "roster"
	SourceSquad    = "squad"
	SourceFixtures = "fixtures"
	SourceManager  = "manager"
	SourceGameweek = "gameweek"
)

// DataUnavailableError reports a required snapshot that could not be fetched.
type DataUnavailableError struct {
	Source   string
	Gameweek int
	Err      error
}

func (e *DataUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s gw=%d", ErrDataUnavailable, e.Source, e.Gameweek)
	}
	return fmt.Sprintf("%s: %s gw=%d: %v", ErrDataUnavailable, e.Source, e.Gameweek, e.Err)
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable || target == ErrDependencyUnavailable
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func dataUnavailable(source string, gameweek int, err error) error {
	var existing *DataUnavailableError
	if errors.As(err, &existing) {
		return err
	}
	return &DataUnavailableError{Source: source, Gameweek: gameweek, Err: err}
}
