package services

import "errors"

// Errors shared across services and the HTTP mapping layer.
var (
	// Validation and business rules. ErrBadArguments is deliberately the
	// bare literal the API exposes for a rejected goal candidate.
	ErrBadArguments       = errors.New("bad arguments")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrPlayerNotInMatch   = errors.New("player is not part of the match")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrPlayerNameRequired = errors.New("player name is required")

	// Conflicts
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Entity lookups. ErrMatchNotFound intentionally has no HTTP mapping:
	// a missing match surfaces as a server error (see handlers).
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")

	// Infrastructure
	ErrMatchesListFailed = errors.New("failed to list matches")
	ErrCrestStorageOff   = errors.New("crest storage is not configured")
)
