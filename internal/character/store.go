// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
)

// Fixed client-facing messages of the domain errors.
const (
	MessageConflict = "[Conflict] this character already exists."
	MessageNotFound = "[Not Found] this character doesn't exist"
)

// Repository is the contract between the resolvers and the upstream service.
//
// # Error Contract
//
// Only two failures are raised: a [apperr.KindConflict] error from
// CreateCharacter (upstream 409) and a [apperr.KindNotFound] error from
// UpdateCharacter, DeleteCharacter and FetchCharacterByID (upstream 404).
// Every other failure is recorded and reported as an absent result:
// false for writes, nil for reads.
type Repository interface {
	// FetchIndex returns the raw body of the upstream root. Failures propagate.
	FetchIndex(ctx context.Context) (string, error)

	CreateCharacter(ctx context.Context, input Input) (bool, error)
	UpdateCharacter(ctx context.Context, id int, input Input) (bool, error)
	DeleteCharacter(ctx context.Context, id int) (bool, error)

	FetchCharacterByID(ctx context.Context, id int) (*Character, error)

	// FetchCharacters returns an empty list when the upstream sends no
	// results, and nil when the call failed.
	FetchCharacters(ctx context.Context, filters Filters) (*CharacterList, error)
}

// NewConflictError is raised when a created character already exists.
func NewConflictError(cause error) *apperr.AppError {
	err := apperr.Conflict(MessageConflict)
	err.Cause = cause
	return err
}

// NewNotFoundError is raised when the addressed character does not exist.
func NewNotFoundError(cause error) *apperr.AppError {
	err := apperr.NotFound(MessageNotFound)
	err.Cause = cause
	return err
}
