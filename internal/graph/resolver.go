// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"
	"net/http"

	"github.com/taibuivan/characters-gateway/internal/character"
	"github.com/taibuivan/characters-gateway/internal/platform/metric"
	"github.com/taibuivan/characters-gateway/pkg/pointer"
)

// Resolver is the root resolver for both Query and Mutation.
//
// Every root field increments its request counter and observes its duration
// before delegating to the repository. A nil result resolves to null; a
// returned error is attached to the field path while siblings still resolve.
type Resolver struct {
	characters character.Repository
	metrics    *metric.Metrics
}

// NewResolver creates the root resolver.
func NewResolver(characters character.Repository, metrics *metric.Metrics) *Resolver {
	return &Resolver{characters: characters, metrics: metrics}
}

// # Query

// Hello returns the upstream index body.
func (resolver *Resolver) Hello(ctx context.Context) (*string, error) {
	timer := resolver.metrics.StartHelloTimer()
	defer timer.ObserveDuration()

	index, err := resolver.characters.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	return &index, nil
}

type charactersArgs struct {
	Name           *string
	NameStartsWith *string
	ModifiedSince  *string
	OrderBy        *string
	Limit          *int32
	Offset         *int32
}

func (args charactersArgs) filters() character.Filters {
	return character.Filters{
		Name:           args.Name,
		NameStartsWith: args.NameStartsWith,
		ModifiedSince:  args.ModifiedSince,
		OrderBy:        args.OrderBy,
		Limit:          intArg(args.Limit),
		Offset:         intArg(args.Offset),
	}
}

// Characters lists characters matching the supplied filters.
func (resolver *Resolver) Characters(ctx context.Context, args charactersArgs) (*charactersResolver, error) {
	timer := resolver.metrics.StartCharacterTimer(http.MethodGet)
	defer timer.ObserveDuration()

	list, err := resolver.characters.FetchCharacters(ctx, args.filters())
	if err != nil || list == nil {
		return nil, err
	}
	return &charactersResolver{list: list}, nil
}

type idArgs struct {
	ID int32
}

// Character fetches one character by id.
func (resolver *Resolver) Character(ctx context.Context, args idArgs) (*characterResolver, error) {
	timer := resolver.metrics.StartCharacterTimer(http.MethodGet)
	defer timer.ObserveDuration()

	found, err := resolver.characters.FetchCharacterByID(ctx, int(args.ID))
	if err != nil || found == nil {
		return nil, err
	}
	return &characterResolver{character: *found}, nil
}

// # Mutation

type addArgs struct {
	Character InputCharacter
}

// AddNewCharacter creates a character.
func (resolver *Resolver) AddNewCharacter(ctx context.Context, args addArgs) (*bool, error) {
	timer := resolver.metrics.StartCharacterTimer(http.MethodPost)
	defer timer.ObserveDuration()

	return outcome(resolver.characters.CreateCharacter(ctx, args.Character.toInput()))
}

type updateArgs struct {
	ID        int32
	Character InputCharacter
}

// UpdateExistingCharacter replaces a character.
func (resolver *Resolver) UpdateExistingCharacter(ctx context.Context, args updateArgs) (*bool, error) {
	timer := resolver.metrics.StartCharacterTimer(http.MethodPut)
	defer timer.ObserveDuration()

	return outcome(resolver.characters.UpdateCharacter(ctx, int(args.ID), args.Character.toInput()))
}

// DeleteExistingCharacter removes a character.
func (resolver *Resolver) DeleteExistingCharacter(ctx context.Context, args idArgs) (*bool, error) {
	timer := resolver.metrics.StartCharacterTimer(http.MethodDelete)
	defer timer.ObserveDuration()

	return outcome(resolver.characters.DeleteCharacter(ctx, int(args.ID)))
}

// outcome maps a write result to the Boolean field: true on success, null
// when the failure was absorbed or raised.
func outcome(ok bool, err error) (*bool, error) {
	if err != nil || !ok {
		return nil, err
	}
	return pointer.To(true), nil
}

func intArg(value *int32) *int {
	if value == nil {
		return nil
	}
	return pointer.To(int(*value))
}
