// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character translates between the GraphQL-facing character model and the
upstream REST characters service.

Files:

  - character.go: value types exposed to resolvers and accepted from callers.
  - filter.go: list filters and their query-string encoding.
  - project.go: projection of upstream records into [Character] values.
  - store.go: the [Repository] contract consumed by resolvers.
  - store_rest.go: the REST implementation and its error policy.
*/
package character

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Character is the GraphQL-facing character. It is built fresh for every
// response and never mutated afterwards.
//
// Scalars and list entries the upstream sent as null stay nil. List fields
// themselves are never nil.
type Character struct {
	ID          int
	Name        *string
	Description *string
	Modified    *string
	ResourceURI *string
	URLs        []*URL
	Thumbnail   *Thumbnail
	Comics      []*ComicList
}

// CharacterList is the payload of Query.characters.
type CharacterList struct {
	Characters []Character
}

// URL is a typed link to an external page about the character.
type URL struct {
	Type *string `json:"type,omitempty"`
	URL  *string `json:"url,omitempty"`
}

// Thumbnail locates the character image as path + extension.
type Thumbnail struct {
	Path      *string `json:"path,omitempty"`
	Extension *string `json:"extension,omitempty"`
}

// ComicList summarises the comics a character appears in.
type ComicList struct {
	Available     *int         `json:"available"`
	Returned      *int         `json:"returned"`
	CollectionURI *string      `json:"collectionURI"`
	Items         []*ComicItem `json:"items"`
}

// ComicItem is one comic reference.
type ComicItem struct {
	ResourceURI *string `json:"resourceURI,omitempty"`
	Name        *string `json:"name,omitempty"`
}

// # Write Side

// Input is the write-side shape accepted from callers.
// Name and Description are required; the rest is optional.
type Input struct {
	Name        string
	Description string
	ResourceURI *string
	URLs        []URL
	Thumbnail   *Thumbnail
	Comics      []ComicInput
}

// ComicInput is the writable part of a [ComicList].
type ComicInput struct {
	CollectionURI *string     `json:"collectionURI,omitempty"`
	Items         []ComicItem `json:"items,omitempty"`
}

// # Timestamps

// Timestamp is the upstream "modified" value. The upstream stores whatever
// writers sent, so it may arrive as a JSON number (unix milliseconds) or as
// a string; both are kept verbatim as text.
type Timestamp string

// UnmarshalJSON accepts numbers, strings and null. A null only reaches this
// method for non-pointer targets; a *Timestamp field stays nil instead.
func (timestamp *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*timestamp = ""
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("character: modified: %w", err)
		}
		*timestamp = Timestamp(text)
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("character: modified: %w", err)
		}
		*timestamp = Timestamp(number.String())
	}

	return nil
}
