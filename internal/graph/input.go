// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"github.com/taibuivan/characters-gateway/internal/character"
)

// InputCharacter is the argument of the create and update mutations.
type InputCharacter struct {
	Name        string
	Description string
	ResourceURI *string
	URLs        *[]*InputTypeURL
	Thumbnail   *InputThumbnail
	Comics      *[]*InputComic
}

type InputTypeURL struct {
	Type *string
	URL  *string
}

type InputThumbnail struct {
	Path      *string
	Extension *string
}

type InputComic struct {
	CollectionURI *string
	Items         *[]*InputItem
}

type InputItem struct {
	ResourceURI *string
	Name        *string
}

// toInput converts the GraphQL argument into the write model. Null list
// entries are dropped.
func (input InputCharacter) toInput() character.Input {
	result := character.Input{
		Name:        input.Name,
		Description: input.Description,
		ResourceURI: input.ResourceURI,
	}

	if input.Thumbnail != nil {
		result.Thumbnail = &character.Thumbnail{
			Path:      input.Thumbnail.Path,
			Extension: input.Thumbnail.Extension,
		}
	}

	result.URLs = collect(input.URLs, func(u InputTypeURL) character.URL {
		return character.URL{Type: u.Type, URL: u.URL}
	})

	result.Comics = collect(input.Comics, func(comic InputComic) character.ComicInput {
		return character.ComicInput{
			CollectionURI: comic.CollectionURI,
			Items: collect(comic.Items, func(item InputItem) character.ComicItem {
				return character.ComicItem{ResourceURI: item.ResourceURI, Name: item.Name}
			}),
		}
	})

	return result
}

func collect[T any, R any](list *[]*T, convert func(T) R) []R {
	if list == nil {
		return nil
	}

	result := make([]R, 0, len(*list))
	for _, entry := range *list {
		if entry != nil {
			result = append(result, convert(*entry))
		}
	}
	return result
}
