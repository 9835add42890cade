// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"github.com/taibuivan/characters-gateway/internal/character"
	"github.com/taibuivan/characters-gateway/pkg/pointer"
	"github.com/taibuivan/characters-gateway/pkg/slice"
)

type charactersResolver struct {
	list *character.CharacterList
}

func (r *charactersResolver) Characters() *[]*characterResolver {
	wrapped := slice.Map(r.list.Characters, func(c character.Character) *characterResolver {
		return &characterResolver{character: c}
	})
	if wrapped == nil {
		wrapped = []*characterResolver{}
	}
	return &wrapped
}

type characterResolver struct {
	character character.Character
}

func (r *characterResolver) ID() *int32 {
	return pointer.To(int32(r.character.ID))
}

func (r *characterResolver) Name() *string        { return r.character.Name }
func (r *characterResolver) Description() *string { return r.character.Description }
func (r *characterResolver) Modified() *string    { return r.character.Modified }
func (r *characterResolver) ResourceURI() *string { return r.character.ResourceURI }

func (r *characterResolver) URLs() *[]*typeURLResolver {
	return listOf(r.character.URLs, func(u *character.URL) *typeURLResolver {
		return &typeURLResolver{url: *u}
	})
}

func (r *characterResolver) Thumbnail() *thumbnailResolver {
	if r.character.Thumbnail == nil {
		return nil
	}
	return &thumbnailResolver{thumbnail: *r.character.Thumbnail}
}

func (r *characterResolver) Comics() *[]*comicResolver {
	return listOf(r.character.Comics, func(c *character.ComicList) *comicResolver {
		return &comicResolver{comic: *c}
	})
}

type typeURLResolver struct {
	url character.URL
}

func (r *typeURLResolver) Type() *string { return r.url.Type }
func (r *typeURLResolver) URL() *string  { return r.url.URL }

type thumbnailResolver struct {
	thumbnail character.Thumbnail
}

func (r *thumbnailResolver) Path() *string      { return r.thumbnail.Path }
func (r *thumbnailResolver) Extension() *string { return r.thumbnail.Extension }

type comicResolver struct {
	comic character.ComicList
}

func (r *comicResolver) Available() *int32      { return int32Of(r.comic.Available) }
func (r *comicResolver) Returned() *int32       { return int32Of(r.comic.Returned) }
func (r *comicResolver) CollectionURI() *string { return r.comic.CollectionURI }

func (r *comicResolver) Items() *[]*itemResolver {
	return listOf(r.comic.Items, func(item *character.ComicItem) *itemResolver {
		return &itemResolver{item: *item}
	})
}

type itemResolver struct {
	item character.ComicItem
}

func (r *itemResolver) ResourceURI() *string { return r.item.ResourceURI }
func (r *itemResolver) Name() *string        { return r.item.Name }

// listOf wraps items for a nullable GraphQL list. A nil slice becomes an
// empty list and nil entries stay null.
func listOf[T any, R any](items []*T, wrap func(*T) *R) *[]*R {
	wrapped := make([]*R, len(items))
	for i, item := range items {
		if item != nil {
			wrapped[i] = wrap(item)
		}
	}
	return &wrapped
}

func int32Of(value *int) *int32 {
	if value == nil {
		return nil
	}
	return pointer.To(int32(*value))
}
