// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import "github.com/taibuivan/characters-gateway/pkg/slice"

// Record is a character as served by the upstream. Unknown upstream fields
// are dropped by decoding.
type Record struct {
	ID          int          `json:"id"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Modified    *Timestamp   `json:"modified"`
	ResourceURI *string      `json:"resourceURI"`
	URLs        []*URL       `json:"urls"`
	Thumbnail   *Thumbnail   `json:"thumbnail"`
	Comics      []*ComicList `json:"comics"`
}

// Project reshapes one upstream record into a [Character].
//
// Nested structures pass through unchanged, null entries included. Absent
// lists become empty.
func Project(record Record) Character {
	character := Character{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ResourceURI: record.ResourceURI,
		URLs:        record.URLs,
		Thumbnail:   record.Thumbnail,
		Comics:      record.Comics,
	}

	if record.Modified != nil {
		modified := string(*record.Modified)
		character.Modified = &modified
	}
	if character.URLs == nil {
		character.URLs = []*URL{}
	}
	if character.Comics == nil {
		character.Comics = []*ComicList{}
	}

	return character
}

// ProjectAll projects records in order. It never returns nil.
func ProjectAll(records []Record) []Character {
	if len(records) == 0 {
		return []Character{}
	}
	return slice.Map(records, Project)
}
