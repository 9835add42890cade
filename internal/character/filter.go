// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"net/url"
	"strconv"
)

// Filters narrows Query.characters. A nil field is not sent upstream;
// no defaults are substituted.
type Filters struct {
	Name           *string
	NameStartsWith *string
	ModifiedSince  *string
	OrderBy        *string
	Limit          *int
	Offset         *int
}

// Values encodes the supplied filters as upstream query parameters.
func (filters Filters) Values() url.Values {
	values := url.Values{}

	setString := func(key string, value *string) {
		if value != nil {
			values.Set(key, *value)
		}
	}
	setInt := func(key string, value *int) {
		if value != nil {
			values.Set(key, strconv.Itoa(*value))
		}
	}

	setString("name", filters.Name)
	setString("nameStartsWith", filters.NameStartsWith)
	setString("modifiedSince", filters.ModifiedSince)
	setString("orderBy", filters.OrderBy)
	setInt("limit", filters.Limit)
	setInt("offset", filters.Offset)

	return values
}
