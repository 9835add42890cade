// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/characters-gateway/internal/character"
	"github.com/taibuivan/characters-gateway/pkg/pointer"
)

func TestFilters_Values(t *testing.T) {
	tests := []struct {
		name    string
		filters character.Filters
		want    url.Values
	}{
		{
			name:    "nothing_supplied",
			filters: character.Filters{},
			want:    url.Values{},
		},
		{
			name: "all_supplied",
			filters: character.Filters{
				Name:           pointer.To("Zoro"),
				NameStartsWith: pointer.To("Z"),
				ModifiedSince:  pointer.To("30/08/1992"),
				OrderBy:        pointer.To("-name"),
				Limit:          pointer.To(10),
				Offset:         pointer.To(10),
			},
			want: url.Values{
				"name":           {"Zoro"},
				"nameStartsWith": {"Z"},
				"modifiedSince":  {"30/08/1992"},
				"orderBy":        {"-name"},
				"limit":          {"10"},
				"offset":         {"10"},
			},
		},
		{
			name:    "zero_values_are_still_supplied",
			filters: character.Filters{Name: pointer.To(""), Offset: pointer.To(0)},
			want:    url.Values{"name": {""}, "offset": {"0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Values())
		})
	}
}
