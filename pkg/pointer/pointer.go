// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds pointers to literals.

GraphQL resolvers and the upstream wire types model nullable values as
pointers; [To] keeps call sites to a single expression.
*/
package pointer

// To returns a pointer to a copy of v (e.g. pointer.To(int32(id))).
func To[T any](v T) *T {
	return &v
}
