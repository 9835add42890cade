// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package graph exposes the characters service through GraphQL.

The schema lives in schema/*.graphql and is embedded at build time. The same
SDL is parsed twice: by graphql-go for execution and by gqlparser for cache-hint
analysis, so @cacheControl annotations are only declared once.

Files:

  - schema.go: SDL loading and executable schema construction.
  - resolver.go: root Query and Mutation resolvers.
  - resolver_character.go: object resolvers for the character payload.
  - input.go: mutation inputs and their mapping to the write model.
  - cachehint.go: per-operation cache policy derived from @cacheControl.
  - handler.go, persisted.go: the HTTP transport.
*/
package graph

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema/*.graphql
var schemaFS embed.FS

// SDL returns the concatenated schema documents in file-name order.
func SDL() (string, error) {
	paths, err := fs.Glob(schemaFS, "schema/*.graphql")
	if err != nil {
		return "", fmt.Errorf("graph: list schema files: %w", err)
	}
	sort.Strings(paths)

	var builder strings.Builder
	for _, path := range paths {
		content, err := schemaFS.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("graph: read %s: %w", path, err)
		}
		builder.Write(content)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// NewSchema parses sdl against resolver.
//
// maxParallelism bounds how many field resolvers run concurrently per request.
func NewSchema(sdl string, resolver *Resolver, maxParallelism int, logger *slog.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(sdl, resolver,
		graphql.MaxParallelism(maxParallelism),
		graphql.Logger(panicLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("graph: parse schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics to the structured logger.
type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "graphql_resolver_panic", slog.Any("panic", value))
}
