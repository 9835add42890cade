// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
	"github.com/taibuivan/characters-gateway/internal/platform/constants"
	"github.com/taibuivan/characters-gateway/internal/platform/ctxutil"
)

// persistedQueryVersion is the only automatic persisted query protocol version.
const persistedQueryVersion = 1

// persistedError is a persisted query failure reported as a GraphQL error.
type persistedError struct {
	status  int
	message string
	code    string
}

func (e *persistedError) Error() string { return e.message }

var (
	errPersistedQueryNotFound = &persistedError{
		status:  http.StatusOK,
		message: "PersistedQueryNotFound",
		code:    "PERSISTED_QUERY_NOT_FOUND",
	}
	errPersistedQueryMismatch = &persistedError{
		status:  http.StatusBadRequest,
		message: "provided sha does not match query",
		code:    "BAD_REQUEST",
	}
	errPersistedQueryVersion = &persistedError{
		status:  http.StatusBadRequest,
		message: "Unsupported persisted query version",
		code:    "BAD_REQUEST",
	}
)

var errMissingQuery = apperr.BadRequest("GraphQL operations must contain a non-empty `query` or a `persistedQuery` extension.")

// resolvedQuery is the query text to execute and its persisted query state.
type resolvedQuery struct {
	text string
	// key is the persisted query store key, empty without the extension.
	key string
	// stored reports that text was loaded from the store by hash.
	stored bool
}

/*
resolveQuery returns the query text to execute.

Requests carrying only a hash are served from the persisted query store.
Requests carrying both a query and a hash are verified here and registered
by [Handler.settle] once the query validates.
*/
func (handler *Handler) resolveQuery(ctx context.Context, params *Params) (resolvedQuery, error) {
	extension := params.persistedQuery()
	if extension == nil {
		if params.Query == "" {
			return resolvedQuery{}, errMissingQuery
		}
		return resolvedQuery{text: params.Query}, nil
	}

	if extension.Version != persistedQueryVersion {
		return resolvedQuery{}, errPersistedQueryVersion
	}

	hash := strings.ToLower(extension.SHA256Hash)
	resolved := resolvedQuery{key: constants.CachePrefixPersistedQuery + hash}

	if params.Query == "" {
		stored, found, err := handler.cache.Get(ctx, resolved.key)
		if err != nil {
			ctxutil.LoggerOr(ctx, handler.logger).WarnContext(ctx, "persisted_query_get_failed", slog.String("error", err.Error()))
		}
		if !found {
			return resolvedQuery{}, errPersistedQueryNotFound
		}
		resolved.text, resolved.stored = string(stored), true
		return resolved, nil
	}

	if HashQuery(params.Query) != hash {
		return resolvedQuery{}, errPersistedQueryMismatch
	}

	resolved.text = params.Query
	return resolved, nil
}

/*
settle updates the persisted query store once the query has been analysed.

A new query is registered only when it validates. A stored query that no
longer validates is evicted and reported as not found, so the client sends
the full text again.
*/
func (handler *Handler) settle(ctx context.Context, resolved resolvedQuery, analysis error) error {
	if resolved.key == "" {
		return nil
	}

	logger := ctxutil.LoggerOr(ctx, handler.logger)

	if resolved.stored {
		if !errors.Is(analysis, ErrInvalidQuery) {
			return nil
		}
		if err := handler.cache.Delete(ctx, resolved.key); err != nil {
			logger.WarnContext(ctx, "persisted_query_delete_failed", slog.String("error", err.Error()))
		}
		return errPersistedQueryNotFound
	}

	if analysis != nil {
		return nil
	}
	if err := handler.cache.Set(ctx, resolved.key, []byte(resolved.text), handler.persistedTTL); err != nil {
		logger.WarnContext(ctx, "persisted_query_set_failed", slog.String("error", err.Error()))
	}
	return nil
}

// HashQuery returns the hex SHA-256 clients use to identify a persisted query.
func HashQuery(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}
