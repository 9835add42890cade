// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
	"github.com/taibuivan/characters-gateway/internal/platform/cache"
	"github.com/taibuivan/characters-gateway/internal/platform/constants"
	"github.com/taibuivan/characters-gateway/internal/platform/ctxutil"
	"github.com/taibuivan/characters-gateway/internal/platform/metric"
	requestutil "github.com/taibuivan/characters-gateway/internal/platform/request"
	"github.com/taibuivan/characters-gateway/internal/platform/respond"
)

// Params is one GraphQL request, from a JSON body or a query string.
type Params struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Extensions    *Extensions            `json:"extensions"`
}

// Extensions carries protocol extensions sent alongside the query.
type Extensions struct {
	PersistedQuery *PersistedQuery `json:"persistedQuery"`
}

// PersistedQuery identifies a query by hash.
type PersistedQuery struct {
	Version    int    `json:"version"`
	SHA256Hash string `json:"sha256Hash"`
}

func (params *Params) persistedQuery() *PersistedQuery {
	if params.Extensions == nil {
		return nil
	}
	return params.Extensions.PersistedQuery
}

// Options configures a [Handler].
type Options struct {
	Schema            *graphql.Schema
	Hints             *CacheHints
	Cache             cache.Cache
	Metrics           *metric.Metrics
	Logger            *slog.Logger
	PersistedQueryTTL time.Duration
}

// Handler serves GraphQL over HTTP with persisted queries and a response cache.
type Handler struct {
	schema       *graphql.Schema
	hints        *CacheHints
	cache        cache.Cache
	metrics      *metric.Metrics
	logger       *slog.Logger
	persistedTTL time.Duration
}

// NewHandler creates the GraphQL endpoint.
func NewHandler(opts Options) *Handler {
	store := opts.Cache
	if store == nil {
		store = cache.NewNoop()
	}
	return &Handler{
		schema:       opts.Schema,
		hints:        opts.Hints,
		cache:        store,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		persistedTTL: opts.PersistedQueryTTL,
	}
}

/*
ServeHTTP executes one operation.

Flow:
 1. Decode the request (400 on malformed input).
 2. Resolve persisted queries.
 3. Compute the cache policy and serve a cached response when allowed.
 4. Execute, store cacheable results, and write the result with status 200.
*/
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	params, err := decodeParams(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolved, err := handler.resolveQuery(ctx, params)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	query := resolved.text

	policy, analysis := handler.hints.Policy(query, params.OperationName)
	if err := handler.settle(ctx, resolved, analysis); err != nil {
		handler.fail(writer, request, err)
		return
	}
	if analysis != nil {
		// Execution reports the same validation errors to the caller.
		policy = CachePolicy{}
	}

	if request.Method == http.MethodGet && policy.Operation == ast.Mutation {
		respond.Error(writer, request, apperr.BadRequest("Mutations can only be sent over POST"))
		return
	}

	key := ""
	if policy.Cacheable() {
		key = responseKey(query, params.OperationName, params.Variables)
		if body, ok := handler.lookup(ctx, key); ok {
			writer.Header().Set(constants.HeaderCacheControl, policy.Header())
			respond.Raw(writer, http.StatusOK, body)
			return
		}
	}

	result := handler.schema.Exec(ctx, query, params.OperationName, params.Variables)

	body, err := json.Marshal(result)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	header := policy.Header()
	if len(result.Errors) > 0 {
		header = CachePolicy{}.Header()
	} else if key != "" {
		handler.store(ctx, key, body, policy.MaxAge)
	}

	writer.Header().Set(constants.HeaderCacheControl, header)
	respond.Raw(writer, http.StatusOK, body)
}

// decodeParams reads a POST JSON body or the GET query string.
func decodeParams(writer http.ResponseWriter, request *http.Request) (*Params, error) {
	params := &Params{}

	if request.Method != http.MethodGet {
		if err := requestutil.DecodeJSON(writer, request, params); err != nil {
			return nil, err
		}
		return params, nil
	}

	query := request.URL.Query()
	params.Query = query.Get("query")
	params.OperationName = query.Get("operationName")

	if err := requestutil.QueryJSON(request, "variables", &params.Variables); err != nil {
		return nil, err
	}
	if err := requestutil.QueryJSON(request, "extensions", &params.Extensions); err != nil {
		return nil, err
	}

	return params, nil
}

// # Response Cache

func (handler *Handler) lookup(ctx context.Context, key string) ([]byte, bool) {
	body, found, err := handler.cache.Get(ctx, key)
	if err != nil {
		ctxutil.LoggerOr(ctx, handler.logger).WarnContext(ctx, "response_cache_get_failed",
			slog.String("backend", handler.cache.Name()),
			slog.String("error", err.Error()),
		)
	}

	if !found {
		handler.metrics.ResponseCache.WithLabelValues(metric.CacheMiss).Inc()
		return nil, false
	}

	handler.metrics.ResponseCache.WithLabelValues(metric.CacheHit).Inc()
	return body, true
}

func (handler *Handler) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := handler.cache.Set(ctx, key, body, ttl); err != nil {
		ctxutil.LoggerOr(ctx, handler.logger).WarnContext(ctx, "response_cache_set_failed",
			slog.String("backend", handler.cache.Name()),
			slog.String("error", err.Error()),
		)
		return
	}
	handler.metrics.ResponseCache.WithLabelValues(metric.CacheStore).Inc()
}

// responseKey identifies a response by query, operation and variables.
// encoding/json sorts map keys, so equal variables hash equally.
func responseKey(query, operationName string, variables map[string]interface{}) string {
	encoded, _ := json.Marshal(variables)

	hash := sha256.New()
	hash.Write([]byte(query))
	hash.Write([]byte{0})
	hash.Write([]byte(operationName))
	hash.Write([]byte{0})
	hash.Write(encoded)

	return constants.CachePrefixResponse + hex.EncodeToString(hash.Sum(nil))
}

// fail writes persisted query failures as GraphQL errors and anything else
// as an HTTP error envelope.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var persisted *persistedError
	if errors.As(err, &persisted) {
		handler.writeErrors(writer, persisted)
		return
	}
	respond.Error(writer, request, err)
}

// writeErrors writes a GraphQL error document without executing anything.
func (handler *Handler) writeErrors(writer http.ResponseWriter, persisted *persistedError) {
	body, _ := json.Marshal(graphql.Response{
		Errors: []*gqlerrors.QueryError{{
			Message:    persisted.message,
			Extensions: map[string]interface{}{"code": persisted.code},
		}},
	})

	writer.Header().Set(constants.HeaderCacheControl, CachePolicy{}.Header())
	respond.Raw(writer, persisted.status, body)
}
