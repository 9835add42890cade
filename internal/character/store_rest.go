// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
	"github.com/taibuivan/characters-gateway/internal/platform/ctxutil"
	"github.com/taibuivan/characters-gateway/internal/platform/metric"
	"github.com/taibuivan/characters-gateway/internal/platform/rest"
)

const charactersPath = "/characters"

// escalation maps an upstream status to the domain error raised for it.
type escalation map[int]func(cause error) *apperr.AppError

var (
	// escalateCreate raises on a duplicate character.
	escalateCreate = escalation{http.StatusConflict: NewConflictError}

	// escalateLookup raises on an unknown character id.
	escalateLookup = escalation{http.StatusNotFound: NewNotFoundError}
)

// RESTRepository implements [Repository] against the upstream REST service.
type RESTRepository struct {
	client  *rest.Client
	metrics *metric.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option customises a [RESTRepository].
type Option func(*RESTRepository)

// WithClock replaces the time source used for the "modified" timestamp.
func WithClock(now func() time.Time) Option {
	return func(repository *RESTRepository) {
		repository.now = now
	}
}

// NewRESTRepository creates the upstream adapter.
func NewRESTRepository(client *rest.Client, metrics *metric.Metrics, logger *slog.Logger, opts ...Option) *RESTRepository {
	repository := &RESTRepository{
		client:  client,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(repository)
	}
	return repository
}

// # Index

// FetchIndex returns the upstream root body.
func (repository *RESTRepository) FetchIndex(ctx context.Context) (string, error) {
	response, err := repository.client.Get(ctx, "/", nil)
	if err != nil {
		repository.record(ctx, http.MethodGet, err)
		return "", err
	}
	return response.Text(), nil
}

// # Writes

// payload is the REST body for create and update.
type payload struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Modified    int64        `json:"modified"`
	ResourceURI *string      `json:"resourceURI,omitempty"`
	URLs        []URL        `json:"urls"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Comics      []ComicInput `json:"comics"`
}

func (repository *RESTRepository) payload(input Input) payload {
	body := payload{
		Name:        input.Name,
		Description: input.Description,
		Modified:    repository.now().UnixMilli(),
		ResourceURI: input.ResourceURI,
		URLs:        input.URLs,
		Thumbnail:   input.Thumbnail,
		Comics:      input.Comics,
	}

	if body.URLs == nil {
		body.URLs = []URL{}
	}
	if body.Comics == nil {
		body.Comics = []ComicInput{}
	}

	return body
}

/*
CreateCharacter posts a new character.

Returns:
  - bool: true on success, false when the failure was absorbed
  - error: NewConflictError when the upstream answers 409
*/
func (repository *RESTRepository) CreateCharacter(ctx context.Context, input Input) (bool, error) {
	if _, err := repository.client.Post(ctx, charactersPath, repository.payload(input)); err != nil {
		return false, repository.fail(ctx, http.MethodPost, err, escalateCreate)
	}
	return true, nil
}

// UpdateCharacter replaces character id. Upstream 404 raises NewNotFoundError.
func (repository *RESTRepository) UpdateCharacter(ctx context.Context, id int, input Input) (bool, error) {
	if _, err := repository.client.Put(ctx, characterPath(id), repository.payload(input)); err != nil {
		return false, repository.fail(ctx, http.MethodPut, err, escalateLookup)
	}
	return true, nil
}

// DeleteCharacter removes character id. Upstream 404 raises NewNotFoundError.
func (repository *RESTRepository) DeleteCharacter(ctx context.Context, id int) (bool, error) {
	if _, err := repository.client.Delete(ctx, characterPath(id)); err != nil {
		return false, repository.fail(ctx, http.MethodDelete, err, escalateLookup)
	}
	return true, nil
}

// # Reads

// FetchCharacterByID returns the projected character, nil when the call failed
// for any reason other than 404.
func (repository *RESTRepository) FetchCharacterByID(ctx context.Context, id int) (*Character, error) {
	response, err := repository.client.Get(ctx, characterPath(id), nil)
	if err != nil {
		return nil, repository.fail(ctx, http.MethodGet, err, escalateLookup)
	}

	var record Record
	if err := response.DecodeJSON(&record); err != nil {
		return nil, repository.fail(ctx, http.MethodGet, undecodable(http.MethodGet, response, err), nil)
	}

	character := Project(record)
	return &character, nil
}

// listEnvelope is the upstream list body: { data: { results: [...] } }.
type listEnvelope struct {
	Data struct {
		Results []Record `json:"results"`
	} `json:"data"`
}

// FetchCharacters lists characters matching filters. No failure is raised.
func (repository *RESTRepository) FetchCharacters(ctx context.Context, filters Filters) (*CharacterList, error) {
	response, err := repository.client.Get(ctx, charactersPath, filters.Values())
	if err != nil {
		return nil, repository.fail(ctx, http.MethodGet, err, nil)
	}

	var envelope listEnvelope
	if err := response.DecodeJSON(&envelope); err != nil {
		return nil, repository.fail(ctx, http.MethodGet, undecodable(http.MethodGet, response, err), nil)
	}

	return &CharacterList{Characters: ProjectAll(envelope.Data.Results)}, nil
}

// # Failure Policy

// fail records err and returns the domain error registered for its status,
// or nil when the failure is absorbed.
func (repository *RESTRepository) fail(ctx context.Context, method string, err error, raise escalation) error {
	status := repository.record(ctx, method, err)

	if build, ok := raise[status]; ok {
		return build(err)
	}

	// TODO: absorbed failures resolve to null without an error entry; revisit
	// once product confirms whether 5xx should surface to clients.
	return nil
}

// record increments the error counter and logs the failure. It returns the
// upstream status, or 0 when no response was received.
func (repository *RESTRepository) record(ctx context.Context, method string, err error) int {
	status, target, body, cause := 0, "", err.Error(), err.Error()
	if upstream := apperr.As(err); upstream != nil && upstream.Kind == apperr.KindUpstream {
		status, target, body, cause = upstream.Status, upstream.URL, upstream.Body, upstream.Detail()
	}

	repository.metrics.UpstreamErrors.WithLabelValues(method, strconv.Itoa(status), target).Inc()

	detail := body
	if detail == "" {
		detail = strconv.Itoa(status)
	}

	ctxutil.LoggerOr(ctx, repository.logger).ErrorContext(ctx, "upstream_request_failed",
		slog.String("method", method),
		slog.Int("status", status),
		slog.String("url", target),
		slog.String("detail", detail),
		slog.String("error", cause),
	)

	return status
}

// undecodable reports a 2xx body that is not the expected JSON shape.
func undecodable(method string, response *rest.Response, cause error) error {
	return apperr.Upstream(method, response.Status, response.URL, string(response.Body), cause)
}

func characterPath(id int) string {
	return charactersPath + "/" + strconv.Itoa(id)
}
