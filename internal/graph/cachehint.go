// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const cacheControlDirective = "cacheControl"

// ErrInvalidQuery marks query documents that do not validate against the schema.
var ErrInvalidQuery = errors.New("graph: query does not validate")

// Scope restricts who may reuse a cached response.
type Scope string

const (
	ScopePublic  Scope = "PUBLIC"
	ScopePrivate Scope = "PRIVATE"
)

// CachePolicy is the cache decision for one operation.
type CachePolicy struct {
	MaxAge    time.Duration
	Scope     Scope
	Operation ast.Operation
}

// Cacheable reports whether the response may be stored in the shared cache.
func (policy CachePolicy) Cacheable() bool {
	return policy.MaxAge > 0 && policy.Scope == ScopePublic && policy.Operation == ast.Query
}

// Header renders the Cache-Control value.
func (policy CachePolicy) Header() string {
	seconds := int(policy.MaxAge / time.Second)
	if seconds <= 0 {
		return "no-store"
	}
	return fmt.Sprintf("max-age=%d, %s", seconds, strings.ToLower(string(policy.Scope)))
}

// CacheHints computes [CachePolicy] values from @cacheControl annotations.
type CacheHints struct {
	schema        *ast.Schema
	defaultMaxAge time.Duration
}

// NewCacheHints loads sdl for analysis.
//
// defaultMaxAge applies to root fields and composite-returning fields that
// carry no hint of their own.
func NewCacheHints(sdl string, defaultMaxAge time.Duration) (*CacheHints, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("graph: load schema for cache hints: %w", err)
	}
	return &CacheHints{schema: schema, defaultMaxAge: defaultMaxAge}, nil
}

/*
Policy analyses the selected operation of query.

Rules:
  - Root fields and fields returning an object, interface or union take the
    field hint, then the hint on the returned type, then the default.
  - Scalar fields below the root without a hint inherit from their parent.
  - The operation max-age is the minimum over all hinted fields.
  - Any PRIVATE hint makes the whole operation PRIVATE.
  - Mutations and subscriptions always get max-age 0.

An error wrapping [ErrInvalidQuery] is returned when the document does not
validate, and a plain error when operationName selects nothing. Execution
reports the same problems to the caller.
*/
func (hints *CacheHints) Policy(query, operationName string) (CachePolicy, error) {
	document, errs := gqlparser.LoadQuery(hints.schema, query)
	if len(errs) > 0 {
		return CachePolicy{}, fmt.Errorf("%w: %w", ErrInvalidQuery, errs)
	}

	operation := document.Operations.ForName(operationName)
	if operation == nil {
		return CachePolicy{}, fmt.Errorf("graph: unknown operation %q", operationName)
	}

	walker := &hintWalker{hints: hints, scope: ScopePublic}
	walker.walk(operation.SelectionSet, true, map[string]bool{})

	policy := CachePolicy{Scope: walker.scope, Operation: operation.Operation}
	if operation.Operation == ast.Query && walker.seen {
		policy.MaxAge = walker.maxAge
	}
	return policy, nil
}

// hintWalker accumulates the minimum max-age over a selection tree.
type hintWalker struct {
	hints  *CacheHints
	maxAge time.Duration
	seen   bool
	scope  Scope
}

func (walker *hintWalker) walk(set ast.SelectionSet, root bool, visited map[string]bool) {
	for _, selection := range set {
		switch node := selection.(type) {
		case *ast.Field:
			walker.visit(node, root)
			walker.walk(node.SelectionSet, false, visited)

		case *ast.InlineFragment:
			walker.walk(node.SelectionSet, root, visited)

		case *ast.FragmentSpread:
			if node.Definition == nil || visited[node.Name] {
				continue
			}
			visited[node.Name] = true
			walker.walk(node.Definition.SelectionSet, root, visited)
		}
	}
}

func (walker *hintWalker) visit(field *ast.Field, root bool) {
	if field.Definition == nil {
		return
	}

	returned := walker.hints.schema.Types[field.Definition.Type.Name()]
	composite := returned != nil && returned.IsCompositeType()

	maxAge, scope, hinted := readHint(field.Definition.Directives)
	if !hinted && composite {
		maxAge, scope, hinted = readHint(returned.Directives)
	}

	if scope == ScopePrivate {
		walker.scope = ScopePrivate
	}

	switch {
	case hinted && maxAge != nil:
		walker.observe(*maxAge)
	case root || composite:
		walker.observe(walker.hints.defaultMaxAge)
	}
}

func (walker *hintWalker) observe(maxAge time.Duration) {
	if !walker.seen || maxAge < walker.maxAge {
		walker.maxAge = maxAge
	}
	walker.seen = true
}

// readHint extracts @cacheControl arguments. maxAge is nil when the directive
// only sets a scope.
func readHint(directives ast.DirectiveList) (maxAge *time.Duration, scope Scope, ok bool) {
	directive := directives.ForName(cacheControlDirective)
	if directive == nil {
		return nil, "", false
	}

	if argument := directive.Arguments.ForName("maxAge"); argument != nil && argument.Value != nil {
		if seconds, err := strconv.Atoi(argument.Value.Raw); err == nil {
			age := time.Duration(seconds) * time.Second
			maxAge = &age
		}
	}

	if argument := directive.Arguments.ForName("scope"); argument != nil && argument.Value != nil {
		scope = Scope(argument.Value.Raw)
	}

	return maxAge, scope, true
}
