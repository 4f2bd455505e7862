// Package graphql serves the itinerary API over GraphQL next to the REST
// routes. Root fields dispatch to typed resolvers; results are projected
// onto the selection set from their JSON form, so output field names follow
// the domain JSON tags.
package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

//go:embed schema.graphqls
var schemaSource string

var errIntrospectionDisabled = errors.New("introspection disabled")

// NewHandler returns the GraphQL endpoint. Only POST with a JSON body is
// accepted.
func NewHandler(r *Resolver, log *slog.Logger) http.Handler {
	srv := handler.New(NewExecutableSchema(r))
	srv.AddTransport(transport.POST{})
	srv.SetErrorPresenter(NewErrorPresenter(log))
	return srv
}

type executableSchema struct {
	schema    *ast.Schema
	queries   map[string]fieldFunc
	mutations map[string]fieldFunc
}

// NewExecutableSchema binds the embedded schema to the resolver.
func NewExecutableSchema(r *Resolver) graphql.ExecutableSchema {
	return &executableSchema{
		schema:    gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource}),
		queries:   r.queryFields(),
		mutations: r.mutationFields(),
	}
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Complexity(_ context.Context, _, _ string, _ int, _ map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	var done bool

	return func(ctx context.Context) *graphql.Response {
		if done {
			return nil
		}
		done = true

		typeName, fields := "Query", e.queries
		if opCtx.Operation.Operation == ast.Mutation {
			typeName, fields = "Mutation", e.mutations
		}

		var buf bytes.Buffer
		buf.WriteByte('{')
		// Root fields run in document order, which serializes mutations.
		for i, f := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{typeName}) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, f.Alias)
			e.resolveRoot(ctx, opCtx, &buf, typeName, fields, f)
		}
		buf.WriteByte('}')

		return &graphql.Response{Data: buf.Bytes()}
	}
}

func (e *executableSchema) resolveRoot(
	ctx context.Context,
	opCtx *graphql.OperationContext,
	buf *bytes.Buffer,
	typeName string,
	fields map[string]fieldFunc,
	f graphql.CollectedField,
) {
	if f.Name == "__typename" {
		writeJSON(buf, typeName)
		return
	}

	fail := func(err error) {
		graphql.AddError(ctx, gqlerror.WrapPath(ast.Path{ast.PathName(f.Alias)}, err))
		buf.WriteString("null")
	}

	resolve, ok := fields[f.Name]
	if !ok {
		// __schema and __type land here.
		fail(errIntrospectionDisabled)
		return
	}

	res, err := resolve(ctx, f.ArgumentMap(opCtx.Variables))
	if err != nil {
		fail(err)
		return
	}

	v, err := toGeneric(res)
	if err != nil {
		fail(err)
		return
	}
	project(opCtx, buf, v, f.Selections, f.Definition.Type.Name())
}

// project writes v restricted to the selection set. Values without a
// selection (scalars, enums, the JSON scalar) are written whole.
func project(opCtx *graphql.OperationContext, buf *bytes.Buffer, v any, sel ast.SelectionSet, typeName string) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case []any:
		buf.WriteByte('[')
		for i, el := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			project(opCtx, buf, el, sel, typeName)
		}
		buf.WriteByte(']')
	case map[string]any:
		if len(sel) == 0 {
			writeJSON(buf, v)
			return
		}
		buf.WriteByte('{')
		for i, f := range graphql.CollectFields(opCtx, sel, []string{typeName}) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(buf, f.Alias)
			if f.Name == "__typename" {
				writeJSON(buf, typeName)
				continue
			}
			project(opCtx, buf, v[f.Name], f.Selections, f.Definition.Type.Name())
		}
		buf.WriteByte('}')
	default:
		writeJSON(buf, v)
	}
}

// toGeneric converts a resolver result to maps and slices keyed by JSON
// field name. Numbers stay json.Number so they are written back unchanged.
func toGeneric(res any) (any, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return v, nil
}

// decodeArgs copies coerced GraphQL arguments into a typed struct.
func decodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.NewValidationError("arguments", err.Error())
	}
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	writeJSON(buf, key)
	buf.WriteByte(':')
}

func writeJSON(buf *bytes.Buffer, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(raw)
}
