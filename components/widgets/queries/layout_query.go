package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// ResolveLayoutInput describes a grid of Count items.
type ResolveLayoutInput struct {
	Count int
	Grid  *widgets.GridConfig
}

// ResolveLayoutQuery reports the responsive layout IntelligentGrid would use.
type ResolveLayoutQuery struct{}

// NewResolveLayoutQuery builds the query.
func NewResolveLayoutQuery() *ResolveLayoutQuery {
	return &ResolveLayoutQuery{}
}

var _ gocommand.Querier[ResolveLayoutInput, widgets.GridLayout] = (*ResolveLayoutQuery)(nil)

// Query resolves the layout. Negative counts are rejected.
func (q *ResolveLayoutQuery) Query(_ context.Context, input ResolveLayoutInput) (widgets.GridLayout, error) {
	if input.Count < 0 {
		return widgets.GridLayout{}, errors.New("layout query requires a non-negative count")
	}
	return widgets.ResolveLayout(input.Count, input.Grid), nil
}

// TypeInfo summarizes a registered widget type.
type TypeInfo struct {
	Type      widgets.WidgetType `json:"type"`
	Component string             `json:"component"`
	Schema    map[string]any     `json:"schema,omitempty"`
}

// ListTypesInput is the empty input of ListTypesQuery.
type ListTypesInput struct{}

// ListTypesQuery lists the registered widget types.
type ListTypesQuery struct {
	registry *widgets.Registry
}

// NewListTypesQuery builds the query.
func NewListTypesQuery(registry *widgets.Registry) *ListTypesQuery {
	return &ListTypesQuery{registry: registry}
}

var _ gocommand.Querier[ListTypesInput, []TypeInfo] = (*ListTypesQuery)(nil)

// Query returns registered types ordered by name.
func (q *ListTypesQuery) Query(context.Context, ListTypesInput) ([]TypeInfo, error) {
	if q.registry == nil {
		return nil, errors.New("types query requires registry")
	}
	descs := q.registry.Descriptors()
	out := make([]TypeInfo, 0, len(descs))
	for _, desc := range descs {
		out = append(out, TypeInfo{Type: desc.Type, Component: desc.Component, Schema: desc.Schema})
	}
	return out, nil
}
