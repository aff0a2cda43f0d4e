package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// RenderPageInput identifies a stored page and presentational overrides for
// its outermost element.
type RenderPageInput struct {
	PageID    string
	ClassName string
	Style     widgets.Style
}

// PageView is a rendered page.
type PageView struct {
	Page    widgets.Page  `json:"page"`
	Tree    *widgets.Node `json:"tree,omitempty"`
	HTML    string        `json:"html"`
	Widgets int           `json:"widgets"`
}

type pageService interface {
	Page(ctx context.Context, id string) (widgets.Page, error)
	RenderPage(ctx context.Context, id string, opts ...widgets.RenderOption) (*widgets.Node, error)
}

// RenderPageQuery renders a stored page.
type RenderPageQuery struct {
	service pageService
}

// NewRenderPageQuery builds the query.
func NewRenderPageQuery(service pageService) *RenderPageQuery {
	return &RenderPageQuery{service: service}
}

var _ gocommand.Querier[RenderPageInput, PageView] = (*RenderPageQuery)(nil)

// Query loads and renders the page.
func (q *RenderPageQuery) Query(ctx context.Context, input RenderPageInput) (PageView, error) {
	page, err := q.service.Page(ctx, input.PageID)
	if err != nil {
		return PageView{}, err
	}
	var opts []widgets.RenderOption
	if input.ClassName != "" {
		opts = append(opts, widgets.WithClassName(input.ClassName))
	}
	if len(input.Style) > 0 {
		opts = append(opts, widgets.WithStyle(input.Style))
	}
	node, err := q.service.RenderPage(ctx, input.PageID, opts...)
	if err != nil {
		return PageView{}, err
	}
	return PageView{
		Page:    page,
		Tree:    node,
		HTML:    node.HTML(),
		Widgets: len(node.Widgets()),
	}, nil
}

type listService interface {
	Pages(ctx context.Context) ([]widgets.Page, error)
}

// ListPagesInput is the empty input of ListPagesQuery.
type ListPagesInput struct{}

// ListPagesQuery lists stored pages.
type ListPagesQuery struct {
	service listService
}

// NewListPagesQuery builds the query.
func NewListPagesQuery(service listService) *ListPagesQuery {
	return &ListPagesQuery{service: service}
}

var _ gocommand.Querier[ListPagesInput, []widgets.Page] = (*ListPagesQuery)(nil)

// Query returns every stored page.
func (q *ListPagesQuery) Query(ctx context.Context, _ ListPagesInput) ([]widgets.Page, error) {
	return q.service.Pages(ctx)
}
