package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-widgets/components/widgets/commands"
	"github.com/goliatone/go-widgets/components/widgets/queries"
)

// Executor is the transport-neutral surface used by router adapters.
type Executor interface {
	Save(ctx context.Context, input commands.SavePageInput) error
	Delete(ctx context.Context, input commands.DeletePageInput) error
	Refresh(ctx context.Context, input commands.RefreshPageInput) error
	Render(ctx context.Context, input queries.RenderPageInput) (queries.PageView, error)
}

// CommandExecutor adapts go-command handlers to Executor.
type CommandExecutor struct {
	SaveCommander    gocommand.Commander[commands.SavePageInput]
	DeleteCommander  gocommand.Commander[commands.DeletePageInput]
	RefreshCommander gocommand.Commander[commands.RefreshPageInput]
	RenderQuerier    gocommand.Querier[queries.RenderPageInput, queries.PageView]
}

var errHandlerMissing = errors.New("httpapi: handler not configured")

// Save runs the save command.
func (e *CommandExecutor) Save(ctx context.Context, input commands.SavePageInput) error {
	if e.SaveCommander == nil {
		return errHandlerMissing
	}
	return e.SaveCommander.Execute(ctx, input)
}

// Delete runs the delete command.
func (e *CommandExecutor) Delete(ctx context.Context, input commands.DeletePageInput) error {
	if e.DeleteCommander == nil {
		return errHandlerMissing
	}
	return e.DeleteCommander.Execute(ctx, input)
}

// Refresh runs the refresh command.
func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshPageInput) error {
	if e.RefreshCommander == nil {
		return errHandlerMissing
	}
	return e.RefreshCommander.Execute(ctx, input)
}

// Render runs the render query.
func (e *CommandExecutor) Render(ctx context.Context, input queries.RenderPageInput) (queries.PageView, error) {
	if e.RenderQuerier == nil {
		return queries.PageView{}, errHandlerMissing
	}
	return e.RenderQuerier.Query(ctx, input)
}
