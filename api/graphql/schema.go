// Package graphql assembles the single schema the gateway exposes:
// queries and mutations over HTTP, subscriptions over the WebSocket
// transport. Resolvers delegate to the use cases and the bus; the
// schema itself holds no state.
package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/bus"
	projectUC "github.com/taskboard/backend/usecase/project"
	taskUC "github.com/taskboard/backend/usecase/task"
)

// Resolvers bundles the dependencies the schema needs.
type Resolvers struct {
	Projects *projectUC.UseCase
	Tasks    *taskUC.UseCase
	Bus      *bus.Bus
	Logger   *zap.Logger
}

// NewSchema builds the executable schema around the provided resolvers.
func NewSchema(r *Resolvers) (graphql.Schema, error) {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getProjects": &graphql.Field{
				Type: graphql.NewList(projectType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					projects, err := r.Projects.ListProjects(p.Context)
					return projects, gatewayError(err)
				},
			},
			"getProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := r.Projects.GetProject(p.Context, idArg(p))
					return project, gatewayError(err)
				},
			},
			"getTasksByProjectId": &graphql.Field{
				Type: graphql.NewList(taskType),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					projectID, _ := p.Args["projectId"].(string)
					tasks, err := r.Tasks.ListTasksByProject(p.Context, projectID)
					return tasks, gatewayError(err)
				},
			},
			"getTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.GetTask(p.Context, idArg(p))
					return task, gatewayError(err)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(projectInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					created, err := r.Projects.CreateProject(p.Context, projectFromInput(input))
					if err != nil {
						return nil, gatewayError(err)
					}
					return created, nil
				},
			},
			"updateProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(projectInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					updated, err := r.Projects.UpdateProject(p.Context, idArg(p), projectPatchFromInput(input))
					if err != nil {
						return nil, gatewayError(err)
					}
					return updated, nil
				},
			},
			"deleteProject": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					confirmation, err := r.Projects.DeleteProject(p.Context, idArg(p))
					if err != nil {
						return nil, gatewayError(err)
					}
					return confirmation, nil
				},
			},
			"createTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					created, err := r.Tasks.CreateTask(p.Context, taskFromInput(input))
					if err != nil {
						return nil, gatewayError(err)
					}
					return created, nil
				},
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					updated, err := r.Tasks.UpdateTask(p.Context, idArg(p), taskPatchFromInput(input))
					if err != nil {
						return nil, gatewayError(err)
					}
					return updated, nil
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					confirmation, err := r.Tasks.DeleteTask(p.Context, idArg(p))
					if err != nil {
						return nil, gatewayError(err)
					}
					return confirmation, nil
				},
			},
		},
	})

	subscription := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"projectCreated": r.subscriptionField(projectType, domain.EventProjectCreated),
			"projectUpdated": r.subscriptionField(projectType, domain.EventProjectUpdated),
			"projectDeleted": r.subscriptionField(graphql.ID, domain.EventProjectDeleted),
			"taskCreated":    r.subscriptionField(taskType, domain.EventTaskCreated),
			"taskUpdated":    r.subscriptionField(taskType, domain.EventTaskUpdated),
			"taskDeleted":    r.subscriptionField(graphql.ID, domain.EventTaskDeleted),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
	})
}

// subscriptionField wires one event kind to the bus. Each executed
// subscription gets its own channel; cancelling the operation context
// deregisters it.
func (r *Resolvers) subscriptionField(output graphql.Output, kind domain.EventKind) *graphql.Field {
	return &graphql.Field{
		Type: output,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source, nil
		},
		Subscribe: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Bus.Subscribe(p.Context, kind), nil
		},
	}
}

func idArg(p graphql.ResolveParams) string {
	id, _ := p.Args["id"].(string)
	return id
}

// gatewayError keeps store failures opaque to clients: the use cases
// log the wrapped cause when they classify it, and only the
// classification message crosses the API boundary.
func gatewayError(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsDomainError(err, domain.ErrCodeStore) {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return errors.New(dErr.Message)
		}
	}
	return err
}
