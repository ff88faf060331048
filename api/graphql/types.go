package graphql

import "github.com/graphql-go/graphql"

// Object and input types for the schema surface. Field resolution falls
// through to the default resolver, which matches the json tags on the
// domain structs.

var projectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Project",
	Fields: graphql.Fields{
		"id":                  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"department":          &graphql.Field{Type: graphql.String},
		"backgroundColor":     &graphql.Field{Type: graphql.String},
		"backgroundImage":     &graphql.Field{Type: graphql.String},
		"backgroundColorCard": &graphql.Field{Type: graphql.String},
		"backgroundCard":      &graphql.Field{Type: graphql.String},
		"priority":            &graphql.Field{Type: graphql.Boolean},
		"dateAccess":          &graphql.Field{Type: graphql.String},
	},
})

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Task",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"projectId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"responsible": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"endDate":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"ended":       &graphql.Field{Type: graphql.Boolean},
		"notes":       &graphql.Field{Type: graphql.String},
		"status":      &graphql.Field{Type: graphql.String},
		"pathFile":    &graphql.Field{Type: graphql.String},
	},
})

var projectInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":                &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"department":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"backgroundColor":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"backgroundImage":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"backgroundColorCard": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"backgroundCard":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"priority":            &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"dateAccess":          &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var taskInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"responsible": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		"endDate":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"ended":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"notes":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"status":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"pathFile":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
