// Package tracker declares the resources of the time tracking API: Jira
// issues, projects and development categories, teams, users and their Tempo
// time entries.
package tracker

import (
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
)

// Resource names.
const (
	Categories  = "categories"
	Projects    = "jira_projects"
	Issues      = "jira_issues"
	Teams       = "teams"
	Users       = "users"
	TimeEntries = "time_entries"
)

// Names lists the catalog resources.
var Names = []string{Categories, Projects, Issues, Teams, Users, TimeEntries}

var (
	id        = schema.Field{Description: "Internal identifier", Type: schema.Number}
	createdAt = schema.Field{Description: "Creation timestamp", Type: schema.Date}
	updatedAt = schema.Field{Description: "Last update timestamp", Type: schema.Date}
)

// Schema returns a new descriptor of the resource named name, or nil if the
// catalog has no such resource. Each call returns a fresh value as descriptors
// are compiled in place. The descriptor is named after the resource so
// storage handlers built from it use the resource name as table.
func Schema(name string) *schema.Schema {
	s := descriptor(name)
	if s != nil {
		s.Name = name
	}
	return s
}

func descriptor(name string) *schema.Schema {
	switch name {
	case Categories:
		return &schema.Schema{
			Description: "Development categories issues are classified in",
			Fields: schema.Fields{
				"id":          id,
				"name":        {Type: schema.Text},
				"description": {Type: schema.Text},
				"created_at":  createdAt,
				"updated_at":  updatedAt,
			},
			Relations: schema.Relations{
				"jira_issues": {Resource: Issues, Kind: schema.HasMany, ForeignKey: "development_category_id"},
			},
		}
	case Projects:
		return &schema.Schema{
			Description: "Jira projects",
			Fields: schema.Fields{
				"id":               id,
				"jira_project_id":  {Description: "Jira project id", Type: schema.Number},
				"jira_project_key": {Description: "Jira project key", Type: schema.Text},
				"name":             {Type: schema.Text},
				"created_at":       createdAt,
				"updated_at":       updatedAt,
			},
			Relations: schema.Relations{
				"jira_issues": {Resource: Issues, Kind: schema.HasMany, LocalKey: "jira_project_id", ForeignKey: "jira_project_id"},
			},
		}
	case Issues:
		return &schema.Schema{
			Description: "Jira issues",
			Fields: schema.Fields{
				"id":                      id,
				"jira_issue_id":           {Description: "Jira issue id", Type: schema.Number},
				"jira_issue_key":          {Description: "Jira issue key (i.e.: PROJ-12)", Type: schema.Text},
				"summary":                 {Type: schema.Text},
				"status":                  {},
				"development_category_id": {Type: schema.Number},
				"jira_project_id":         {Type: schema.Number},
				"created_at":              createdAt,
				"updated_at":              updatedAt,
			},
			Relations: schema.Relations{
				"jira_project":         {Resource: Projects, Kind: schema.BelongsTo, LocalKey: "jira_project_id", OwnerKey: "jira_project_id"},
				"development_category": {Resource: Categories, Kind: schema.BelongsTo, LocalKey: "development_category_id"},
				"time_entries":         {Resource: TimeEntries, Kind: schema.HasMany, LocalKey: "jira_issue_id", ForeignKey: "jira_issue_id"},
				"jira_projects":        {Inert: true},
			},
			Proxies: schema.Proxies{
				"jira_project_id": {Mediate: "project_id"},
			},
		}
	case Teams:
		return &schema.Schema{
			Description: "Teams users belong to",
			Fields: schema.Fields{
				"id":         id,
				"name":       {Type: schema.Text},
				"created_at": createdAt,
				"updated_at": updatedAt,
			},
			Relations: schema.Relations{
				"users":   {Resource: Users, Kind: schema.HasMany, ForeignKey: "team_id", Shallow: true},
				"members": {Alias: "users"},
			},
		}
	case Users:
		return &schema.Schema{
			Description: "Users logging time",
			Fields: schema.Fields{
				"id":           id,
				"name":         {Type: schema.Text},
				"lastname":     {Type: schema.Text},
				"email":        {Type: schema.Text},
				"jira_user_id": {Description: "Jira account id", Type: schema.Text},
				"team_id":      {Type: schema.Number},
				"created_at":   createdAt,
				"updated_at":   updatedAt,
			},
			Relations: schema.Relations{
				"team":         {Resource: Teams, Kind: schema.BelongsTo, LocalKey: "team_id"},
				"time_entries": {Resource: TimeEntries, Kind: schema.HasMany, ForeignKey: "user_id"},
				"worklogs":     {Alias: "time_entries.jira_issue"},
			},
		}
	case TimeEntries:
		return &schema.Schema{
			Description: "Tempo worklogs",
			Fields: schema.Fields{
				"id":                 id,
				"tempo_worklog_id":   {Description: "Tempo worklog id", Type: schema.Number},
				"jira_issue_id":      {Type: schema.Number},
				"user_id":            {Type: schema.Number},
				"date":               {Description: "Day the time was spent", Type: schema.Date},
				"time_spent_seconds": {Type: schema.Number},
				"description":        {Type: schema.Text},
				"created_at":         createdAt,
				"updated_at":         updatedAt,
			},
			Relations: schema.Relations{
				"jira_issue": {Resource: Issues, Kind: schema.BelongsTo, LocalKey: "jira_issue_id", OwnerKey: "jira_issue_id"},
				"user":       {Resource: Users, Kind: schema.BelongsTo, LocalKey: "user_id"},
			},
			Proxies: schema.Proxies{
				"user_id": {Mediate: "author_id"},
			},
		}
	}
	return nil
}

// Register binds every catalog resource on i with the storer found under its
// name in storers. A resource without storer is bound anyway and fails with
// resource.ErrNoStorage when queried.
func Register(i resource.Index, storers map[string]resource.Storer, c resource.Conf) {
	for _, name := range Names {
		i.Bind(name, Schema(name), storers[name], c)
	}
}
