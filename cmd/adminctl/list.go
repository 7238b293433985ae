package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/portfolio-admin/internal/app"
	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/models"
)

var listable = append(append([]string{}, core.ContentCollections...), core.CollectionAuditLogs)

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List the records of a collection",
	Long:  "List every record of a collection. Valid collections: " + strings.Join(listable, ", ") + ".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, tbl, err := listCollection(cmd.Context(), application, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), items)
			return nil
		}
		tbl.write(cmd.OutOrStdout())
		return nil
	},
}

// fetchAll walks every page of a listing.
func fetchAll[T any](ctx context.Context, list func(context.Context, core.PageRequest) (*core.Page[T], error)) ([]T, error) {
	out := make([]T, 0)
	for page := 0; ; page++ {
		p, err := list(ctx, core.PageRequest{Page: page, RowsPerPage: core.MaxRowsPerPage})
		if err != nil {
			return nil, err
		}
		out = append(out, p.Items...)
		if p.To >= p.Total {
			return out, nil
		}
	}
}

func listCollection(ctx context.Context, a *app.App, name string) (interface{}, table, error) {
	switch name {
	case core.CollectionAbout:
		items, err := fetchAll(ctx, a.About.List)
		return items, aboutTable(items), err
	case core.CollectionEducation:
		items, err := fetchAll(ctx, a.Education.List)
		return items, educationTable(items), err
	case core.CollectionSkills:
		items, err := fetchAll(ctx, a.Skills.List)
		return items, skillTable(items), err
	case core.CollectionProjects:
		items, err := fetchAll(ctx, a.Projects.List)
		return items, projectTable(items), err
	case core.CollectionContact:
		items, err := fetchAll(ctx, a.Contact.List)
		return items, contactTable(items), err
	case core.CollectionAuditLogs:
		items, err := fetchAll(ctx, a.Audit.List)
		return items, auditTable(items), err
	default:
		return nil, table{}, fmt.Errorf("%w %q (valid: %s)", core.ErrInvalidCollection, name, strings.Join(listable, ", "))
	}
}

func aboutTable(items []models.About) table {
	t := table{header: []string{"ID", "STATUS", "NAME", "PROFESSION", "UPDATED"}}
	for _, a := range items {
		t.rows = append(t.rows, []string{a.ID, a.Status, a.Name, a.Profession, a.UpdatedAt})
	}
	return t
}

func educationTable(items []models.Education) table {
	t := table{header: []string{"ID", "STATUS", "TITLE", "INSTITUTION", "DURATION", "POSITION"}}
	for _, e := range items {
		t.rows = append(t.rows, []string{e.ID, e.Status, e.Title, e.Institution, e.Duration, e.Position})
	}
	return t
}

func skillTable(items []models.Skill) table {
	t := table{header: []string{"ID", "STATUS", "NAME", "LEVEL"}}
	for _, s := range items {
		t.rows = append(t.rows, []string{s.ID, s.Status, s.Name, strconv.Itoa(s.Level)})
	}
	return t
}

func projectTable(items []models.Project) table {
	t := table{header: []string{"ID", "STATUS", "TITLE", "VIEWS", "TECH"}}
	for _, p := range items {
		t.rows = append(t.rows, []string{p.ID, p.Status, p.Title, strconv.Itoa(p.Views), strings.Join(p.TechStack, ", ")})
	}
	return t
}

func contactTable(items []models.Contact) table {
	t := table{header: []string{"ID", "STATUS", "FROM", "EMAIL", "SUBJECT", "CREATED"}}
	for _, c := range items {
		from := strings.TrimSpace(c.FirstName + " " + c.LastName)
		t.rows = append(t.rows, []string{c.ID, c.Status, from, c.Email, c.Subject, c.CreatedAt})
	}
	return t
}

func auditTable(items []models.AuditLog) table {
	t := table{header: []string{"TIMESTAMP", "USER", "ACTION", "TARGET", "ID"}}
	for _, l := range items {
		t.rows = append(t.rows, []string{l.Timestamp, l.UserID, l.Action, l.TargetType, l.TargetID})
	}
	return t
}
