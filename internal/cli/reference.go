package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/models"
)

type referenceCommand[T any] struct {
	use      string
	short    string
	resource func(*client.Client) *client.Resource[T]
	headers  []string
	row      func(T) []string
	// searchAll is set for resources with an unpaginated search_all action.
	searchAll func(ctx context.Context, c *client.Client, text string) ([]T, error)
}

func (r referenceCommand[T]) build() *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.use,
		Short: r.short,
	}

	var (
		search string
		format string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List " + r.use,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cc := getCliContext(cmd)
			items, err := r.resource(cc.Client).All(cmd.Context(), client.Params{"search": search})
			if err != nil {
				return err
			}
			return r.print(cc, items, format)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Filter by name")
	list.Flags().StringVarP(&format, "output", "o", formatTable, "Output format (table, json)")
	cmd.AddCommand(list)

	if r.searchAll != nil {
		var allFormat string
		all := &cobra.Command{
			Use:   "search <text>",
			Short: "Search all " + r.use + " without pagination",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := validateFormat(allFormat); err != nil {
					return err
				}
				cc := getCliContext(cmd)
				items, err := r.searchAll(cmd.Context(), cc.Client, args[0])
				if err != nil {
					return err
				}
				return r.print(cc, items, allFormat)
			},
		}
		all.Flags().StringVarP(&allFormat, "output", "o", formatTable, "Output format (table, json)")
		cmd.AddCommand(all)
	}

	return cmd
}

func (r referenceCommand[T]) print(cc *CliContext, items []T, format string) error {
	if format == formatJSON {
		return printJSON(cc.Out, items)
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, r.row(item))
	}
	return printTable(cc.Out, r.headers, rows)
}

func idName(id int64, name string) []string {
	return []string{strconv.FormatInt(id, 10), name}
}

func newReferenceCommands() []*cobra.Command {
	idNameHeaders := []string{"ID", "Name"}

	return []*cobra.Command{
		referenceCommand[models.Author]{
			use:      "authors",
			short:    "Browse authors",
			resource: (*client.Client).Authors,
			headers:  []string{"ID", "Name", "Books"},
			row: func(a models.Author) []string {
				return append(idName(a.ID, a.Name), strconv.Itoa(a.BooksCount))
			},
			searchAll: func(ctx context.Context, c *client.Client, text string) ([]models.Author, error) {
				return c.SearchAllAuthors(ctx, text)
			},
		}.build(),
		referenceCommand[models.Category]{
			use:      "categories",
			short:    "Browse categories",
			resource: (*client.Client).Categories,
			headers:  []string{"ID", "Name", "Books"},
			row: func(c models.Category) []string {
				return append(idName(c.ID, c.Name), strconv.Itoa(c.BooksCount))
			},
			searchAll: func(ctx context.Context, c *client.Client, text string) ([]models.Category, error) {
				return c.SearchAllCategories(ctx, text)
			},
		}.build(),
		referenceCommand[models.Genre]{
			use:      "genres",
			short:    "Browse genres",
			resource: (*client.Client).Genres,
			headers:  idNameHeaders,
			row:      func(g models.Genre) []string { return idName(g.ID, g.Name) },
		}.build(),
		referenceCommand[models.Publisher]{
			use:      "publishers",
			short:    "Browse publishers",
			resource: (*client.Client).Publishers,
			headers:  idNameHeaders,
			row:      func(p models.Publisher) []string { return idName(p.ID, p.Name) },
		}.build(),
		referenceCommand[models.Language]{
			use:      "languages",
			short:    "Browse languages",
			resource: (*client.Client).Languages,
			headers:  []string{"ID", "Code", "Name"},
			row: func(l models.Language) []string {
				return []string{strconv.FormatInt(l.ID, 10), l.Code, l.Name}
			},
		}.build(),
		referenceCommand[models.Series]{
			use:      "series",
			short:    "Browse series",
			resource: (*client.Client).Series,
			headers:  idNameHeaders,
			row:      func(s models.Series) []string { return idName(s.ID, s.Name) },
		}.build(),
		referenceCommand[models.Character]{
			use:      "characters",
			short:    "Browse characters",
			resource: (*client.Client).Characters,
			headers:  idNameHeaders,
			row:      func(c models.Character) []string { return idName(c.ID, c.Name) },
		}.build(),
		referenceCommand[models.Award]{
			use:      "awards",
			short:    "Browse awards",
			resource: (*client.Client).Awards,
			headers:  idNameHeaders,
			row:      func(a models.Award) []string { return idName(a.ID, a.Name) },
		}.build(),
	}
}

func newDropdownsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dropdowns",
		Short: "Load every reference list used by the book form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			data, err := cc.Client.DropdownData(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cc.Out, data)
		},
	}
}
