package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/models"
)

func newBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage books",
	}

	cmd.AddCommand(newBooksListCommand())
	cmd.AddCommand(newBooksGetCommand())
	cmd.AddCommand(newBooksSearchCommand())
	cmd.AddCommand(newBooksCreateCommand())
	cmd.AddCommand(newBooksDeleteCommand())
	cmd.AddCommand(newBooksBulkDeleteCommand())

	return cmd
}

func newBooksListCommand() *cobra.Command {
	var (
		page     int
		ordering string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cc := getCliContext(cmd)

			params := client.Params{"ordering": ordering}
			if page > 0 {
				params["page"] = strconv.Itoa(page)
			}
			result, err := cc.Client.Books().List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printBooks(cc, result, format)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().StringVar(&ordering, "ordering", "", "Ordering, e.g. -price or title")
	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "Output format (table, json)")

	return cmd
}

func newBooksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cc := getCliContext(cmd)
			book, err := cc.Client.Books().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cc.Out, book)
		},
	}
}

// searchFlags are shared by search and bulk-delete --filtered.
type searchFlags struct {
	author, category, publisher, language, series int64

	format    string
	genres    []string
	minPrice  float64
	maxPrice  float64
	minRating float64
	maxRating float64
	fromDate  string
	toDate    string
	withCover bool
	favorites bool
	ordering  string
	page      int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.author, "author", 0, "Author id")
	cmd.Flags().Int64Var(&f.category, "category", 0, "Category id")
	cmd.Flags().Int64Var(&f.publisher, "publisher", 0, "Publisher id")
	cmd.Flags().Int64Var(&f.language, "language", 0, "Language id")
	cmd.Flags().Int64Var(&f.series, "series", 0, "Series id")
	cmd.Flags().StringVar(&f.format, "format", "", "Book format (hardcover, paperback, ebook, ...)")
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "Genre name, repeatable")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().Float64Var(&f.minRating, "min-rating", 0, "Minimum average rating")
	cmd.Flags().Float64Var(&f.maxRating, "max-rating", 0, "Maximum average rating")
	cmd.Flags().StringVar(&f.fromDate, "published-after", "", "Earliest publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.toDate, "published-before", "", "Latest publication date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.withCover, "with-cover", false, "Only books with a cover image")
	cmd.Flags().BoolVar(&f.favorites, "favorites-only", false, "Only my favorites")
	cmd.Flags().StringVar(&f.ordering, "ordering", "", "Ordering, e.g. -average_rating")
	cmd.Flags().IntVar(&f.page, "page", 0, "Page number")
}

// filters only sets the numeric bounds whose flag was given, so 0 stays a
// valid bound.
func (f *searchFlags) filters(cmd *cobra.Command, text string) (client.SearchFilters, error) {
	sf := client.SearchFilters{
		Search:        text,
		Author:        f.author,
		Category:      f.category,
		Publisher:     f.publisher,
		Language:      f.language,
		Series:        f.series,
		BookFormat:    f.format,
		Genres:        f.genres,
		HasCoverImage: f.withCover,
		FavoritesOnly: f.favorites,
		Ordering:      f.ordering,
		Page:          f.page,
	}

	bounds := []struct {
		flag string
		v    float64
		dst  **float64
	}{
		{"min-price", f.minPrice, &sf.MinPrice},
		{"max-price", f.maxPrice, &sf.MaxPrice},
		{"min-rating", f.minRating, &sf.MinRating},
		{"max-rating", f.maxRating, &sf.MaxRating},
	}
	for _, b := range bounds {
		if cmd.Flags().Changed(b.flag) {
			*b.dst = client.Float(b.v)
		}
	}

	var err error
	if sf.MinPublicationDate, err = parseDate(f.fromDate); err != nil {
		return sf, err
	}
	if sf.MaxPublicationDate, err = parseDate(f.toDate); err != nil {
		return sf, err
	}
	return sf, nil
}

func newBooksSearchCommand() *cobra.Command {
	var (
		flags  searchFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search books by text and filters",
		Example: `  bookstore books search dune
  bookstore books search --genre Fantasy --genre Sci-Fi --min-price 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			cc := getCliContext(cmd)

			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			filters, err := flags.filters(cmd, text)
			if err != nil {
				return err
			}

			result, err := cc.Client.SearchWithFilters(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return printBooks(cc, result, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format (table, json)")

	return cmd
}

func newBooksCreateCommand() *cobra.Command {
	var (
		in    models.BookInput
		cover string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a book, optionally uploading a cover image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			var (
				book *models.Book
				err  error
			)
			if cover == "" {
				book, err = cc.Client.Books().Create(cmd.Context(), in)
			} else {
				f, openErr := os.Open(cover)
				if openErr != nil {
					return fmt.Errorf("open cover: %w", openErr)
				}
				defer f.Close()
				book, err = cc.Client.CreateBookWithCover(cmd.Context(), in, client.FilePart{
					FileName: filepath.Base(cover),
					Content:  f,
				})
			}
			if err != nil {
				return err
			}

			cc.Notifier.Success(fmt.Sprintf("Book %q created with id %d.", book.Title, book.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Title")
	cmd.Flags().StringVar(&in.ISBN, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().Int64Var(&in.Author, "author", 0, "Author id")
	cmd.Flags().Int64Var(&in.Category, "category", 0, "Category id")
	cmd.Flags().Int64Var(&in.Publisher, "publisher", 0, "Publisher id")
	cmd.Flags().Int64Var(&in.Language, "language", 0, "Language id")
	cmd.Flags().Int64Var(&in.Series, "series", 0, "Series id")
	cmd.Flags().Int64SliceVar(&in.Genres, "genre", nil, "Genre id, repeatable")
	cmd.Flags().StringVar(&in.Price, "price", "", "Price, e.g. 12.50")
	cmd.Flags().StringVar(&in.PublicationDate, "published", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&in.PageCount, "pages", 0, "Page count")
	cmd.Flags().StringVar(&in.BookFormat, "format", "", "Book format")
	cmd.Flags().StringVar(&cover, "cover", "", "Path of a cover image to upload")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newBooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cc := getCliContext(cmd)
			if err := cc.Client.Books().Delete(cmd.Context(), id); err != nil {
				return err
			}
			cc.Notifier.Success(fmt.Sprintf("Book %d deleted.", id))
			return nil
		},
	}
}

func newBooksBulkDeleteCommand() *cobra.Command {
	var (
		flags    searchFlags
		filtered bool
	)

	cmd := &cobra.Command{
		Use:   "bulk-delete [id...]",
		Short: "Delete several books by id, or every book matching filters",
		Example: `  bookstore books bulk-delete 1 2 3
  bookstore books bulk-delete --filtered --author 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			var (
				resp *models.BulkDeleteResponse
				err  error
			)
			if filtered {
				if len(args) > 0 {
					return errors.New("ids and --filtered cannot be combined")
				}
				filters, ferr := flags.filters(cmd, "")
				if ferr != nil {
					return ferr
				}
				resp, err = cc.Client.BulkDeleteFiltered(cmd.Context(), filters)
			} else {
				ids := make([]int64, 0, len(args))
				for _, a := range args {
					id, perr := parseID(a)
					if perr != nil {
						return perr
					}
					ids = append(ids, id)
				}
				resp, err = cc.Client.BulkDelete(cmd.Context(), ids)
			}
			if err != nil {
				return err
			}

			cc.Notifier.Success(fmt.Sprintf("Deleted %d books.", resp.DeletedCount))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&filtered, "filtered", false, "Delete every book matching the filter flags")

	return cmd
}

func newFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite books",
	}

	var format string
	list := &cobra.Command{
		Use:   "list",
		Short: "List my favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cc := getCliContext(cmd)
			favs, err := cc.Client.Favorites().All(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return printJSON(cc.Out, favs)
			}

			rows := make([][]string, 0, len(favs))
			for _, f := range favs {
				title := ""
				if f.Book != nil {
					title = f.Book.Title
				}
				rows = append(rows, []string{strconv.FormatInt(f.ID, 10), title, f.CreatedAt.Format(time.DateOnly)})
			}
			return printTable(cc.Out, []string{"ID", "Title", "Added"}, rows)
		},
	}
	list.Flags().StringVarP(&format, "output", "o", formatTable, "Output format (table, json)")

	toggle := &cobra.Command{
		Use:   "toggle <book-id>",
		Short: "Add a book to favorites, or remove it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cc := getCliContext(cmd)
			resp, err := cc.Client.ToggleFavorite(cmd.Context(), id)
			if err != nil {
				return err
			}
			cc.Notifier.Success(resp.Message)
			return nil
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func printBooks(cc *CliContext, page *models.Page[models.Book], format string) error {
	if format == formatJSON {
		return printJSON(cc.Out, page)
	}

	rows := make([][]string, 0, len(page.Results))
	for _, b := range page.Results {
		rating := deref(b.AverageRating)
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.AuthorName,
			b.Price,
			rating,
		})
	}
	if err := printTable(cc.Out, []string{"ID", "Title", "Author", "Price", "Rating"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cc.Out, "%d of %d books\n", len(page.Results), page.Count)
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
