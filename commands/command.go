package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/googleapi"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/config"
	"github.com/uhppoted/uhppoted-sheets/gsheets"
	"github.com/uhppoted/uhppoted-sheets/spreadsheet"
)

const APP = "uhppoted-sheets"

// VERSION is set at build time via -ldflags.
var VERSION = "v0.8.x"

type options struct {
	config      string
	credentials string
	workdir     string
	url         string
	debug       bool
}

// connect creates the remote collection used by the spreadsheet commands. Replaced in tests.
var connect = func(ctx context.Context, cfg *config.Config) (spreadsheet.RemoteCollection, error) {
	client, err := gsheets.Authorize(cfg.Credentials, gsheets.SHEETS, cfg.TokensDir())
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	return gsheets.NewCollection(ctx, client, cfg.RateLimit)
}

// NewRootCommand returns the uhppoted-sheets command tree.
func NewRootCommand() *cobra.Command {
	o := options{
		config: config.DEFAULT_CONFIG,
	}

	root := &cobra.Command{
		Use:           APP,
		Short:         "Manages Google Sheets spreadsheets, worksheets and cell ranges",
		Version:       VERSION,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.debug {
				log.SetDebug(true)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.config, "config", o.config, "Path to the YAML configuration file")
	flags.BoolVar(&o.debug, "debug", o.debug, "Displays internal information for diagnosing errors")
	flags.StringVar(&o.credentials, "credentials", o.credentials, "Path for the 'credentials.json' file")
	flags.StringVar(&o.workdir, "workdir", o.workdir, "Directory for working files (tokens, revisions, etc)")
	flags.StringVar(&o.url, "url", o.url, "Spreadsheet URL or ID")

	root.AddCommand(
		newVersionCmd(),
		newAuthoriseCmd(&o),
		newSheetsCmd(&o),
		newGetCmd(&o),
		newPutCmd(&o),
		newAddSheetCmd(&o),
		newDuplicateSheetCmd(&o),
		newDeleteSheetCmd(&o),
		newAddNamedRangeCmd(&o),
		newFindCmd(&o),
		newRevisionCmd(&o),
	)

	return root
}

// Execute runs the command line with the supplied context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// resolve loads the config file and applies the command line overrides.
func (o *options) resolve() (*config.Config, error) {
	cfg, err := config.Load(o.config)
	if err != nil {
		return nil, err
	}

	if o.credentials != "" {
		cfg.Credentials = o.credentials
	}

	if o.workdir != "" {
		cfg.Workdir = o.workdir
	}

	if cfg.Debug {
		log.SetDebug(true)
	}

	if strings.TrimSpace(cfg.Credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option")
	}

	return cfg, nil
}

// open fetches the spreadsheet identified by --url.
func (o *options) open(ctx context.Context) (*spreadsheet.Spreadsheet, *config.Config, error) {
	cfg, err := o.resolve()
	if err != nil {
		return nil, nil, err
	}

	id, err := spreadsheetID(o.url)
	if err != nil {
		return nil, nil, err
	}

	log.Debugf("Spreadsheet - ID:%s", id)

	remote, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := spreadsheet.NewSession(remote).GetSpreadsheet(ctx, id, spreadsheet.GetOptions{})
	if err != nil {
		return nil, nil, describe(err)
	}

	return s, cfg, nil
}

var urlRegex = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// spreadsheetID extracts the spreadsheet ID from a Google Sheets URL. A bare ID is returned as is.
func spreadsheetID(url string) (string, error) {
	url = strings.TrimSpace(url)

	if url == "" {
		return "", fmt.Errorf("--url is a required option")
	}

	if match := urlRegex.FindStringSubmatch(url); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if idRegex.MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

// worksheet returns the worksheet with the given title.
func worksheet(s *spreadsheet.Spreadsheet, title string) (*spreadsheet.Sheet, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("--sheet is a required option")
	}

	if sheet, ok := s.SheetByName(title); ok {
		return sheet, nil
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s' in spreadsheet '%s'", title, s.Title())
}

// describe adds a hint to the Sheets API errors that users commonly run into.
func describe(err error) error {
	var apiErr *googleapi.Error

	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("access denied - check the credentials or rerun 'authorise' (%w)", err)

		case http.StatusNotFound:
			return fmt.Errorf("spreadsheet not found (%w)", err)

		case http.StatusTooManyRequests:
			return fmt.Errorf("request quota exceeded - reduce the configured rate-limit (%w)", err)
		}
	}

	var reloadErr *spreadsheet.ReloadError
	if errors.As(err, &reloadErr) {
		return fmt.Errorf("update applied but the local copy could not be refreshed (%w)", err)
	}

	return err
}

var cellRegex = regexp.MustCompile(`^(?:.*!)?\$?([a-zA-Z]*)\$?([0-9]*)`)

// a1 converts a cell position relative to the top left corner of a range to A1 notation. Column
// only ranges (e.g. B:C) start at row 1 and row only ranges (e.g. 2:5) start at column A.
func a1(expr string, cell spreadsheet.Cell) string {
	column := 0
	row := 1

	if match := cellRegex.FindStringSubmatch(expr); len(match) > 2 {
		if match[1] != "" {
			for _, ch := range strings.ToUpper(match[1]) {
				column = column*26 + int(ch-'A'+1)
			}
			column--
		}

		if match[2] != "" {
			fmt.Sscanf(match[2], "%d", &row)
		}
	}

	column += cell.Column
	row += cell.Row

	letters := ""
	for column >= 0 {
		letters = string(rune('A'+column%26)) + letters
		column = column/26 - 1
	}

	return fmt.Sprintf("%s%d", letters, row)
}
