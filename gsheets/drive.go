package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Revision identifies a stored revision of a Google Drive file.
type Revision struct {
	ID       string
	Modified time.Time
}

// LatestRevision returns the most recently modified revision of the spreadsheet file.
func LatestRevision(ctx context.Context, client *http.Client, fileID string, options ...option.ClientOption) (*Revision, error) {
	options = append([]option.ClientOption{option.WithHTTPClient(client)}, options...)

	gdrive, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	page := ""
	latest := Revision{}

	for {
		call := gdrive.Revisions.List(fileID).Context(ctx)
		if page != "" {
			call = call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339Nano, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.Modified.Before(datetime) {
				latest.ID = revision.Id
				latest.Modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.Modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileID)
	}

	return &latest, nil
}
