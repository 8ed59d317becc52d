// Package gsheets implements the spreadsheet RemoteCollection over the Google Sheets v4 API.
package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-lib/log"
	"github.com/uhppoted/uhppoted-sheets/spreadsheet"
)

// Collection issues spreadsheet calls through a Sheets API service. Requests are paced by an
// optional client side rate limiter so that long running jobs stay inside the per-user quota.
type Collection struct {
	google  *sheets.Service
	limiter *rate.Limiter
}

// NewCollection creates a Collection using an authorised HTTP client. A rate limit of 0 disables
// pacing.
func NewCollection(ctx context.Context, client *http.Client, requestsPerMinute uint, options ...option.ClientOption) (*Collection, error) {
	options = append([]option.ClientOption{option.WithHTTPClient(client)}, options...)

	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}

	return &Collection{
		google:  google,
		limiter: limiter,
	}, nil
}

func (c *Collection) Get(ctx context.Context, spreadsheetID string, options spreadsheet.GetOptions) (*sheets.Spreadsheet, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: get %v", spreadsheetID)

	call := c.google.Spreadsheets.Get(spreadsheetID).Context(ctx)

	if len(options.Ranges) > 0 {
		call = call.Ranges(options.Ranges...)
	}

	if options.IncludeGridData {
		call = call.IncludeGridData(true)
	}

	if options.Fields != "" {
		call = call.Fields(googleapi.Field(options.Fields))
	}

	return call.Do()
}

func (c *Collection) BatchApply(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: batch-update %v (%v requests)", spreadsheetID, len(requests))

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	return c.google.Spreadsheets.BatchUpdate(spreadsheetID, &rq).Context(ctx).Do()
}

func (c *Collection) RangeGet(ctx context.Context, spreadsheetID string, rng string, options spreadsheet.ValueOptions) (*sheets.ValueRange, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: get %v %v", spreadsheetID, rng)

	call := c.google.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx)

	if options.MajorDimension != "" {
		call = call.MajorDimension(options.MajorDimension)
	}

	if options.ValueRenderOption != "" {
		call = call.ValueRenderOption(options.ValueRenderOption)
	}

	if options.DateTimeRenderOption != "" {
		call = call.DateTimeRenderOption(options.DateTimeRenderOption)
	}

	return call.Do()
}

func (c *Collection) RangeUpdate(ctx context.Context, spreadsheetID string, rng string, options spreadsheet.ValueOptions, body *sheets.ValueRange) (*sheets.UpdateValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: update %v %v", spreadsheetID, rng)

	call := c.google.Spreadsheets.Values.Update(spreadsheetID, rng, body).Context(ctx)

	if options.ValueInputOption != "" {
		call = call.ValueInputOption(options.ValueInputOption)
	}

	if options.IncludeValuesInResponse {
		call = call.IncludeValuesInResponse(true)
	}

	if options.ValueRenderOption != "" {
		call = call.ResponseValueRenderOption(options.ValueRenderOption)
	}

	return call.Do()
}

func (c *Collection) RangeAppend(ctx context.Context, spreadsheetID string, rng string, options spreadsheet.ValueOptions, body *sheets.ValueRange) (*sheets.AppendValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: append %v %v", spreadsheetID, rng)

	call := c.google.Spreadsheets.Values.Append(spreadsheetID, rng, body).Context(ctx)

	if options.ValueInputOption != "" {
		call = call.ValueInputOption(options.ValueInputOption)
	}

	if options.InsertDataOption != "" {
		call = call.InsertDataOption(options.InsertDataOption)
	}

	if options.IncludeValuesInResponse {
		call = call.IncludeValuesInResponse(true)
	}

	return call.Do()
}

func (c *Collection) RangeClear(ctx context.Context, spreadsheetID string, rng string) (*sheets.ClearValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	log.Debugf("sheets: clear %v %v", spreadsheetID, rng)

	return c.google.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
}

func (c *Collection) wait(ctx context.Context) error {
	if c.limiter != nil {
		return c.limiter.Wait(ctx)
	}

	return nil
}
