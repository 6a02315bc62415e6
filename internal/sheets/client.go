package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/nutridash/nutridash-server/internal/model"
)

// headerRows is the number of header rows above the data in every tab.
const headerRows = 1

// readRange covers every column the row layouts use.
const readRange = "A2:Z"

// Client implements Tabular against a Google spreadsheet. Every call carries
// its own timeout and a bounded retry, since the upstream API offers neither.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	timeout       time.Duration
	retries       int

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewClient builds a Sheets-backed Tabular using a service-account
// credentials file.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string, timeout time.Duration, retries int) (*Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		timeout:       timeout,
		retries:       retries,
		sheetIDs:      make(map[string]int64),
	}, nil
}

var _ Tabular = (*Client)(nil)

// withRetry runs fn with a per-attempt timeout and retries transient
// failures a bounded number of times. The final error is wrapped as a
// RemoteError so operation boundaries can classify it.
func (c *Client) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		lastErr = fn(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		log.Warn().Str("op", op).Int("attempt", attempt+1).Err(lastErr).Msg("Remote store call failed")
		select {
		case <-ctx.Done():
			return model.NewRemoteError(op, ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
	return model.NewRemoteError(op, lastErr)
}

// ReadTab fetches all data rows of a tab.
func (c *Client) ReadTab(ctx context.Context, tab string) ([][]string, error) {
	var rows [][]string
	err := c.withRetry(ctx, "read "+tab, func(ctx context.Context) error {
		resp, err := c.svc.Spreadsheets.Values.
			Get(c.spreadsheetID, fmt.Sprintf("%s!%s", tab, readRange)).
			Context(ctx).Do()
		if err != nil {
			return err
		}
		rows = make([][]string, 0, len(resp.Values))
		for _, raw := range resp.Values {
			row := make([]string, len(raw))
			for i, cell := range raw {
				row[i] = fmt.Sprint(cell)
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateRow overwrites one data row in place.
func (c *Client) UpdateRow(ctx context.Context, tab string, row int, values []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	target := fmt.Sprintf("%s!A%d", tab, row+headerRows+1)
	return c.withRetry(ctx, "update "+tab, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, target, vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return err
	})
}

// AppendRow adds a row after the last data row of a tab.
func (c *Client) AppendRow(ctx context.Context, tab string, values []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	return c.withRetry(ctx, "append "+tab, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.Values.
			Append(c.spreadsheetID, fmt.Sprintf("%s!A:Z", tab), vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
}

// DeleteRow removes one data row, shifting later rows up.
func (c *Client) DeleteRow(ctx context.Context, tab string, row int) error {
	sheetID, err := c.sheetID(ctx, tab)
	if err != nil {
		return err
	}
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row + headerRows),
					EndIndex:   int64(row + headerRows + 1),
				},
			},
		}},
	}
	return c.withRetry(ctx, "delete "+tab, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
		return err
	})
}

// sheetID resolves a tab title to its numeric sheet id, caching the mapping
// after the first lookup.
func (c *Client) sheetID(ctx context.Context, tab string) (int64, error) {
	c.mu.Lock()
	id, ok := c.sheetIDs[tab]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	err := c.withRetry(ctx, "resolve sheet ids", func(ctx context.Context) error {
		meta, err := c.svc.Spreadsheets.
			Get(c.spreadsheetID).
			Fields("sheets.properties").
			Context(ctx).Do()
		if err != nil {
			return err
		}
		c.mu.Lock()
		for _, s := range meta.Sheets {
			if s.Properties != nil {
				c.sheetIDs[s.Properties.Title] = s.Properties.SheetId
			}
		}
		id, ok = c.sheetIDs[tab]
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, model.NewRemoteError("resolve sheet ids", fmt.Errorf("tab %q not found in spreadsheet", tab))
	}
	return id, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
