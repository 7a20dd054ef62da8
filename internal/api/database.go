package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// queryRequest is the body of POST /database/query.
type queryRequest struct {
	Query string `json:"query"`
}

// Tables lists database tables with column and row counts.
func (c *Client) Tables(ctx context.Context) ([]TableInfo, error) {
	var tables []TableInfo
	if err := c.call(ctx, http.MethodGet, "/database/tables", nil, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// TableData returns a page of rows from one table.
func (c *Client) TableData(ctx context.Context, table string, limit, offset int) (*TableData, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var data TableData
	if err := c.call(ctx, http.MethodGet, "/database/tables/"+table+"/data", query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Query executes a read-only SELECT statement. The SELECT-only restriction is
// enforced by the backend; the client sends the statement as-is.
func (c *Client) Query(ctx context.Context, sql string) (*QueryResult, error) {
	var result QueryResult
	if err := c.call(ctx, http.MethodPost, "/database/query", nil, queryRequest{Query: sql}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
