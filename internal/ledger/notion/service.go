// Package notion keeps the ledger in a Notion database, one page per
// transaction.
package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=notion

// NotionService is the subset of the Notion API the ledger needs.
type NotionService interface {
	// CreatePage creates a new page in a Notion database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// QueryDatabase runs one page of a database query.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}
