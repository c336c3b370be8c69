package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// NotionClient implements NotionService with the notionapi SDK. Requests
// rejected with 429 are retried by the SDK and transient 5xx answers by
// RetryTransport, each up to the configured count.
type NotionClient struct {
	client *notionapi.Client
}

func NewNotionClient(token string, retries int) *NotionClient {
	return &NotionClient{
		client: notionapi.NewClient(
			notionapi.Token(token),
			notionapi.WithRetry(retries),
			notionapi.WithHTTPClient(&http.Client{Transport: NewRetryTransport(http.DefaultTransport, retries)}),
		),
	}
}

func (n *NotionClient) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	}

	page, err := n.client.Page.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	return page, nil
}

func (n *NotionClient) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := n.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("query database: %w", err)
	}

	return resp, nil
}
