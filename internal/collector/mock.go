package collector

import (
	"context"
	"encoding/json"

	"github.com/qepting91/listen-pipeline/internal/domain"
)

// MockClient implements domain.Collector but returns an empty collection for every resource
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Fetch(ctx context.Context, resource domain.Resource) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return json.RawMessage(`{"items": []}`), nil
}
