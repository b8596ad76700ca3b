package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/disclosure-cli/pkg/anthropic"
	"github.com/sells-group/disclosure-cli/pkg/connect"
	"github.com/sells-group/disclosure-cli/pkg/objectstore"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, bucket, key, contentType string, body []byte) error {
	args := m.Called(ctx, bucket, key, contentType, body)
	return args.Error(0)
}

func (m *mockStore) List(ctx context.Context, bucket, prefix, continuationToken string) (*objectstore.ListPage, error) {
	args := m.Called(ctx, bucket, prefix, continuationToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*objectstore.ListPage), args.Error(1)
}

func (m *mockStore) Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

type mockConnectClient struct {
	mock.Mock
}

func (m *mockConnectClient) DescribeContact(ctx context.Context, contactID string) (*connect.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connect.Contact), args.Error(1)
}

func (m *mockConnectClient) StorageBucket(ctx context.Context, resource connect.ResourceType) (string, error) {
	args := m.Called(ctx, resource)
	return args.String(0), args.Error(1)
}

type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}
