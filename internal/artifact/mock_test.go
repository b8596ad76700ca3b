package artifact

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

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
