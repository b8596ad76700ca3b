package resolve

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/disclosure-cli/pkg/connect"
)

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
