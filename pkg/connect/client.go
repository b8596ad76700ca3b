// Package connect wraps the Amazon Connect SDK behind the two lookups the
// pipeline needs: contact details and instance storage configuration.
package connect

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconnect "github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/aws/aws-sdk-go-v2/service/connect/types"
	"github.com/rotisserie/eris"
)

// ResourceType names an instance storage resource kind.
type ResourceType string

const (
	ResourceCallRecordings  ResourceType = "CALL_RECORDINGS"
	ResourceChatTranscripts ResourceType = "CHAT_TRANSCRIPTS"
)

// ErrNotConfigured is returned by StorageBucket when the instance has no S3
// storage config for the requested resource type.
var ErrNotConfigured = eris.New("connect: no s3 storage config for resource type")

// Contact holds the contact details used for location resolution.
type Contact struct {
	ID             string
	Channel        string // "VOICE", "CHAT", "TASK", ...
	InitiationTime time.Time
}

// Client defines the Amazon Connect operations used by the pipeline.
type Client interface {
	DescribeContact(ctx context.Context, contactID string) (*Contact, error)
	StorageBucket(ctx context.Context, resource ResourceType) (string, error)
}

// sdkClient implements Client using aws-sdk-go-v2.
type sdkClient struct {
	client     *awsconnect.Client
	instanceID string
}

// NewClient creates a Connect client scoped to one instance.
func NewClient(cfg aws.Config, instanceID string) Client {
	return &sdkClient{
		client:     awsconnect.NewFromConfig(cfg),
		instanceID: instanceID,
	}
}

func (c *sdkClient) DescribeContact(ctx context.Context, contactID string) (*Contact, error) {
	out, err := c.client.DescribeContact(ctx, &awsconnect.DescribeContactInput{
		ContactId:  aws.String(contactID),
		InstanceId: aws.String(c.instanceID),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "connect: describe contact %s", contactID)
	}
	if out.Contact == nil {
		return nil, eris.Errorf("connect: describe contact %s: empty response", contactID)
	}

	contact := &Contact{
		ID:      contactID,
		Channel: string(out.Contact.Channel),
	}
	if out.Contact.InitiationTimestamp != nil {
		contact.InitiationTime = *out.Contact.InitiationTimestamp
	}
	return contact, nil
}

// StorageBucket returns the S3 bucket configured for the given resource
// type. Storage configs are paginated; the first S3-typed config wins.
func (c *sdkClient) StorageBucket(ctx context.Context, resource ResourceType) (string, error) {
	var nextToken *string
	for {
		out, err := c.client.ListInstanceStorageConfigs(ctx, &awsconnect.ListInstanceStorageConfigsInput{
			InstanceId:   aws.String(c.instanceID),
			ResourceType: types.InstanceStorageResourceType(resource),
			NextToken:    nextToken,
		})
		if err != nil {
			return "", eris.Wrapf(err, "connect: list storage configs for %s", string(resource))
		}

		for _, sc := range out.StorageConfigs {
			if sc.StorageType == types.StorageTypeS3 && sc.S3Config != nil {
				return aws.ToString(sc.S3Config.BucketName), nil
			}
		}

		if out.NextToken == nil {
			return "", eris.Wrapf(ErrNotConfigured, "connect: resource type %s", string(resource))
		}
		nextToken = out.NextToken
	}
}
