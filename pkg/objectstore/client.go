// Package objectstore wraps the S3 SDK behind the four object operations
// the pipeline needs: fetch, persist, paginated listing, and presigned GET
// links.
package objectstore

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
)

// Object is one listed object.
type Object struct {
	Key  string
	Size int64
}

// ListPage is a single page of a paginated listing. NextToken is "" on the
// final page.
type ListPage struct {
	Objects   []Object
	NextToken string
}

// Client defines the object store operations used by the pipeline.
type Client interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Put(ctx context.Context, bucket, key, contentType string, body []byte) error
	List(ctx context.Context, bucket, prefix, continuationToken string) (*ListPage, error)
	Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// sdkClient implements Client using aws-sdk-go-v2.
type sdkClient struct {
	client  *s3.Client
	presign *s3.PresignClient
	ownerID string
}

// NewClient creates an S3-backed client. ownerID, when non-empty, is sent
// as the expected bucket owner on reads and writes; pass "" to skip the
// ownership check.
func NewClient(cfg aws.Config, ownerID string) Client {
	client := s3.NewFromConfig(cfg)
	return &sdkClient{
		client:  client,
		presign: s3.NewPresignClient(client),
		ownerID: ownerID,
	}
}

func (c *sdkClient) owner() *string {
	if c.ownerID == "" {
		return nil
	}
	return aws.String(c.ownerID)
}

func (c *sdkClient) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(bucket),
		Key:                 aws.String(key),
		ExpectedBucketOwner: c.owner(),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "objectstore: get s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

func (c *sdkClient) Put(ctx context.Context, bucket, key, contentType string, body []byte) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:              aws.String(bucket),
		Key:                 aws.String(key),
		Body:                bytes.NewReader(body),
		ContentType:         aws.String(contentType),
		ExpectedBucketOwner: c.owner(),
	})
	if err != nil {
		return eris.Wrapf(err, "objectstore: put s3://%s/%s", bucket, key)
	}
	return nil
}

func (c *sdkClient) List(ctx context.Context, bucket, prefix, continuationToken string) (*ListPage, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}

	out, err := c.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, eris.Wrapf(err, "objectstore: list s3://%s/%s", bucket, prefix)
	}

	page := &ListPage{
		Objects:   make([]Object, 0, len(out.Contents)),
		NextToken: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, Object{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		})
	}
	return page, nil
}

func (c *sdkClient) Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", eris.Wrapf(err, "objectstore: presign s3://%s/%s", bucket, key)
	}
	return req.URL, nil
}
