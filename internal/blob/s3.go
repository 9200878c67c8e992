package blob

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/festhive/registration/internal/config"
)

// maxBatchSize is the S3 DeleteObjects per-request object limit.
const maxBatchSize = 1000

// S3Store implements Store on top of an S3-compatible bucket.
type S3Store struct {
	client s3iface.S3API
	bucket string
}

// NewS3Store creates a store for the configured bucket. Credentials come from
// the default AWS credential chain.
func NewS3Store(cfg config.BlobConfig) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// NewS3StoreWithClient creates a store with an explicit client.
func NewS3StoreWithClient(client s3iface.S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Delete removes a single object.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}

	return nil
}

// DeleteBatch removes objects in chunks of at most 1000 keys per request.
// Keys the store refuses to delete are collected into the result; a transport
// error aborts the remaining chunks and is returned alongside the partial
// result.
func (s *S3Store) DeleteBatch(ctx context.Context, keys []string) (BatchResult, error) {
	result := BatchResult{Failed: map[string]string{}}

	for _, chunk := range chunkKeys(keys, maxBatchSize) {
		objects := make([]*s3.ObjectIdentifier, 0, len(chunk))
		for _, key := range chunk {
			objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &s3.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return result, fmt.Errorf("batch delete failed: %w", err)
		}

		failed := len(out.Errors)
		for _, e := range out.Errors {
			result.Failed[aws.StringValue(e.Key)] = aws.StringValue(e.Message)
		}
		result.Deleted += len(chunk) - failed
	}

	return result, nil
}

// chunkKeys splits keys into slices of at most size elements, skipping empties.
func chunkKeys(keys []string, size int) [][]string {
	var chunks [][]string
	var current []string

	for _, key := range keys {
		if key == "" {
			continue
		}
		current = append(current, key)
		if len(current) == size {
			chunks = append(chunks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	return chunks
}
