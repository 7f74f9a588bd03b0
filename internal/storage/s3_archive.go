package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Archive keeps a copy of every committed invoice document in
// S3-compatible storage
type S3Archive struct {
	s3Client *s3.S3
	bucket   string
	now      func() time.Time
}

// Config holds configuration for the S3 archive
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// NewS3Archive creates a new S3 archive
func NewS3Archive(config *Config) (*S3Archive, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Archive{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		now:      time.Now,
	}, nil
}

// SnapshotKey returns the object key of a snapshot taken at the given time
func SnapshotKey(fileName string, at time.Time) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	return fmt.Sprintf("%s/%s.json", base, at.UTC().Format("20060102T150405.000Z"))
}

// ArchiveDocument uploads the document bytes and returns the object key
func (a *S3Archive) ArchiveDocument(ctx context.Context, fileName string, data []byte) (string, error) {
	key := SnapshotKey(fileName, a.now())

	_, err := a.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}
