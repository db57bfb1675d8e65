package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3TemplateSource implements TemplateSource backed by S3, so the template
// can change without a redeploy.
type S3TemplateSource struct {
	bucket string
	key    string
	s3     *s3.Client
}

func NewS3TemplateSource(s3Client *s3.Client, bucket, key string) *S3TemplateSource {
	return &S3TemplateSource{
		bucket: bucket,
		key:    key,
		s3:     s3Client,
	}
}

func (s *S3TemplateSource) Load(ctx context.Context) (string, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get prompt template from S3: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
