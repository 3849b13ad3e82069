// Package storage fetches resume documents from S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultRegion = "auto"

// Document is a raw file as stored upstream.
type Document struct {
	Data     []byte
	MimeType string
	Filename string
}

type Options struct {
	// Endpoint overrides the AWS endpoint, e.g. an R2 or MinIO URL.
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Source struct {
	client objectGetter
	bucket string
}

// NewS3Source builds a source for one bucket. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
func NewS3Source(ctx context.Context, opts Options) (*S3Source, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = defaultRegion
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Source{client: client, bucket: bucket}, nil
}

// Fetch downloads key. The mime type comes from the object's Content-Type and
// may be empty; the filename is the last path element of key.
func (s *S3Source) Fetch(ctx context.Context, key string) (Document, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return Document{}, errors.New("object key is required")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return Document{}, fmt.Errorf("failed to read object body: %w", err)
	}

	return Document{
		Data:     buf.Bytes(),
		MimeType: aws.ToString(out.ContentType),
		Filename: path.Base(key),
	}, nil
}
