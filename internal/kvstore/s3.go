package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// S3Config describes the bucket an S3Store writes to.
type S3Config struct {
	User     string
	Password string
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Store keeps each entry as an object named Prefix+key.
type S3Store struct {
	api      S3API
	bucket   string
	prefix   string
	capacity int64
}

func NewS3Store(api S3API, bucket, prefix string, capacity int64) *S3Store {
	return &S3Store{api: api, bucket: bucket, prefix: prefix, capacity: capacity}
}

// OpenS3 builds an S3 client with static credentials; Endpoint points it at
// an S3-compatible server such as MinIO.
func OpenS3(ctx context.Context, c S3Config, capacity int64) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.User, c.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Store(client, c.Bucket, c.Prefix, capacity), nil
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + key
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}

func (s *S3Store) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read kv[%s]: %w", key, err)
	}
	return string(b), true, nil
}

// sizes lists the prefix and returns the charged size of every entry.
func (s *S3Store) sizes(ctx context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			result[key] = int64(len(key)) + aws.ToInt64(obj.Size)
		}
	}
	return result, nil
}

func (s *S3Store) Set(ctx context.Context, key string, value string) error {
	if s.capacity > 0 {
		sizes, err := s.sizes(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute usage: %w", err)
		}
		var used int64
		for k, n := range sizes {
			if k != key {
				used += n
			}
		}
		if !fits(s.capacity, used, EntrySize(key, value)) {
			return ErrQuotaExceeded
		}
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          strings.NewReader(value),
		ContentLength: aws.Int64(int64(len(value))),
		ContentType:   aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *S3Store) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check kv[%s]: %w", key, err)
	}
	return true, nil
}

func (s *S3Store) Keys(ctx context.Context) ([]string, error) {
	sizes, err := s.sizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys := make([]string, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *S3Store) Usage(ctx context.Context) (Usage, error) {
	sizes, err := s.sizes(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to compute usage: %w", err)
	}
	var used int64
	for _, n := range sizes {
		used += n
	}
	return Usage{Used: used, Capacity: s.capacity}, nil
}

func (s *S3Store) Close() error { return nil }
