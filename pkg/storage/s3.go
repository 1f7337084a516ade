package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"mancarijo/internal/domain"
)

// Provider is the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// S3Config holds configuration for S3-compatible storage
type S3Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // host only, e.g. "s3.ap-southeast-1.wasabisys.com"
	PublicBaseURL   string // optional CDN or bucket website in front of the objects
}

// Enabled reports whether enough is configured to upload.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Region != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// NewS3Client creates an S3 client with the given config.
// Supports both AWS S3 and Wasabi.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == ProviderWasabi || cfg.Endpoint != "" {
		// Wasabi and other compatibles need an explicit endpoint and path-style addressing
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.endpoint())
			o.UsePathStyle = true
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}

func (c S3Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return "s3." + c.Region + ".wasabisys.com"
}

// ObjectURL is where a stored object can be fetched from.
func (c S3Config) ObjectURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	if c.Provider == ProviderWasabi || c.Endpoint != "" {
		return "https://" + c.endpoint() + "/" + c.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}

// ObjectPutter is the part of *s3.Client the picture store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client ObjectPutter
	cfg    S3Config
}

// NewS3Store uploads pictures to the bucket and stores their URL.
func NewS3Store(client ObjectPutter, cfg S3Config) domain.PictureStore {
	return &s3Store{client: client, cfg: cfg}
}

func (s *s3Store) Store(ctx context.Context, userID string, jpeg []byte) (string, error) {
	// A fresh name per upload so caches never serve the old picture.
	key := fmt.Sprintf("profile-pictures/%s/%s.jpg", url.PathEscape(userID), uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(jpeg),
		ContentType:   aws.String("image/jpeg"),
		ContentLength: aws.Int64(int64(len(jpeg))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	return s.cfg.ObjectURL(key), nil
}
