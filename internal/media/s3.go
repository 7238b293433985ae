package media

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// objectPutter is the part of the S3 client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures an S3Store.
type S3Config struct {
	Bucket string
	Region string
	// Endpoint enables path-style addressing against an S3-compatible server
	// such as MinIO.
	Endpoint string
	// PublicBaseURL is prefixed to object keys to build public links. When
	// empty, the virtual-hosted AWS URL is used.
	PublicBaseURL string
	// Prefix is prepended to generated object keys.
	Prefix string
}

// S3Store uploads inline images to an S3-compatible bucket.
type S3Store struct {
	client objectPutter
	cfg    S3Config
}

// NewS3Store creates an S3 store using the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "portfolio/"
	}
	return &S3Store{client: s3.NewFromConfig(awsCfg, s3opts...), cfg: cfg}, nil
}

// Offload uploads ref when it is a data URL and returns the public URL of the
// uploaded object. Any other reference is returned unchanged.
func (s *S3Store) Offload(ctx context.Context, ref string) (string, error) {
	if !IsDataURL(ref) {
		return ref, nil
	}
	d, err := ParseDataURL(ref)
	if err != nil {
		return "", err
	}
	if len(d.Data) > MaxImageBytes {
		return "", fmt.Errorf("image is %d bytes, limit is %d", len(d.Data), MaxImageBytes)
	}

	id, err := nanoid.New()
	if err != nil {
		return "", fmt.Errorf("object key: %w", err)
	}
	key := s.cfg.Prefix + id + extensionFor(d.MediaType)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(d.Data),
		ContentType: aws.String(d.MediaType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
