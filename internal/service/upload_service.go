package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"labcatalog-api/pkg/apierror"
)

// ObjectPutter is the slice of the S3 client the upload service uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type uploadTarget struct {
	extension string
	folder    string
}

// Only product images (jpeg, webp) and technical sheets (pdf) are
// accepted; everything else is rejected outright.
var allowedUploadTypes = map[string]uploadTarget{
	"image/jpeg":      {extension: "jpg", folder: "images"},
	"image/webp":      {extension: "webp", folder: "images"},
	"application/pdf": {extension: "pdf", folder: "documents"},
}

type UploadService struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	maxSize       int64
}

func NewUploadService(client ObjectPutter, bucket string, publicBaseURL string, maxSize int64) *UploadService {
	return &UploadService{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
	}
}

// MaxSize reports the configured per-file size cap in bytes.
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// NewS3Client builds the S3 client from explicit settings. A custom
// endpoint supports MinIO-style deployments.
func NewS3Client(ctx context.Context, region string, accessKeyID string, secretAccessKey string, endpoint string) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if accessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return client, nil
}

// Upload stores the file under a uuid object name so keys are neither
// guessable nor colliding, and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if int64(len(data)) > s.maxSize {
		return "", apierror.New(apierror.KindBadRequest, fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	target, allowed := allowedUploadTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !allowed {
		slog.Warn("upload rejected by content type allow-list", "content_type", contentType)
		return "", apierror.New(apierror.KindBadRequest, "unsupported file type; accepted: JPEG, WebP, PDF")
	}

	key := fmt.Sprintf("products/%s/%s.%s", target.folder, uuid.NewString(), target.extension)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apierror.Wrap(apierror.KindInternal, fmt.Errorf("put object %s: %w", key, err))
	}

	slog.Info("file uploaded", "key", key, "size", len(data))

	return s.publicBaseURL + "/" + key, nil
}
