package content

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"study-game/internal/config"
	"study-game/internal/domain"
)

// S3Storage serves packs from an S3-compatible bucket (AWS S3 or
// Cloudflare R2). Objects live under <prefix><slug>.csv.
type S3Storage struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Storage builds a client from configuration. The endpoint is given
// without scheme; UseSSL selects https.
func NewS3Storage(cfg config.S3StorageConfig) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to create S3 client", err)
	}
	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *S3Storage) key(slug string) string {
	return s.prefix + slug + ".csv"
}

func (s *S3Storage) Get(ctx context.Context, slug string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(slug), minio.GetObjectOptions{})
	if err != nil {
		return nil, domain.NewInternalError("failed to get pack object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, domain.NewPackNotFoundError(slug)
		}
		return nil, domain.NewInternalError("failed to read pack object", err)
	}
	return data, nil
}

func (s *S3Storage) Put(ctx context.Context, slug string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(slug),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return domain.NewInternalError("failed to put pack object", err)
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context) ([]string, error) {
	var slugs []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, domain.NewInternalError("failed to list pack objects", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".csv") {
			continue
		}
		slug := strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), ".csv")
		slugs = append(slugs, slug)
	}
	return slugs, nil
}
