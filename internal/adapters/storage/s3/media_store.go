package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	// "http://127.0.0.1:9000" (minio) o vacío para AWS.
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// Base pública para armar la URL guardada en la mascota.
	// Vacío => Endpoint.
	PublicBaseURL string
}

// putObjectAPI es lo único que usamos del cliente S3.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaStore sube fotos e informes de mascotas a buckets S3.
type MediaStore struct {
	client  putObjectAPI
	baseURL string
}

// Connect arma el cliente con credenciales estáticas (minio o AWS).
func Connect(cfg Config) *s3.Client {
	return s3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// minio no soporta virtual-hosted buckets
			o.UsePathStyle = true
		}
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	})
}

func NewMediaStore(cfg Config) *MediaStore {
	return newMediaStore(Connect(cfg), cfg)
}

func newMediaStore(client putObjectAPI, cfg Config) *MediaStore {
	base := cfg.PublicBaseURL
	if base == "" {
		base = cfg.Endpoint
	}
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}
	return &MediaStore{client: client, baseURL: strings.TrimRight(base, "/")}
}

func (m *MediaStore) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s/%s: %w", bucket, key, err)
	}
	return m.publicURL(bucket, key), nil
}

func (m *MediaStore) publicURL(bucket, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return m.baseURL + "/" + url.PathEscape(bucket) + "/" + strings.Join(parts, "/")
}
