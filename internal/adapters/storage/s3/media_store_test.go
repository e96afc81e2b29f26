package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	b, _ := io.ReadAll(in.Body)
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestMediaStore_PutReturnsPublicURL(t *testing.T) {
	fp := &fakePutter{}
	m := newMediaStore(fp, Config{Endpoint: "http://127.0.0.1:9000", PublicBaseURL: "https://cdn.example.com/"})

	u, err := m.Put(context.Background(), "pet-images", "user-1/1700000000_my dog.jpg", "image/jpeg", []byte("jpeg"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if u != "https://cdn.example.com/pet-images/user-1/1700000000_my%20dog.jpg" {
		t.Fatalf("unexpected url %q", u)
	}
	if fp.bucket != "pet-images" || fp.key != "user-1/1700000000_my dog.jpg" || fp.contentType != "image/jpeg" {
		t.Fatalf("unexpected put input %#v", fp)
	}
	if string(fp.body) != "jpeg" {
		t.Fatalf("unexpected body %q", fp.body)
	}
}

func TestMediaStore_BaseURLFallsBackToEndpoint(t *testing.T) {
	m := newMediaStore(&fakePutter{}, Config{Endpoint: "http://minio:9000"})
	if got := m.publicURL("medical-report", "u/1_r.pdf"); got != "http://minio:9000/medical-report/u/1_r.pdf" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestMediaStore_PutError(t *testing.T) {
	boom := errors.New("boom")
	m := newMediaStore(&fakePutter{err: boom}, Config{Region: "us-east-1"})
	if _, err := m.Put(context.Background(), "pet-images", "k", "image/png", []byte("x")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
