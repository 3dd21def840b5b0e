package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) Upload(ctx context.Context, input s3manager.UploadInput) error {
	body, _ := io.ReadAll(input.Body)
	args := m.Called(*input.Bucket, *input.Key, *input.ContentType, body)
	return args.Error(0)
}

func (m *mockS3Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockS3Client) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(bucket, key)
	return args.Error(0)
}

func TestObjectStorageService_Upload(t *testing.T) {
	client := new(mockS3Client)
	client.On("Upload", "tickets", "42/file-abc/report.pdf", "application/pdf", []byte("%PDF")).Return(nil)

	svc := NewStorageService(client, StorageConfig{BucketName: "tickets"})
	err := svc.Upload(context.Background(), "42/file-abc/report.pdf", []byte("%PDF"), "application/pdf")

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestObjectStorageService_UploadError(t *testing.T) {
	client := new(mockS3Client)
	client.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

	svc := NewStorageService(client, StorageConfig{BucketName: "tickets"})
	err := svc.Upload(context.Background(), "k", []byte("x"), "text/plain")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestObjectStorageService_Download(t *testing.T) {
	client := new(mockS3Client)
	client.On("Download", "tickets", "k").Return([]byte("hello"), nil)

	svc := NewStorageService(client, StorageConfig{BucketName: "tickets"})
	data, err := svc.Download(context.Background(), "k")

	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestObjectStorageService_PublicURL(t *testing.T) {
	withCDN := NewStorageService(new(mockS3Client), StorageConfig{BucketName: "b", CDNDomain: "cdn.example.com"})
	withoutCDN := NewStorageService(new(mockS3Client), StorageConfig{BucketName: "b"})

	assert.Equal(t, "https://cdn.example.com/a/b.txt", withCDN.GetPublicURL("a/b.txt"))
	assert.Equal(t, "", withoutCDN.GetPublicURL("a/b.txt"))
	assert.Equal(t, "b", withoutCDN.Bucket())
}
