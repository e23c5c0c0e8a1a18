package services

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StorageService stores generated report artifacts and hands out download URLs.
type StorageService interface {
	UploadReport(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error
	GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error)
	EnsureBucketExists(ctx context.Context, bucketName string) error
}

type minioStorage struct {
	client *minio.Client
}

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client}, nil
}

func (m *minioStorage) UploadReport(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error {
	_, err := m.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	return err
}

func (m *minioStorage) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), bucketName, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStorage) EnsureBucketExists(ctx context.Context, bucketName string) error {
	found, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	}
	return nil
}
