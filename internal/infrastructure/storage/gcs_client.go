package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"ecotrack/pkg/errors"
	"ecotrack/pkg/logger"
)

// CloudStorageClient stores uploaded images (eco-action photos, badge art)
// in a Google Cloud Storage bucket.
type CloudStorageClient struct {
	client     *gcs.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsFile string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	c := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := c.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set bucket CORS: %v", err)
	}

	return c, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)
	return updateBucketCORS(ctx, bucket, gcs.CORS{
		MaxAge:          time.Hour,
		Methods:         []string{"GET", "HEAD"},
		Origins:         []string{"*"},
		ResponseHeaders: []string{"Content-Type"},
	})
}

func updateBucketCORS(ctx context.Context, bucket *gcs.BucketHandle, cors gcs.CORS) error {
	_, err := bucket.Update(ctx, gcs.BucketAttrsToUpdate{
		CORS: []gcs.CORS{cors},
	})
	return err
}

// UploadImage uploads an image under the given folder ("eco-actions" or
// "badges") and returns its public URL.
func (c *CloudStorageClient) UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", errors.BadRequest("Unsupported image type", nil)
	}

	objectName := fmt.Sprintf("%s/%s-%d%s", folder, uuid.New().String(), time.Now().Unix(), ext)

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", errors.Internal("Failed to upload image", err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Internal("Failed to finalize upload", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		logger.Warn("Failed to set public ACL for %s: %v", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

// DeleteImage removes a previously uploaded object given its public URL.
func (c *CloudStorageClient) DeleteImage(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", c.bucketName)
	if !strings.HasPrefix(fileURL, prefix) {
		return errors.BadRequest("Invalid file URL", nil)
	}
	objectName := strings.TrimPrefix(fileURL, prefix)

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete image", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}
