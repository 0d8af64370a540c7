package storage

import (
	"context"
	"io"

	"github.com/raushankrgupta/glory-storefront/utils"
)

// S3 stores objects in the configured bucket through the shared utils client.
type S3 struct{}

func NewS3() (*S3, error) {
	if err := utils.InitS3(); err != nil {
		return nil, err
	}
	return &S3{}, nil
}

func (S3) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	objectKey, err := utils.UploadFileToS3(ctx, body, key, contentType)
	if err != nil {
		return "", err
	}
	return utils.ObjectURL(objectKey), nil
}

func (S3) Delete(ctx context.Context, key string) error {
	return utils.DeleteObjectFromS3(ctx, key)
}
