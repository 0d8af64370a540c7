package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/glory-storefront/config"
)

var S3Client *s3.Client

// InitS3 initializes the S3 client
func InitS3() error {
	if appConfig.AWSBucketName == "" {
		return fmt.Errorf("AWS_BUCKET_NAME is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config, %w", err)
	}

	S3Client = s3.NewFromConfig(cfg)
	log.Println("S3 Client Initialized")
	return nil
}

// UploadFileToS3 uploads a file to S3 and returns the Object Key
func UploadFileToS3(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	if S3Client == nil {
		if err := InitS3(); err != nil {
			return "", err
		}
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(appConfig.AWSBucketName),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, nil
}

// DeleteObjectFromS3 removes an object; deleting a missing key is not an error.
func DeleteObjectFromS3(ctx context.Context, objectKey string) error {
	if S3Client == nil {
		if err := InitS3(); err != nil {
			return err
		}
	}

	_, err := S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(appConfig.AWSBucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from S3: %w", objectKey, err)
	}
	return nil
}

// ObjectURL returns the retrievable URL stored alongside metadata records.
// AWS_PUBLIC_BASE_URL (a CDN or website endpoint) wins over the bucket URL.
// Key segments are path-escaped; the separators between them are kept.
func ObjectURL(objectKey string) string {
	path := EscapeObjectKey(objectKey)
	if base := appConfig.AWSPublicBaseURL; base != "" {
		return strings.TrimRight(base, "/") + "/" + path
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", appConfig.AWSBucketName, appConfig.AWSRegion, path)
}

// EscapeObjectKey path-escapes each "/"-separated segment of an object key.
func EscapeObjectKey(objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
