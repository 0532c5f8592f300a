package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/virtusia/backend/config"
)

// ImageService stores user-captured meal photos in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadMealPhoto uploads raw image data and returns the public URL.
func (s *ImageService) UploadMealPhoto(ctx context.Context, userID uuid.UUID, imageData []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("meal-photos/%s/%s", userID, uuid.New().String())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

// PresignedMealPhotoURL returns a temporary download URL for a stored
// photo. Accepts either a raw object key or the public URL returned by
// UploadMealPhoto.
func (s *ImageService) PresignedMealPhotoURL(ctx context.Context, stored string, expiry time.Duration) (string, error) {
	key := stored
	if u, err := url.Parse(stored); err == nil && u.Host != "" {
		key = strings.TrimPrefix(u.Path, "/")
	}
	return s.s3Config.GeneratePresignedURL(ctx, key, expiry)
}
