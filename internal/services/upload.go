package services

import (
	"context"
	"fmt"
	"time"

	appconfig "poetry-share-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 5 * time.Minute

// UploadService hands out pre-signed URLs for avatar uploads. The storage
// key it returns is the opaque handle clients store in profile_picture.
type UploadService struct {
	s3Client *s3.Client
	s3Bucket string
}

// NewUploadService creates a new upload service
func NewUploadService(awsCfg appconfig.AWSConfig) (*UploadService, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(awsCfg.Region),
	}
	if awsCfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsCfg.AccessKey, awsCfg.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if awsCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(awsCfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &UploadService{
		s3Client: s3Client,
		s3Bucket: awsCfg.S3Bucket,
	}, nil
}

// UploadRequest represents a request for an avatar upload URL
type UploadRequest struct {
	ContentType string `json:"content_type"`
}

// UploadResponse carries the pre-signed URL and the storage handle
type UploadResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
	ExpiresIn  int    `json:"expires_in"`
}

// GetUploadURL generates a pre-signed PUT URL for the caller's avatar.
// Nothing is persisted here: the client stores the returned key on its
// profile via the profile update.
func (s *UploadService) GetUploadURL(ctx context.Context, userID, contentType string) (*UploadResponse, error) {
	storageKey := fmt.Sprintf("avatars/%s/%s", userID, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(storageKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadResponse{
		UploadURL:  request.URL,
		StorageKey: storageKey,
		ExpiresIn:  int(uploadURLExpiry.Seconds()),
	}, nil
}
