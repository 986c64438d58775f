package image

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"devevent/internal/domain"
)

// S3Config holds configuration for the S3-backed image store.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// Config holds configuration for creating an image store.
type Config struct {
	Provider string
	S3       S3Config
}

// NewStore creates an image store from config. Provider "s3" uses AWS S3; "noop" or unknown uses a no-op store.
func NewStore(config Config) (domain.ImageStore, error) {
	switch config.Provider {
	case "s3":
		s3Config := config.S3
		awsCfg := aws.Config{
			Region: s3Config.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					s3Config.AccessKeyID,
					s3Config.SecretAccessKey,
					"",
				),
			),
		}
		client := s3.NewFromConfig(awsCfg)
		baseURL := s3Config.PublicBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s3Config.Bucket, s3Config.Region)
		}
		return &s3Store{
			client:  client,
			bucket:  s3Config.Bucket,
			baseURL: strings.TrimRight(baseURL, "/"),
		}, nil
	case "noop":
		return &noopStore{}, nil
	default:
		log.Printf("[IMAGE] Unknown image provider %q, using noop", config.Provider)
		return &noopStore{}, nil
	}
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var keyUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (s *s3Store) Upload(ctx context.Context, img domain.ImageUpload) (string, error) {
	name := keyUnsafe.ReplaceAllString(img.Filename, "-")
	if name == "" {
		name = "image"
	}
	key := fmt.Sprintf("events/%d-%s", time.Now().UnixNano(), name)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

type noopStore struct{}

func (n *noopStore) Upload(ctx context.Context, img domain.ImageUpload) (string, error) {
	log.Println("[IMAGE] Image would be uploaded (noop)", "filename", img.Filename)
	return "https://images.invalid/" + img.Filename, nil
}
