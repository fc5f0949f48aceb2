package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const UploadURLTTL = 15 * time.Minute

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload is a presigned PUT the client uses to send the object bytes
// straight to the bucket.
type Upload struct {
	URL       string    `json:"upload_url"`
	Key       string    `json:"key"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Presigner issues upload URLs for user owned objects.
type Presigner interface {
	ProfilePictureUpload(ctx context.Context, userID uint, contentType string) (*Upload, error)
}

type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

func NewS3Presigner(region, bucket, accessKeyID, secretAccessKey string) *S3Presigner {
	opts := s3.Options{Region: region}
	if accessKeyID != "" && secretAccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	}

	return &S3Presigner{
		presign: s3.NewPresignClient(s3.New(opts)),
		bucket:  bucket,
		now:     time.Now,
	}
}

// ErrUnsupportedType is returned for content types that are not images
// we accept.
type ErrUnsupportedType struct{ ContentType string }

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported content type %q", e.ContentType)
}

func ProfilePictureKey(userID uint, contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedType{ContentType: contentType}
	}
	return path.Join("profile-pictures", fmt.Sprint(userID), uuid.NewString()+ext), nil
}

func (p *S3Presigner) ProfilePictureUpload(ctx context.Context, userID uint, contentType string) (*Upload, error) {
	key, err := ProfilePictureKey(userID, contentType)
	if err != nil {
		return nil, err
	}

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadURLTTL))
	if err != nil {
		return nil, fmt.Errorf("presign profile picture upload: %w", err)
	}

	return &Upload{
		URL:       req.URL,
		Key:       key,
		Method:    req.Method,
		ExpiresAt: p.now().Add(UploadURLTTL).UTC(),
	}, nil
}
