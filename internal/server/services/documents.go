package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"path"
	"time"

	"github.com/cliniclink/cliniclink/internal/server/models"
	"github.com/cliniclink/cliniclink/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	sc "github.com/cliniclink/cliniclink/internal/server/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// DocumentService issues presigned object-storage URLs for credential
// documents and records confirmed uploads for review.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewDocumentService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// documentStorageKey scopes keys per user and kind so a listing of the
// bucket stays navigable; the uuid prevents collisions on re-upload.
func documentStorageKey(userID, kind, filename string) string {
	return fmt.Sprintf("documents/%s/%s/%s-%s", userID, kind, uuid.New(), path.Base(filename))
}

func (s *DocumentService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

func (s *DocumentService) getPresignClient() (*s3.PresignClient, error) {
	client, err := s.getS3Client()
	if err != nil {
		return nil, err
	}
	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl returns a storage key and a time-limited PUT URL for a
// new credential document.
func (s *DocumentService) GetPresignedPutUrl(ctx context.Context, userID, kind, filename string) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := documentStorageKey(userID, kind, filename)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetUrl returns a time-limited GET URL for a stored document.
func (s *DocumentService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// StoreProfilePhoto writes a profile photo to object storage. Photos go
// through the server rather than a presigned grant because they are small
// and need no review workflow; the key of the stored object is returned.
func (s *DocumentService) StoreProfilePhoto(ctx context.Context, userID, filename string, content []byte) (string, error) {
	client, err := s.getS3Client()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := fmt.Sprintf("profile-photos/%s/%s-%s", userID, uuid.New(), path.Base(filename))

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

// Confirm records a completed direct upload; the document enters the review
// queue in pending state.
func (s *DocumentService) Confirm(ctx context.Context, userID, kind, key string) (*models.CredentialDocument, error) {
	doc := &models.CredentialDocument{
		UserID:     userID,
		Kind:       kind,
		StorageKey: key,
		Status:     models.DocumentPending,
	}
	return s.repomanager.Documents(s.db).Create(ctx, doc)
}

// List returns the user's credential documents, newest first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]*models.CredentialDocument, error) {
	return s.repomanager.Documents(s.db).ListByUser(ctx, userID)
}
