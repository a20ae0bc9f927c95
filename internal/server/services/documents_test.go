package services

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cliniclink/cliniclink/internal/server/config"
	"github.com/cliniclink/cliniclink/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentsRepo struct {
	created []*models.CredentialDocument
	listed  []*models.CredentialDocument
}

func (f *fakeDocumentsRepo) Create(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error) {
	doc.ID = "d-1"
	f.created = append(f.created, doc)
	return doc, nil
}

func (f *fakeDocumentsRepo) ListByUser(ctx context.Context, userID string) ([]*models.CredentialDocument, error) {
	return f.listed, nil
}

func stubPresignSeams(t *testing.T) (*s3.PutObjectInput, *s3.GetObjectInput, *s3.PutObjectInput) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	origPutObject := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
		presignGetObject = origGet
		putObject = origPutObject
	})

	var putIn s3.PutObjectInput
	var getIn s3.GetObjectInput
	var storedIn s3.PutObjectInput

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		putIn = *in
		return &v4.PresignedHTTPRequest{URL: "https://storage.example/put"}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		getIn = *in
		return &v4.PresignedHTTPRequest{URL: "https://storage.example/get"}, nil
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		storedIn = *in
		return &s3.PutObjectOutput{}, nil
	}

	return &putIn, &getIn, &storedIn
}

func newDocumentService(docs *fakeDocumentsRepo) *DocumentService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewDocumentService(nil, &fakeRepoManager{docs: docs}, cfg)
}

func TestGetPresignedPutUrl(t *testing.T) {
	putIn, _, _ := stubPresignSeams(t)
	svc := newDocumentService(&fakeDocumentsRepo{})

	key, url, err := svc.GetPresignedPutUrl(context.Background(), "u-1", "immunization", "shots.pdf")
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example/put", url)
	assert.True(t, strings.HasPrefix(key, "documents/u-1/immunization/"))
	assert.True(t, strings.HasSuffix(key, "-shots.pdf"))
	assert.Equal(t, key, *putIn.Key)
	assert.Equal(t, "cliniclink-documents", *putIn.Bucket)
}

func TestGetPresignedPutUrl_KeysDiffer(t *testing.T) {
	stubPresignSeams(t)
	svc := newDocumentService(&fakeDocumentsRepo{})

	k1, _, err := svc.GetPresignedPutUrl(context.Background(), "u-1", "license", "card.png")
	require.NoError(t, err)
	k2, _, err := svc.GetPresignedPutUrl(context.Background(), "u-1", "license", "card.png")
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestGetPresignedGetUrl(t *testing.T) {
	_, getIn, _ := stubPresignSeams(t)
	svc := newDocumentService(&fakeDocumentsRepo{})

	url, err := svc.GetPresignedGetUrl(context.Background(), "documents/u-1/license/abc-card.png")
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example/get", url)
	assert.Equal(t, "documents/u-1/license/abc-card.png", *getIn.Key)
}

func TestStoreProfilePhoto(t *testing.T) {
	_, _, storedIn := stubPresignSeams(t)
	svc := newDocumentService(&fakeDocumentsRepo{})

	key, err := svc.StoreProfilePhoto(context.Background(), "u-1", "me.png", []byte{0x89, 0x50})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "profile-photos/u-1/"))
	assert.True(t, strings.HasSuffix(key, "-me.png"))
	assert.Equal(t, key, *storedIn.Key)
	assert.NotNil(t, storedIn.Body)
}

func TestConfirm_RecordsPendingDocument(t *testing.T) {
	docs := &fakeDocumentsRepo{}
	svc := newDocumentService(docs)

	doc, err := svc.Confirm(context.Background(), "u-1", "license", "documents/u-1/license/abc-card.png")
	require.NoError(t, err)

	assert.Equal(t, "d-1", doc.ID)
	assert.Equal(t, models.DocumentPending, doc.Status)
	require.Len(t, docs.created, 1)
	assert.Equal(t, "u-1", docs.created[0].UserID)
}

func TestList(t *testing.T) {
	docs := &fakeDocumentsRepo{listed: []*models.CredentialDocument{{ID: "d-2"}, {ID: "d-1"}}}
	svc := newDocumentService(docs)

	got, err := svc.List(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d-2", got[0].ID)
}
