package archive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func stubAWS(t *testing.T, fake *fakeS3, loadErr error) (*awsconfig.LoadOptions, *s3.Options) {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var lo awsconfig.LoadOptions
	var so s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			_ = fn(&lo)
		}
		return aws.Config{Region: lo.Region}, loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(&so)
		}
		return fake
	}
	return &lo, &so
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(context.Background(), Config{Bucket: "  "})
	require.ErrorIs(t, err, ErrNoBucket)
}

func TestNewUploader_Options(t *testing.T) {
	fake := &fakeS3{}
	lo, so := stubAWS(t, fake, nil)

	_, err := NewUploader(context.Background(), Config{
		Bucket:          "fuel",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
	})
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", lo.Region)
	require.NotNil(t, lo.Credentials)
	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minioadmin", creds.AccessKeyID)

	require.NotNil(t, so.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *so.BaseEndpoint)
	assert.True(t, so.UsePathStyle)
}

func TestNewUploader_DefaultChain(t *testing.T) {
	lo, so := stubAWS(t, &fakeS3{}, nil)

	_, err := NewUploader(context.Background(), Config{Bucket: "fuel", Region: "eu-north-1"})
	require.NoError(t, err)
	assert.Equal(t, "eu-north-1", lo.Region)
	assert.Nil(t, lo.Credentials)
	assert.Nil(t, so.BaseEndpoint)
}

func TestNewUploader_LoadError(t *testing.T) {
	stubAWS(t, &fakeS3{}, errors.New("no profile"))

	_, err := NewUploader(context.Background(), Config{Bucket: "fuel"})
	require.ErrorContains(t, err, "no profile")
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	stubAWS(t, fake, nil)

	u, err := NewUploader(context.Background(), Config{Bucket: "fuel", Prefix: "exports/"})
	require.NoError(t, err)

	key, err := u.Upload(context.Background(), "fuel-1.xlsx", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "exports/fuel-1.xlsx", key)
	assert.Equal(t, "fuel", aws.ToString(fake.in.Bucket))
	assert.Equal(t, key, aws.ToString(fake.in.Key))
	assert.Equal(t, xlsxContentType, aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("data"), fake.body)
}

func TestUpload_Error(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	stubAWS(t, fake, nil)

	u, err := NewUploader(context.Background(), Config{Bucket: "fuel"})
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), "x.xlsx", nil)
	require.ErrorContains(t, err, "access denied")
}
