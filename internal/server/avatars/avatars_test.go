package avatars

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/imararent/imararent/internal/server/config"
)

func testService() *Service {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return NewService(cfg)
}

func TestStorageKey_NamespacedPerUser(t *testing.T) {
	k1 := storageKey("u1")
	k2 := storageKey("u1")
	assert.True(t, strings.HasPrefix(k1, "avatars/u1/"))
	assert.NotEqual(t, k1, k2)
}

func TestGetPresignedPutURL(t *testing.T) {
	var gotBucket, gotKey string
	origPresign := presignPutObject
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://presigned/" + gotKey}, nil
	}
	defer func() { presignPutObject = origPresign }()

	svc := testService()
	url, key, err := svc.GetPresignedPutURL(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, svc.config.S3Bucket, gotBucket)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "http://presigned/"+key, url)
}

func TestGetPresignedPutURL_PresignError(t *testing.T) {
	origPresign := presignPutObject
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, _ *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("boom")
	}
	defer func() { presignPutObject = origPresign }()

	_, _, err := testService().GetPresignedPutURL(context.Background(), "u1")
	require.Error(t, err)
}
