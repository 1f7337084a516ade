package storage_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"mancarijo/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPutter struct {
	mock.Mock
}

func (m *MockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestDataURLStore(t *testing.T) {
	url, err := storage.NewDataURLStore().Store(context.Background(), "u1", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8}), url)
}

func TestS3Store(t *testing.T) {
	cfg := storage.S3Config{
		Provider: storage.ProviderAWS,
		Region:   "ap-southeast-1",
		Bucket:   "mancarijo-media",
	}

	t.Run("Should upload under the user prefix and return the object URL", func(t *testing.T) {
		putter := new(MockPutter)
		putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Bucket) == "mancarijo-media" &&
				strings.HasPrefix(aws.ToString(in.Key), "profile-pictures/u1/") &&
				aws.ToString(in.ContentType) == "image/jpeg" &&
				aws.ToInt64(in.ContentLength) == 4
		})).Return(&s3.PutObjectOutput{}, nil)

		url, err := storage.NewS3Store(putter, cfg).Store(context.Background(), "u1", []byte("jpeg"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://mancarijo-media.s3.ap-southeast-1.amazonaws.com/profile-pictures/u1/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))
		putter.AssertExpectations(t)
	})

	t.Run("Should surface upload failures", func(t *testing.T) {
		putter := new(MockPutter)
		putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		_, err := storage.NewS3Store(putter, cfg).Store(context.Background(), "u1", []byte("jpeg"))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestObjectURL(t *testing.T) {
	t.Run("Should prefer the public base URL", func(t *testing.T) {
		cfg := storage.S3Config{Bucket: "b", Region: "r", PublicBaseURL: "https://cdn.example.com/"}
		assert.Equal(t, "https://cdn.example.com/k.jpg", cfg.ObjectURL("k.jpg"))
	})

	t.Run("Should use path style for Wasabi", func(t *testing.T) {
		cfg := storage.S3Config{Provider: storage.ProviderWasabi, Bucket: "b", Region: "ap-southeast-1"}
		assert.Equal(t, "https://s3.ap-southeast-1.wasabisys.com/b/k.jpg", cfg.ObjectURL("k.jpg"))
	})
}
