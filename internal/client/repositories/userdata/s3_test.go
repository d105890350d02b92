package userdata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func TestS3_PutThenGet(t *testing.T) {
	fake := newFakeObjects()
	r := newS3Repository(fake, "gate")
	ctx := context.Background()

	_, err := r.Get(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)

	rec := &models.UserDataRecord{AccountID: 5, Username: "alice", Content: "hello"}
	require.NoError(t, r.Put(ctx, rec))
	assert.Contains(t, fake.objects, "gate/users/alice.json")

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestS3_Errors(t *testing.T) {
	fake := newFakeObjects()
	r := newS3Repository(fake, "gate")
	ctx := context.Background()

	fake.objects["gate/users/alice.json"] = []byte("garbage")
	_, err := r.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrCorrupt)

	fake.getErr = errors.New("timeout")
	_, err = r.Get(ctx, "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)

	fake.putErr = errors.New("denied")
	assert.ErrorContains(t, r.Put(ctx, &models.UserDataRecord{Username: "alice"}), "denied")
}

func TestNewS3Repository_LoadsConfig(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var called bool
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		called = true
		var lo config.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{Region: lo.Region}, nil
	}

	r, err := NewS3Repository(context.Background(), S3Options{
		Bucket: "gate", Region: "eu-west-1", BaseEndpoint: "http://127.0.0.1:9000", AccessKey: "k", SecretKey: "s",
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "gate", r.bucket)
}

func TestNewS3Repository_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Repository(context.Background(), S3Options{Bucket: "gate"})
	assert.ErrorContains(t, err, "no config")
}
