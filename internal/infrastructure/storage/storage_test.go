package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	headErr error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObjectWithContext(ctx aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func newFakeS3(t *testing.T) *fakeS3 {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials("AKID", "SECRET", ""),
	})
	require.NoError(t, err)
	return &fakeS3{S3API: s3.New(sess)}
}

func TestLicenseObjectName(t *testing.T) {
	id := uuid.MustParse("6a1f0e2d-3b4c-4d5e-8f60-718293a4b501")
	assert.Equal(t, "doctor-licenses/"+id.String()+"/license.pdf", LicenseObjectName(id, "license.pdf"))
	assert.Equal(t, "doctor-licenses/"+id.String()+"/passwd", LicenseObjectName(id, "../../etc/passwd"))
	assert.Equal(t, "doctor-licenses/"+id.String()+"/scan.png", LicenseObjectName(id, `C:\Users\me\scan.png`))
	assert.Equal(t, "doctor-licenses/"+id.String()+"/license", LicenseObjectName(id, ""))
}

func TestS3_PutAndURL(t *testing.T) {
	fake := newFakeS3(t)
	store := newS3(fake, "us-east-1", "docs", "/uploads/", time.Hour)

	id, err := store.Put(context.Background(), "doctor-licenses/u1/license.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "s3://us-east-1/docs/uploads/doctor-licenses/u1/license.pdf", id)

	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "docs", aws.StringValue(put.Bucket))
	assert.Equal(t, "uploads/doctor-licenses/u1/license.pdf", aws.StringValue(put.Key))
	assert.Equal(t, "AES256", aws.StringValue(put.ServerSideEncryption))
	assert.Equal(t, int64(3), aws.Int64Value(put.ContentLength))

	link, err := store.URL(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, link, "uploads/doctor-licenses/u1/license.pdf")
	assert.Contains(t, link, "X-Amz-Signature=")
}

func TestS3_URLMissingObject(t *testing.T) {
	fake := newFakeS3(t)
	fake.headErr = awserr.NewRequestFailure(awserr.New("NotFound", "not found", nil), http.StatusNotFound, "req-1")
	store := newS3(fake, "us-east-1", "docs", "", time.Hour)

	_, err := store.URL(context.Background(), "s3://us-east-1/docs/a.pdf")
	assert.ErrorIs(t, err, ErrNoObject)

	_, err = store.URL(context.Background(), "https://example.com/a.pdf")
	assert.Error(t, err)
}

func TestLocal_PutAndURL(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	id, err := store.Put(context.Background(), "doctor-licenses/u1/my license.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "doctor-licenses/u1/my license.pdf", id)

	data, err := os.ReadFile(filepath.Join(root, "doctor-licenses", "u1", "my license.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	link, err := store.URL(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/doctor-licenses/u1/my%20license.pdf", link)

	_, err = store.URL(context.Background(), "doctor-licenses/u1/other.pdf")
	assert.ErrorIs(t, err, ErrNoObject)
}

func TestLocal_RejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.txt", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestMemory_FailPuts(t *testing.T) {
	store := NewMemory()
	store.FailPuts = 1
	store.PutErr = assert.AnError

	_, err := store.Put(context.Background(), "a", []byte("1"), "text/plain")
	assert.ErrorIs(t, err, assert.AnError)

	id, err := store.Put(context.Background(), "a", []byte("1"), "text/plain")
	require.NoError(t, err)
	link, err := store.URL(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "memory://"))
	assert.Equal(t, 2, store.Puts())
}
