package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

var sseAlgorithm = "AES256"

// S3 is a Store backed by AWS S3. Ids have the form s3://region/bucket/key.
type S3 struct {
	client    s3iface.S3API
	region    string
	bucket    string
	prefix    string
	urlExpiry time.Duration
}

func NewS3(sess *session.Session, bucket, prefix string, urlExpiry time.Duration) *S3 {
	return newS3(s3.New(sess), aws.StringValue(sess.Config.Region), bucket, prefix, urlExpiry)
}

func newS3(client s3iface.S3API, region, bucket, prefix string, urlExpiry time.Duration) *S3 {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3{
		client:    client,
		region:    region,
		bucket:    bucket,
		prefix:    prefix,
		urlExpiry: urlExpiry,
	}
}

func (s *S3) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.prefix + name
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: aws.String(sseAlgorithm),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s/%s", s.region, s.bucket, key), nil
}

// URL presigns a GET for the object; it fails with ErrNoObject when the
// object is missing.
func (s *S3) URL(ctx context.Context, id string) (string, error) {
	bucket, key, err := parseS3ID(id)
	if err != nil {
		return "", err
	}

	_, err = s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if e, ok := err.(awserr.RequestFailure); ok && e.StatusCode() == http.StatusNotFound {
			return "", ErrNoObject
		}
		return "", err
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return req.Presign(s.urlExpiry)
}

func parseS3ID(id string) (bucket, key string, err error) {
	u, err := url.Parse(id)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("storage: not an S3 id %q", id)
	}
	p := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(p) < 2 || p[0] == "" || p[1] == "" {
		return "", "", fmt.Errorf("storage: bad S3 path %s", u.Path)
	}
	return p[0], p[1], nil
}
