package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newTestS3(t *testing.T, handler http.HandlerFunc) (*S3Service, *[]recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()
		if handler != nil {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test"}, nil
		}),
	})
	return NewS3Service(client), &reqs
}

func TestS3Service_PutAndDelete(t *testing.T) {
	svc, reqs := newTestS3(t, nil)
	ctx := context.Background()

	loc, err := svc.Put(ctx, PutInput{
		Bucket:      "deck",
		Key:         "/assets/1/a.txt",
		Body:        strings.NewReader("hello"),
		ContentType: "text/plain",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://deck/assets/1/a.txt", loc)

	require.NoError(t, svc.DeleteObject(ctx, "deck", "assets/1/a.txt"))

	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPut, (*reqs)[0].Method)
	assert.Equal(t, "/deck/assets/1/a.txt", (*reqs)[0].Path)
	assert.Contains(t, (*reqs)[0].Body, "hello")
	assert.Equal(t, http.MethodDelete, (*reqs)[1].Method)
}

func TestS3Service_ListObjects(t *testing.T) {
	svc, _ := newTestS3(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>deck</Name>
  <Prefix>assets/1/</Prefix>
  <KeyCount>1</KeyCount>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>assets/1/a.txt</Key>
    <Size>5</Size>
    <LastModified>2025-01-01T00:00:00.000Z</LastModified>
  </Contents>
</ListBucketResult>`)
	})

	objects, err := svc.ListObjects(context.Background(), "deck", "assets/1/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "assets/1/a.txt", objects[0].Key)
	assert.Equal(t, int64(5), objects[0].Size)
	require.NotNil(t, objects[0].LastModified)
	assert.Equal(t, 2025, objects[0].LastModified.Year())
}

func TestS3Service_GetObjectURL(t *testing.T) {
	svc, reqs := newTestS3(t, nil)

	url, err := svc.GetObjectURL(context.Background(), "deck", "assets/1/a.txt", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/deck/assets/1/a.txt")
	assert.Contains(t, url, "X-Amz-Expires=60")
	assert.Empty(t, *reqs, "presigning is offline")
}

func TestS3Service_Validation(t *testing.T) {
	svc, _ := newTestS3(t, nil)
	ctx := context.Background()

	_, err := svc.Put(ctx, PutInput{Key: "k", Body: strings.NewReader("")})
	assert.Error(t, err)
	_, err = svc.Put(ctx, PutInput{Bucket: "b", Key: "/", Body: strings.NewReader("")})
	assert.Error(t, err)
	assert.Error(t, svc.DeletePrefix(ctx, "b", " "))
	assert.Error(t, svc.DeleteObject(ctx, "", "k"))
}
