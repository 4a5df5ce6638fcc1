package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarb.backend/internal/config"
	domainerrors "sarb.backend/internal/domain/errors"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestValidateImage(t *testing.T) {
	mime, err := ValidateImage(pngBytes, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime.String())
	assert.Equal(t, ".png", mime.Extension())

	_, err = ValidateImage([]byte("just some text"), 0)
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedMedia)

	_, err = ValidateImage(pngBytes, 4)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = ValidateImage(nil, 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestObjectName(t *testing.T) {
	name := objectName(`C:\Users\ana\My Photo (1).PNG`, ".png")
	assert.True(t, strings.HasSuffix(name, "-my-photo-1.png"), name)

	name = objectName("???", ".jpg")
	assert.True(t, strings.HasSuffix(name, "-image.jpg"), name)
}

func TestLocalStorage_SaveDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "/media/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "team", "ana.png", pngBytes)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/team/"), url)

	path := filepath.Join(root, "team", strings.TrimPrefix(url, "/media/team/"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.NoError(t, store.Delete(context.Background(), url))
	assert.NoError(t, store.Delete(context.Background(), "https://elsewhere/x.png"))
	assert.NoError(t, store.Delete(context.Background(), "/media/../secret"))

	_, err = store.Save(context.Background(), "team", "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedMedia)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	body    []byte
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_SaveDelete(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StorageWithClient(client, "sarb-media", "/media/", "https://cdn.sarb.ai/")

	url, err := store.Save(context.Background(), "case_studies", "cover.png", pngBytes)
	require.NoError(t, err)
	require.Len(t, client.puts, 1)

	put := client.puts[0]
	assert.Equal(t, "sarb-media", aws.ToString(put.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(put.Key), "media/case_studies/"))
	assert.Equal(t, "image/png", aws.ToString(put.ContentType))
	assert.Equal(t, pngBytes, client.body)
	assert.Equal(t, "https://cdn.sarb.ai/"+aws.ToString(put.Key), url)

	require.NoError(t, store.Delete(context.Background(), url))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, aws.ToString(put.Key), aws.ToString(client.deletes[0].Key))

	require.NoError(t, store.Delete(context.Background(), "/media/local.png"))
	assert.Len(t, client.deletes, 1)

	client.err = errors.New("access denied")
	_, err = store.Save(context.Background(), "team", "a.png", pngBytes)
	assert.ErrorContains(t, err, "access denied")
}

func TestNew_SelectsBackend(t *testing.T) {
	s, err := New(context.Background(), config.MediaConfig{Backend: config.MediaBackendLocal, Root: t.TempDir(), BaseURL: "/media"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(context.Background(), config.MediaConfig{Backend: config.MediaBackendS3})
	assert.ErrorContains(t, err, "MEDIA_S3_BUCKET")

	_, err = New(context.Background(), config.MediaConfig{Backend: "ftp"})
	assert.Error(t, err)
}
