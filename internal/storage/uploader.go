package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader stores ad images in a Cloud Storage bucket and hands back a
// Firebase-style tokenized download URL.
type Uploader struct {
	client *gcs.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}

// UploadAdImage writes the image under ads/ with a uuid object name so
// uploads never collide, and returns the public URL.
func (u *Uploader) UploadAdImage(ctx context.Context, r io.Reader, contentType, ext string) (string, error) {
	objectPath := path.Join("ads", uuid.NewString()+ext)
	token := uuid.NewString()

	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, escapedPath, token)
	return publicURL, nil
}
