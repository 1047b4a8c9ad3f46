// Package deploy ships a built demo bundle (internal/devserver's static
// assets) to an S3 bucket for hosting, grounded on the teacher's
// pkg/upload/s3_example.go S3Store — same client-injection shape (the
// caller builds the *s3.Client from its own AWS config and passes it
// in, rather than this package loading credentials itself), same
// content-type-setting PutObject call. Uploads and deletes run
// synchronously on the caller's goroutine.
package deploy

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader ships a local directory tree to an S3 bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewUploader builds an Uploader targeting bucket, storing objects under
// prefix (e.g. "demo/").
func NewUploader(client *s3.Client, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Result summarizes one Deploy call.
type Result struct {
	Uploaded []string
	Bytes    int64
}

// Deploy walks bundleDir and uploads every regular file under it,
// keyed by its path relative to bundleDir with the Uploader's prefix
// prepended.
func (u *Uploader) Deploy(ctx context.Context, bundleDir string) (Result, error) {
	var result Result

	err := filepath.WalkDir(bundleDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(bundleDir, p)
		if err != nil {
			return err
		}
		key := u.prefix + filepath.ToSlash(rel)

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("deploy: reading %s: %w", p, err)
		}

		_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentTypeFor(p)),
		})
		if err != nil {
			return fmt.Errorf("deploy: uploading %s: %w", key, err)
		}

		result.Uploaded = append(result.Uploaded, key)
		result.Bytes += int64(len(data))
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

// Purge removes every object under the Uploader's prefix, for a clean
// redeploy.
func (u *Uploader) Purge(ctx context.Context) error {
	paginator := s3.NewListObjectsV2Paginator(u.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String(u.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(u.bucket),
				Key:    obj.Key,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// BucketURL returns the public HTTPS URL for key under the Uploader's
// bucket, assuming standard S3 virtual-hosted-style addressing.
func (u *Uploader) BucketURL(region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, region, strings.TrimPrefix(key, "/"))
}

// contentTypeFor guesses a Content-Type from p's extension, defaulting
// to application/octet-stream when the extension is unknown.
func contentTypeFor(p string) string {
	if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
