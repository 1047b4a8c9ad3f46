package deploy

import (
	"context"
	"testing"
)

func TestContentTypeForKnownExtension(t *testing.T) {
	if got := contentTypeFor("bundle.js"); got == "" || got == "application/octet-stream" {
		t.Fatalf("expected a recognized JS content type, got %q", got)
	}
}

func TestContentTypeForUnknownExtensionFallsBack(t *testing.T) {
	if got := contentTypeFor("bundle.vireo-weird-ext"); got != "application/octet-stream" {
		t.Fatalf("expected fallback content type, got %q", got)
	}
}

func TestBucketURLFormatsVirtualHostedStyle(t *testing.T) {
	u := NewUploader(nil, "my-bucket", "demo/")
	got := u.BucketURL("us-east-1", "/demo/index.html")
	want := "https://my-bucket.s3.us-east-1.amazonaws.com/demo/index.html"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeployEmptyDirectoryUploadsNothing(t *testing.T) {
	u := NewUploader(nil, "my-bucket", "demo/")
	dir := t.TempDir()

	result, err := u.Deploy(context.Background(), dir)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if len(result.Uploaded) != 0 || result.Bytes != 0 {
		t.Fatalf("expected no uploads for an empty directory, got %+v", result)
	}
}
