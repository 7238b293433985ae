package media

import (
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestParseDataURL(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0, 1, 2}
	tests := []struct {
		name      string
		ref       string
		wantType  string
		wantData  string
		wantError bool
	}{
		{"base64 png", "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), "image/png", string(png), false},
		{"plain text", "data:,hello%20world", "text/plain", "hello world", false},
		{"no separator", "data:image/png;base64", "", "", true},
		{"bad base64", "data:image/png;base64,@@@", "", "", true},
		{"http url", "https://example.com/a.png", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDataURL(tt.ref)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got %+v", d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataURL: %v", err)
			}
			if d.MediaType != tt.wantType || string(d.Data) != tt.wantData {
				t.Errorf("got %q %q", d.MediaType, d.Data)
			}
		})
	}
}

func TestDecodedSize(t *testing.T) {
	payload := strings.Repeat("a", 100)
	ref := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
	if got := DecodedSize(ref); got != 100 {
		t.Errorf("DecodedSize = %d, want 100", got)
	}
	if got := DecodedSize("https://example.com/x.png"); got != 0 {
		t.Errorf("DecodedSize(url) = %d", got)
	}
	if got := DecodedSize("data:image/png;base64,@@@"); got != -1 {
		t.Errorf("DecodedSize(malformed) = %d, want -1", got)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreOffload(t *testing.T) {
	fake := &fakePutter{}
	store := &S3Store{client: fake, cfg: S3Config{Bucket: "media", Region: "eu-west-1", Prefix: "p/", PublicBaseURL: "https://cdn.example.com/"}}

	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))
	got, err := store.Offload(context.Background(), ref)
	if err != nil {
		t.Fatalf("Offload: %v", err)
	}
	if !strings.HasPrefix(got, "https://cdn.example.com/p/") || !strings.HasSuffix(got, ".png") {
		t.Errorf("public URL = %q", got)
	}
	if fake.input == nil || *fake.input.Bucket != "media" || string(fake.body) != "pixels" {
		t.Errorf("unexpected upload %+v body=%q", fake.input, fake.body)
	}

	fake.input = nil
	plain := "https://example.com/photo.jpg"
	if got, err := store.Offload(context.Background(), plain); err != nil || got != plain {
		t.Errorf("Offload(url) = %q, %v", got, err)
	}
	if fake.input != nil {
		t.Error("plain URL should not be uploaded")
	}
}
