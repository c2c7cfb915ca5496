package storage

import (
	"context"
	"testing"
)

func TestParseDest(t *testing.T) {
	base := Config{Region: "eu-west-1", Endpoint: "http://minio:9000", Dir: "ignored"}
	tests := []struct {
		dest    string
		want    Config
		wantErr bool
	}{
		{dest: "out", want: Config{Kind: KindLocal, Dir: "out"}},
		{dest: "s3://bkt", want: Config{Kind: KindS3, Bucket: "bkt", Region: "eu-west-1", Endpoint: "http://minio:9000"}},
		{dest: "s3://bkt/a/b/", want: Config{Kind: KindS3, Bucket: "bkt", Prefix: "a/b", Region: "eu-west-1", Endpoint: "http://minio:9000"}},
		{dest: "s3:///x", wantErr: true},
		{dest: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, err := ParseDest(tt.dest, base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	fs, err := Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fs.(*Local); !ok {
		t.Errorf("Open(local) = %T", fs)
	}

	fs, err = Open(ctx, Config{Kind: KindS3, Bucket: "b", Prefix: "p", Endpoint: "http://127.0.0.1:9000", AccessKey: "k", SecretKey: "s"})
	if err != nil {
		t.Fatal(err)
	}
	s3s, ok := fs.(*S3Store)
	if !ok || s3s.Bucket() != "b" {
		t.Errorf("Open(s3) = %T", fs)
	}

	for _, cfg := range []Config{{}, {Kind: KindS3}, {Kind: "ftp"}} {
		if _, err := Open(ctx, cfg); err == nil {
			t.Errorf("Open(%+v): want error", cfg)
		}
	}
}
