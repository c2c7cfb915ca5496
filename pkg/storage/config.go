package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Kinds of store.
const (
	KindLocal = "local"
	KindS3    = "s3"
)

// DefaultRegion is used for S3 when no region is configured.
const DefaultRegion = "us-east-1"

// Config selects and configures a FileStore. It is stored in a profile of
// the gpspeech config file.
type Config struct {
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Local
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`

	// S3
	Bucket    string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Region    string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty" json:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty" json:"secret_key,omitempty"`
}

// ParseDest turns a --dest argument into a Config. "s3://bucket/prefix"
// selects S3; anything else is a local directory. The remaining S3
// settings are taken from base.
func ParseDest(dest string, base Config) (Config, error) {
	if rest, ok := strings.CutPrefix(dest, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return Config{}, fmt.Errorf("storage: missing bucket in %q", dest)
		}
		cfg := base
		cfg.Kind = KindS3
		cfg.Bucket = bucket
		cfg.Prefix = trimSlashes(prefix)
		cfg.Dir = ""
		return cfg, nil
	}
	if dest == "" {
		return Config{}, errors.New("storage: empty destination")
	}
	return Config{Kind: KindLocal, Dir: dest}, nil
}

// Open creates the FileStore described by cfg.
func Open(_ context.Context, cfg Config) (FileStore, error) {
	switch cfg.Kind {
	case "", KindLocal:
		if cfg.Dir == "" {
			return nil, errors.New("storage: local store needs a directory")
		}
		return NewLocal(cfg.Dir)
	case KindS3:
		if cfg.Bucket == "" {
			return nil, errors.New("storage: s3 store needs a bucket")
		}
		return NewS3(newS3Client(cfg), cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("storage: unknown kind %q", cfg.Kind)
	}
}

func newS3Client(cfg Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = DefaultRegion
	}
	access, secret := cfg.AccessKey, cfg.SecretKey
	if access == "" {
		access = os.Getenv("AWS_ACCESS_KEY_ID")
		secret = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	opts := s3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			if access == "" {
				return aws.Credentials{}, errors.New("storage: no s3 credentials configured")
			}
			return aws.Credentials{
				AccessKeyID:     access,
				SecretAccessKey: secret,
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
				Source:          "gpspeech",
			}, nil
		}),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func trimSlashes(s string) string {
	return strings.Trim(s, "/")
}
