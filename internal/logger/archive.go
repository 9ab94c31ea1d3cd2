package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrArchiveDisabled = errors.New("log archive bucket not configured")

type ArchiveConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// Archiver uploads the log file to S3 under logs/<yyyy>/<mm>/<dd>/<name>-<ts>.log.
type Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewArchiver(cfg ArchiveConfig) *Archiver {
	if cfg.Bucket == "" {
		return &Archiver{}
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &Archiver{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		now:    time.Now,
	}
}

func (a *Archiver) Enabled() bool {
	return a != nil && a.client != nil && a.bucket != ""
}

// ObjectKey is the S3 key used for an upload of path at t.
func ObjectKey(path string, t time.Time) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	if ext == "" {
		ext = ".log"
	}
	return fmt.Sprintf("logs/%s/%s-%s%s", t.UTC().Format("2006/01/02"), name, t.UTC().Format("20060102T150405Z"), ext)
}

func (a *Archiver) Upload(ctx context.Context, path string) (string, error) {
	if !a.Enabled() {
		return "", ErrArchiveDisabled
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	key := ObjectKey(path, a.now())

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", fmt.Errorf("upload log archive: %w", err)
	}

	return key, nil
}
