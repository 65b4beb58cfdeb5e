package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"freelance-backend/internal/config"
	"freelance-backend/internal/store"
	"freelance-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupService archives the record store and ships it to S3-compatible
// storage (R2, MinIO, S3). The archive is the whole store root, so a restore
// is a plain unzip.
type BackupService struct {
	Store *store.Store
	cfg   *config.Config
}

type BackupInfo struct {
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
}

func NewBackupService(s *store.Store, cfg *config.Config) *BackupService {
	return &BackupService{Store: s, cfg: cfg}
}

// Enabled reports whether backup credentials are configured.
func (s *BackupService) Enabled() bool {
	return s.cfg.Backup.Bucket != "" && s.cfg.Backup.AccessKey != ""
}

// Run zips the store root and uploads it. Returns the object key.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	if !s.Enabled() {
		return "", errors.New("backup is not configured")
	}

	archive, err := s.zipStore()
	if err != nil {
		return "", fmt.Errorf("failed to archive store: %w", err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("backups/store-%s.zip", timeutil.Now().Format("20060102-150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Backup.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(archive),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, len(archive))
	return key, nil
}

// List returns the available backups, newest key last.
func (s *BackupService) List(ctx context.Context) ([]BackupInfo, error) {
	if !s.Enabled() {
		return nil, errors.New("backup is not configured")
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Backup.Bucket),
		Prefix: aws.String("backups/"),
	})
	if err != nil {
		return nil, err
	}

	backups := make([]BackupInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		backups = append(backups, BackupInfo{
			Key:       aws.ToString(obj.Key),
			SizeBytes: aws.ToInt64(obj.Size),
		})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Key < backups[j].Key })
	return backups, nil
}

func (s *BackupService) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Backup.AccessKey,
			s.cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure backup client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Backup.Endpoint)
		}
	}), nil
}

// zipStore walks the store root and writes every record into one archive,
// skipping temp files from in-flight writes.
func (s *BackupService) zipStore() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	root := s.Store.Root()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
