package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"
)

// S3Config S3設定
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// LogUploader archives rotated log files to S3 (or any S3 compatible store)
type LogUploader struct {
	client  s3iface.S3API
	bucket  string
	logger  *logrus.Logger
	now     func() time.Time
	skipped func() string
}

// NewLogUploader S3アップローダーを作成
func NewLogUploader(config S3Config, logger *logrus.Logger) (*LogUploader, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.SecretAccessKey, ""),
		DisableSSL:       aws.Bool(!config.UseSSL),
		S3ForcePathStyle: aws.Bool(true), // MinIOなどのS3互換ストレージ用
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewLogUploaderWithClient(s3.New(sess), config.Bucket, logger), nil
}

// NewLogUploaderWithClient builds an uploader around an existing S3 client
func NewLogUploaderWithClient(client s3iface.S3API, bucket string, logger *logrus.Logger) *LogUploader {
	return &LogUploader{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		now:     time.Now,
		skipped: func() string { return "" },
	}
}

// SkipFile excludes the file returned by current (the log being written)
func (u *LogUploader) SkipFile(current func() string) *LogUploader {
	u.skipped = current
	return u
}

// ObjectKey returns logs/YYYY/MM/DD/<file> for a file modified at modTime
func ObjectKey(fileName string, modTime time.Time) string {
	return path.Join("logs", modTime.Format("2006/01/02"), fileName)
}

// UploadLogFile ログファイルをS3にアップロード
func (u *LogUploader) UploadLogFile(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat log file: %w", err)
	}

	key := ObjectKey(filepath.Base(filePath), info.ModTime())
	_, err = u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/x-ndjson"),
		Metadata: map[string]*string{
			"upload-time": aws.String(u.now().Format(time.RFC3339)),
			"source":      aws.String("lifelog-api-server"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.WithFields(logrus.Fields{
		"bucket": u.bucket,
		"key":    key,
	}).Info("ログファイルをS3にアップロードしました")
	return key, nil
}

// UploadOldLogs uploads and removes *.log files older than maxAge.
// Failures are logged per file; the returned slice lists the uploaded keys.
func (u *LogUploader) UploadOldLogs(ctx context.Context, logDir string, maxAge time.Duration) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := u.now().Add(-maxAge)
	current := u.skipped()
	var uploaded []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		filePath := filepath.Join(logDir, entry.Name())
		if current != "" && filepath.Clean(current) == filepath.Clean(filePath) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			u.logger.WithError(err).WithField("file", entry.Name()).Error("ファイル情報の取得に失敗")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		key, err := u.UploadLogFile(ctx, filePath)
		if err != nil {
			u.logger.WithError(err).WithField("file", entry.Name()).Error("ログファイルのアップロードに失敗")
			continue
		}
		uploaded = append(uploaded, key)

		if err := os.Remove(filePath); err != nil {
			u.logger.WithError(err).WithField("file", entry.Name()).Error("ローカルファイルの削除に失敗")
		}
	}
	return uploaded, nil
}

// StartPeriodicUpload runs UploadOldLogs every interval until ctx is done
func (u *LogUploader) StartPeriodicUpload(ctx context.Context, logDir string, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := u.UploadOldLogs(ctx, logDir, maxAge); err != nil {
					u.logger.WithError(err).Error("定期的なログアップロードに失敗")
				}
			}
		}
	}()

	u.logger.WithFields(logrus.Fields{
		"interval": interval.String(),
		"maxAge":   maxAge.String(),
	}).Info("定期的なログアップロードを開始しました")
}
