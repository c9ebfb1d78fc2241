package logger

import (
	"context"
	"errors"
	"fmt"
	"gotierlist/pkg/config"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Uploader is the part of the s3 client used to ship the logs.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Logger that we will use to save the job logs.
type Logger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	bucket   string
	uploader Uploader
}

// Create the log instance with a temporary file.
// The uploader is only created when a log bucket is configured.
func CreateLogger(cfg *config.Config) (*Logger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	l := &Logger{
		logFile:  f,
		filePath: f.Name(),
	}

	if cfg != nil && cfg.Bucket.Enabled {
		l.bucket = cfg.Bucket.LogBucket
		l.uploader = newS3Client(cfg.Bucket)
	}

	return l, nil
}

// Create the s3 client for the configured bucket.
func newS3Client(bucket config.BucketConfiguration) *s3.Client {
	awsCfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
		}
	})
}

// Log a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.write("[INFO]", format, args...)
}

// Log a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.write("[WARN]", format, args...)
}

// Log a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("[ERROR]", format, args...)
}

// Write a empty line.
func (l *Logger) EmptyLine() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.WriteString("\n")
}

// Write something to the logger.
func (l *Logger) write(infoType string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
}

// Contents returns everything written since the last clean.
func (l *Logger) Contents() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	data, err := io.ReadAll(l.logFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clean the file contents.
func (l *Logger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanFile()
}

func (l *Logger) cleanFile() {
	l.logFile.Truncate(0)
	l.logFile.Seek(0, io.SeekStart)
}

// Upload the log to a s3 bucket and clean it.
func (l *Logger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	if l.uploader == nil {
		return errors.New("no log bucket configured")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	_, err := l.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.cleanFile()

	return nil
}

// Close the file and remove it from the disk.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(l.filePath)
}
