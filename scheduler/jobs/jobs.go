package jobs

import (
	"context"
	"fmt"
	"gotierlist/pkg/config"
	"gotierlist/pkg/logger"
	"log"
	"time"
)

// Upper bound of a single job run.
const jobTimeout = 30 * time.Minute

// Run the job with a dedicated file logger, shipping the log when a bucket is configured.
func runWithLogger(cfg *config.Config, name string, job func(ctx context.Context, l *logger.Logger) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	jobLogger, err := logger.CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("couldn't create the %s logger: %w", name, err)
	}
	defer jobLogger.Close()

	jobLogger.Infof("Starting %s", name)
	jobErr := job(ctx, jobLogger)
	if jobErr != nil {
		jobLogger.Errorf("%s failed: %v", name, jobErr)
	} else {
		jobLogger.Infof("%s completed successfully", name)
	}

	if cfg.Bucket.Enabled {
		objectKey := fmt.Sprintf("%s/%s.log", name, time.Now().UTC().Format("2006-01-02T15-04-05"))
		if err := jobLogger.UploadToS3Bucket(ctx, objectKey); err != nil {
			log.Printf("Couldn't upload the %s log: %v", name, err)
		}
	}

	return jobErr
}
