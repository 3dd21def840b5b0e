package storage

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/services/storage/aws_client"
)

// NewFromConfig builds the attachment store for the configured provider.
func NewFromConfig(cfg *config.StorageConfig) interfaces.StorageService {
	if cfg.Provider == "s3" {
		return NewS3StorageService(cfg.AWSRegion, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.TicketAttachmentBucket, cfg.CDNDomain)
	}
	return NewR2StorageService(cfg.AccountID, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.TicketAttachmentBucket, cfg.CDNDomain)
}

// NewS3StorageService creates a StorageService configured for AWS S3
func NewS3StorageService(awsRegion, accessKeyID, accessKeySecret, bucketName, cdnDomain string) interfaces.StorageService {
	s3Client := aws_client.NewS3Client(&aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	})

	return NewStorageService(s3Client, StorageConfig{
		BucketName: bucketName,
		CDNDomain:  cdnDomain,
	})
}

// NewR2StorageService creates a StorageService configured for Cloudflare R2
func NewR2StorageService(accountID, accessKeyID, accessKeySecret, bucketName, cdnDomain string) interfaces.StorageService {
	r2Client := aws_client.NewS3Client(&aws.Config{
		Endpoint:         aws.String("https://" + accountID + ".r2.cloudflarestorage.com"),
		Region:           aws.String("auto"),
		Credentials:      credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})

	return NewStorageService(r2Client, StorageConfig{
		BucketName: bucketName,
		CDNDomain:  cdnDomain,
	})
}
