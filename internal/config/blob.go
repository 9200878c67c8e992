package config

import "fmt"

// BlobConfig holds object storage configuration for uploaded registrant files.
type BlobConfig struct {
	// Bucket is the bucket holding payment screenshots and attachments.
	Bucket string
	// Region is the storage region.
	Region string
	// Endpoint overrides the storage endpoint (useful for local stacks).
	Endpoint string
}

// LoadBlobConfigFromEnv loads blob storage configuration from environment variables.
func LoadBlobConfigFromEnv() BlobConfig {
	return BlobConfig{
		Bucket:   GetEnv("BLOB_BUCKET", "festhive-uploads"),
		Region:   GetEnv("BLOB_REGION", "ap-south-1"),
		Endpoint: GetEnv("BLOB_ENDPOINT", ""),
	}
}

// Validate validates blob storage configuration.
func (c BlobConfig) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("blob bucket must not be empty")
	}
	if c.Region == "" {
		return fmt.Errorf("blob region must not be empty")
	}
	return nil
}
