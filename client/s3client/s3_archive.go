package s3client

import (
	"path"
)

// NewArchivePutConfig builds the put request that stores one downloaded
// export output under the archive prefix. The execution and export IDs
// become object metadata so archived outputs stay traceable to the
// server-side execution that produced them.
func NewArchivePutConfig(bucket, prefix, executionID, exportID, fileName string, body []byte, contentType string) *S3RequestConfig {
	return &S3RequestConfig{
		Operation:   "put",
		Bucket:      bucket,
		Key:         path.Join(prefix, executionID, fileName),
		Body:        body,
		ContentType: contentType,
		ExtraOpts: map[string]interface{}{
			"metadata": map[string]string{
				"execution-id": executionID,
				"export-id":    exportID,
			},
		},
	}
}

// NewArchiveListConfig builds the list request for everything archived
// under the given prefix.
func NewArchiveListConfig(bucket, prefix string) *S3RequestConfig {
	return &S3RequestConfig{
		Operation: "list",
		Bucket:    bucket,
		Prefix:    prefix,
	}
}

// NewArchiveGetConfig fetches one archived export output.
func NewArchiveGetConfig(bucket, key string) *S3RequestConfig {
	return &S3RequestConfig{
		Operation: "get",
		Bucket:    bucket,
		Key:       key,
	}
}

// NewArchiveDeleteConfig removes one archived export output.
func NewArchiveDeleteConfig(bucket, key string) *S3RequestConfig {
	return &S3RequestConfig{
		Operation: "delete",
		Bucket:    bucket,
		Key:       key,
	}
}
