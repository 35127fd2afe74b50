package filestore

import (
	"io"
)

// FileManager abstracts where uploaded attachments and generated PDFs live.
// Local disk is used in development, S3 everywhere else.
type FileManager interface {
	Create(dir, fileName string, reader io.ReadSeeker) error
	Get(dir, fileName string) (io.ReadCloser, error)
	Delete(dir, fileName string) error
	GetObjectSize(dir, fileName string) (int64, error)
	GetBucketName() string

	GetAssessmentFilesDir(organizationID, assessmentID uint64) string
	GetQuotePdfPathAndName(organizationID, quoteID uint64) (string, string)
}
