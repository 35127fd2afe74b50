package s3

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var s3Driver *S3Driver

// TODO: Add Create and Get tests using localstack.
func TestMain(m *testing.M) {
	s3Driver = New("nxtkonekt-dev-test", "us-east-1", "", "")
	os.Exit(m.Run())
}

func TestGetAssessmentFilesDir(t *testing.T) {
	result := s3Driver.GetAssessmentFilesDir(12, 340)
	assert.Equal(t, "organizations/12/assessments/340/files/", result)
}

func TestGetQuotePdfPathAndName(t *testing.T) {
	dir, name := s3Driver.GetQuotePdfPathAndName(12, 42)
	assert.Equal(t, "organizations/12/quotes/", dir)
	assert.Equal(t, "quote_NXT-000042.pdf", name)
}
