package disk

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/filestore"

	log "github.com/sirupsen/logrus"
)

const separator = "/"

var _ filestore.FileManager = (*DiskDriver)(nil)

type DiskDriver struct {
	// Namespace to differentiate files across multiple instances of
	// DiskDriver. Analogous to a bucket name.
	baseDir string
}

func New(baseDir string) *DiskDriver {
	return &DiskDriver{baseDir: baseDir}
}

func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (dd *DiskDriver) Create(path, fileName string, reader io.ReadSeeker) error {
	path = dd.absPath(path)

	err := MkdirAll(path)
	if err != nil {
		log.WithError(err).Errorln("Failed to create dir")
		return err
	}

	file, err := os.Create(path + fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	return err
}

// Get opens a file in read only mode.
// Caller should take care of closing the returned io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	return os.Open(dd.absPath(path) + fileName)
}

func (dd *DiskDriver) Delete(path, fileName string) error {
	return os.Remove(dd.absPath(path) + fileName)
}

func (dd *DiskDriver) GetObjectSize(path, fileName string) (int64, error) {
	info, err := os.Stat(dd.absPath(path) + fileName)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (dd *DiskDriver) GetBucketName() string {
	return dd.baseDir
}

func (dd *DiskDriver) GetAssessmentFilesDir(organizationID, assessmentID uint64) string {
	return fmt.Sprintf("organizations/%d/assessments/%d/files/", organizationID, assessmentID)
}

func (dd *DiskDriver) GetQuotePdfPathAndName(organizationID, quoteID uint64) (string, string) {
	path := fmt.Sprintf("organizations/%d/quotes/", organizationID)
	return path, fmt.Sprintf("quote_NXT-%06d.pdf", quoteID)
}

func (dd *DiskDriver) absPath(path string) string {
	if !strings.HasPrefix(path, dd.baseDir) {
		path = dd.baseDir + separator + path
	}
	if !strings.HasSuffix(path, separator) {
		path = path + separator
	}
	return path
}
