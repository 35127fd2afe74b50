package disk

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateGetDeleteRoundTrip(t *testing.T) {
	driver := New(t.TempDir())
	dir := driver.GetAssessmentFilesDir(7, 31)
	content := []byte("roof photo bytes")

	err := driver.Create(dir, "photo.jpg", bytes.NewReader(content))
	assert.Nil(t, err)

	size, err := driver.GetObjectSize(dir, "photo.jpg")
	assert.Nil(t, err)
	assert.Equal(t, int64(len(content)), size)

	reader, err := driver.Get(dir, "photo.jpg")
	assert.Nil(t, err)
	read, err := ioutil.ReadAll(reader)
	reader.Close()
	assert.Nil(t, err)
	assert.Equal(t, content, read)

	err = driver.Delete(dir, "photo.jpg")
	assert.Nil(t, err)
	_, err = driver.Get(dir, "photo.jpg")
	assert.NotNil(t, err)
}

func TestGetReturnsErrorForMissingFile(t *testing.T) {
	driver := New(t.TempDir())
	_, err := driver.Get("organizations/1/assessments/2/files/", "missing.pdf")
	assert.NotNil(t, err)
}

func TestQuotePdfPathUsesQuoteNumber(t *testing.T) {
	driver := New("/tmp/nxtkonekt-test")
	dir, name := driver.GetQuotePdfPathAndName(3, 9)
	assert.Equal(t, "organizations/3/quotes/", dir)
	assert.Equal(t, "quote_NXT-000009.pdf", name)
}
