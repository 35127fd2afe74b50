package s3

import (
	"fmt"
	"io"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/filestore"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var _ filestore.FileManager = (*S3Driver)(nil)

type S3Driver struct {
	s3         *s3.S3
	BucketName string
	Region     string
}

// New builds the client with static credentials when given, otherwise the
// SDK default chain applies (environment, instance profile).
func New(bucketName, region, key, secret string) *S3Driver {
	session := session.New()
	conf := aws.NewConfig().WithRegion(region)
	if key != "" && secret != "" {
		conf = conf.WithCredentials(credentials.NewStaticCredentials(key, secret, ""))
	}
	s3 := s3.New(session, conf)
	return &S3Driver{s3: s3, BucketName: bucketName, Region: region}
}

func (sd *S3Driver) Create(dir, fileName string, reader io.ReadSeeker) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(sd.BucketName),
		Body:   reader,
		Key:    aws.String(dir + fileName),
	}
	_, err := sd.s3.PutObject(input)
	return err
}

func (sd *S3Driver) Get(dir, fileName string) (io.ReadCloser, error) {
	input := s3.GetObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	op, err := sd.s3.GetObject(&input)
	if err != nil {
		return nil, err
	}
	return op.Body, nil
}

func (sd *S3Driver) Delete(dir, fileName string) error {
	input := s3.DeleteObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	_, err := sd.s3.DeleteObject(&input)
	return err
}

func (sd *S3Driver) GetObjectSize(dir, fileName string) (int64, error) {
	input := s3.HeadObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	op, err := sd.s3.HeadObject(&input)
	if err != nil {
		return 0, err
	}
	return *op.ContentLength, nil
}

func (sd *S3Driver) GetBucketName() string {
	return sd.BucketName
}

func (sd *S3Driver) GetAssessmentFilesDir(organizationID, assessmentID uint64) string {
	return fmt.Sprintf("organizations/%d/assessments/%d/files/", organizationID, assessmentID)
}

func (sd *S3Driver) GetQuotePdfPathAndName(organizationID, quoteID uint64) (string, string) {
	path := fmt.Sprintf("organizations/%d/quotes/", organizationID)
	return path, fmt.Sprintf("quote_NXT-%06d.pdf", quoteID)
}
