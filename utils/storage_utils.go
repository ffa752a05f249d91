package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Uploader stores images on an S3-compatible object store.
type Uploader struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

// NewUploader builds the S3 client. publicURL is the base under which
// uploaded objects are reachable, without a trailing slash.
func NewUploader(accessKey, secretKey, region, endpoint, bucket, publicURL string) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &Uploader{client: s3.New(sess), bucket: bucket, publicURL: publicURL}, nil
}

// UploadFile stores the file under folder/fileName and returns its public URL.
func (u *Uploader) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	if u == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	key := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}
	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
