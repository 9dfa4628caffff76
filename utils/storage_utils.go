package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage uploads files to an S3-compatible object store. ID proofs and other
// documents live under per-purpose folders inside one bucket.
type Storage struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

func NewStorage(accessKey, secretKey, bucket, region, endpoint, publicURL string) (*Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &Storage{client: s3.New(sess), bucket: bucket, publicURL: publicURL}, nil
}

func (s *Storage) Upload(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, filePath), nil
}
