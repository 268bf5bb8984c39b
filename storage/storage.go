// Package storage wraps the S3 (or minIO) bucket that holds claim documents.
// Clients never stream file content through the API; they get short-lived
// presigned URLs for both upload and download.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/claimwell/claims-api/domain"
)

type ObjectUrl struct {
	Url        string
	Expiration time.Time
}

// UploadTarget is a presigned PUT request the client performs itself.
type UploadTarget struct {
	Url     string
	Headers map[string]string
}

type awsConfig struct {
	awsAccessKeyID     string
	awsSecretAccessKey string
	awsEndpoint        string
	awsRegion          string
	awsS3Bucket        string
	awsDisableSSL      bool
}

func getS3ConfigFromEnv() awsConfig {
	var a awsConfig
	a.awsAccessKeyID = domain.Env.AwsAccessKeyID
	a.awsSecretAccessKey = domain.Env.AwsSecretAccessKey
	a.awsEndpoint = domain.Env.AwsS3Endpoint
	a.awsRegion = domain.Env.AwsRegion
	a.awsS3Bucket = domain.Env.AwsS3Bucket
	a.awsDisableSSL = domain.Env.AwsS3DisableSSL

	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		a.awsAccessKeyID = "abc123"
		a.awsSecretAccessKey = "abcd1234"
	}

	return a
}

func createS3Service(config awsConfig) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.awsAccessKeyID, config.awsSecretAccessKey, ""),
		Endpoint:         aws.String(config.awsEndpoint),
		Region:           aws.String(config.awsRegion),
		DisableSSL:       aws.Bool(config.awsDisableSSL),
		S3ForcePathStyle: aws.Bool(len(config.awsEndpoint) > 0),
	})
	svc := s3.New(sess)

	return svc, err
}

func urlLifespan() time.Duration {
	return time.Duration(domain.Env.AwsS3URLLifeMinutes) * time.Minute
}

// SignUpload returns a presigned PUT URL for the given key. The client must
// send the same content type it declared, or the signature will not match.
func SignUpload(key, contentType string) (UploadTarget, error) {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return UploadTarget{}, err
	}

	req, _ := svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(config.awsS3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})

	signedUrl, err := req.Presign(urlLifespan())
	if err != nil {
		return UploadTarget{}, err
	}

	return UploadTarget{
		Url:     signedUrl,
		Headers: map[string]string{"Content-Type": contentType},
	}, nil
}

// GetFileURL returns a presigned GET URL from which a stored object can be
// loaded without external credentials.
func GetFileURL(key string) (ObjectUrl, error) {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return ObjectUrl{}, err
	}

	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(config.awsS3Bucket),
		Key:    aws.String(key),
	})

	lifespan := urlLifespan()
	signedUrl, err := req.Presign(lifespan)
	if err != nil {
		return ObjectUrl{}, err
	}

	return ObjectUrl{
		Url: signedUrl,
		// slightly before the actual url expiration to account for delays
		Expiration: time.Now().Add(lifespan - time.Minute),
	}, nil
}

// ObjectExists reports whether the key is present in the bucket. Used to
// verify that a client completed its presigned upload.
func ObjectExists(key string) (bool, error) {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return false, err
	}

	_, err = svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(config.awsS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "NotFound" {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// MoveFile copies an object to a new key and removes the original. Used to
// migrate staged uploads to their permanent claim location.
func MoveFile(sourceKey, targetKey string) error {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return err
	}

	if _, err := svc.CopyObject(&s3.CopyObjectInput{
		Bucket:     aws.String(config.awsS3Bucket),
		CopySource: aws.String(config.awsS3Bucket + "/" + sourceKey),
		Key:        aws.String(targetKey),
	}); err != nil {
		return fmt.Errorf("error copying %s to %s: %w", sourceKey, targetKey, err)
	}

	return RemoveFile(sourceKey)
}

// RemoveFile removes a file from the configured AWS S3 bucket.
func RemoveFile(key string) error {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return err
	}

	if _, err := svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(config.awsS3Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return err
	}

	return nil
}

// CreateS3Bucket creates an S3 bucket with a name defined by an environment variable. If the bucket already
// exists, it will not return an error.
func CreateS3Bucket() error {
	env := domain.Env.GoEnv
	if env != domain.EnvTest && env != domain.EnvDevelopment {
		return errors.New("CreateS3Bucket should only be used in test and development")
	}

	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return err
	}

	c := &s3.CreateBucketInput{Bucket: &domain.Env.AwsS3Bucket}
	if _, err := svc.CreateBucket(c); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists:
			case s3.ErrCodeBucketAlreadyOwnedByYou:
			default:
				return err
			}
		}
	}
	return nil
}
