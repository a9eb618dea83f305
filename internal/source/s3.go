package source

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xitongsys/parquet-go-source/buffer"
)

// ObjectAPI is the part of the S3 client the object source needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// S3Object reads a parquet object from a bucket.
type S3Object struct {
	client ObjectAPI
	bucket string
	key    string
}

func NewS3Object(client ObjectAPI, bucket, key string) *S3Object {
	return &S3Object{client: client, bucket: bucket, key: key}
}

func (o *S3Object) Name() string { return "s3://" + o.bucket + "/" + o.key }

func (o *S3Object) Fingerprint(ctx context.Context) (string, error) {
	out, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
	})
	if err != nil {
		return "", fmt.Errorf("head %s: %w", o.Name(), err)
	}
	modified := int64(0)
	if out.LastModified != nil {
		modified = out.LastModified.UnixNano()
	}
	return fmt.Sprintf("%s:%s:%d", o.Name(), aws.ToString(out.ETag), modified), nil
}

func (o *S3Object) Read(ctx context.Context) (*Table, error) {
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", o.Name(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", o.Name(), err)
	}
	pf, err := buffer.NewBufferFile(data)
	if err != nil {
		return nil, fmt.Errorf("buffer %s: %w", o.Name(), err)
	}
	return readParquet(o.key, pf)
}
