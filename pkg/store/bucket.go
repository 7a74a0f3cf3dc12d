// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"laptudirm.com/x/pairings/internal/util"
)

// objectAPI is the subset of the S3 client used by Bucket.
type objectAPI interface {
	PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Bucket is a Store keeping every record as an object in an S3 bucket,
// under a common key prefix.
type Bucket struct {
	client objectAPI

	name   string
	prefix string
}

var _ Store = (*Bucket)(nil)

// NewBucket connects to the named bucket using the default AWS
// configuration sources (environment variables, then the shared config
// and credentials files) and checks that the bucket is reachable.
func NewBucket(ctx context.Context, name, prefix string) (*Bucket, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("bucket: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	}); err != nil {
		return nil, fmt.Errorf("bucket: head bucket failed for %s: %w", name, err)
	}

	return newBucket(client, name, prefix), nil
}

func newBucket(client objectAPI, name, prefix string) *Bucket {
	return &Bucket{
		client: client,
		name:   name,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (b *Bucket) key(name string) string {
	return path.Join(b.prefix, name+Extension)
}

// missing reports whether err is S3's way of saying the object does not
// exist.
func missing(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}

	return false
}

func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(b.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/yaml"),
	})
	if err != nil {
		return fmt.Errorf("bucket: put %s failed: %w", name, err)
	}

	return nil
}

func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.key(name)),
	})
	if err != nil {
		if missing(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bucket: get %s failed: %w", name, err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// List returns the names of all records under the prefix in natural order.
func (b *Bucket) List(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
	}
	if b.prefix != "" {
		input.Prefix = aws.String(b.prefix + "/")
	}

	names := []string{}
	for {
		page, err := b.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("bucket: list failed: %w", err)
		}

		for _, object := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(object.Key), aws.ToString(input.Prefix))
			if strings.Contains(name, "/") || !strings.HasSuffix(name, Extension) {
				continue
			}

			names = append(names, strings.TrimSuffix(name, Extension))
		}

		if !aws.ToBool(page.IsTruncated) || page.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = page.NextContinuationToken
	}

	util.SortNatural(names)
	return names, nil
}

// Delete removes the named record. S3 deletes are idempotent, so the
// object is looked up first to report ErrNotFound.
func (b *Bucket) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	key := aws.String(b.key(name))
	if _, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    key,
	}); err != nil {
		if missing(err) {
			return ErrNotFound
		}
		return fmt.Errorf("bucket: head %s failed: %w", name, err)
	}

	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    key,
	}); err != nil {
		return fmt.Errorf("bucket: delete %s failed: %w", name, err)
	}

	return nil
}
