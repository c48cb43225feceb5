package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/schollz/progressbar/v3"
	"github.com/yousefabuz17/pyzipgrep/internal"
)

// download fetches one s3://bucket/key object to a temp file and returns its
// path. The caller removes the file when done.
func download(ctx context.Context, client *s3.Client, uri string) (string, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if !ok || key == "" {
		return "", fmt.Errorf("malformed S3 URI %q; want s3://bucket/key", uri)
	}

	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf(`head object "%s" error: %w`, uri, err)
	}

	f, err := os.CreateTemp("", "pyzipgrep-*"+filepath.Ext(key))
	if err != nil {
		return "", fmt.Errorf("create temp file error: %w", err)
	}

	bar := internal.DefaultBytes(
		aws.ToInt64(head.ContentLength),
		"downloading "+internal.TruncateRightWithSuffix(path.Base(key), 30, "..."))
	defer bar.Close()

	_, err = manager.NewDownloader(client).Download(ctx, &progressWriterAt{w: f, bar: bar}, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf(`download "%s" error: %w`, uri, err)
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf(`close "%s" error: %w`, f.Name(), err)
	}

	return f.Name(), nil
}

type progressWriterAt struct {
	w   io.WriterAt
	bar *progressbar.ProgressBar
}

func (p *progressWriterAt) WriteAt(b []byte, off int64) (int, error) {
	n, err := p.w.WriteAt(b, off)
	_ = p.bar.Add(n)
	return n, err
}
