// Package publish exports statically rendered pages to an S3 bucket.
//
// Publishing runs a serialization pass over each page root, wraps the
// result in a minimal document shell, and writes it under the configured
// key prefix. State mutation is muted during the pass, so publishing a
// stateful view never schedules work.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lattice-ui/lattice/pkg/render"
)

// ObjectPutter is the slice of the S3 client the publisher needs.
// *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher writes rendered pages to a bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	title  string
	logger *slog.Logger
}

// Config configures a Publisher.
type Config struct {
	// Client is the S3 client. Required.
	Client ObjectPutter

	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every object key (e.g. "site/").
	Prefix string

	// Title is the document title emitted in each page shell.
	Title string

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// New creates a Publisher.
func New(config Config) (*Publisher, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("lattice: publish: nil client")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("lattice: publish: empty bucket")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	title := config.Title
	if title == "" {
		title = "lattice"
	}
	return &Publisher{
		client: config.Client,
		bucket: config.Bucket,
		prefix: config.Prefix,
		title:  title,
		logger: logger.With("bucket", config.Bucket),
	}, nil
}

// PublishPage renders root and writes it at the key derived from path.
// It returns the object key written.
func (p *Publisher) PublishPage(ctx context.Context, path string, root any) (string, error) {
	body, err := render.Static(root)
	if err != nil {
		return "", fmt.Errorf("lattice: publish %s: %w", path, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!doctype html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", p.title)
	buf.WriteString(body)
	buf.WriteString("\n</body>\n</html>\n")

	key := p.keyFor(path)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("lattice: publish %s: %w", path, err)
	}

	p.logger.Info("page published", "path", path, "key", key, "bytes", buf.Len())
	return key, nil
}

// PublishSite publishes every page in the map, keyed by path, in sorted
// order. It stops at the first failure.
func (p *Publisher) PublishSite(ctx context.Context, pages map[string]any) error {
	paths := make([]string, 0, len(pages))
	for path := range pages {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if _, err := p.PublishPage(ctx, path, pages[path]); err != nil {
			return err
		}
	}
	return nil
}

// keyFor maps a route path to an object key: "/" and directory-style
// paths get an index.html, explicit file paths pass through.
func (p *Publisher) keyFor(path string) string {
	path = strings.TrimPrefix(path, "/")
	switch {
	case path == "":
		path = "index.html"
	case strings.HasSuffix(path, "/"):
		path += "index.html"
	case !strings.Contains(path[strings.LastIndex(path, "/")+1:], "."):
		path += "/index.html"
	}
	return p.prefix + path
}
