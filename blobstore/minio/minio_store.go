package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vecgraph/vecgraph/blobstore"
)

const snapshotContentType = "application/octet-stream"

// ClientOptions configures NewClient.
type ClientOptions struct {
	AccessKey string
	SecretKey string
	Secure    bool
}

// NewClient creates a MinIO client for the given endpoint using static
// credentials. For anything beyond that (IAM, STS, custom transports)
// construct the *minio.Client directly and pass it to NewStore.
func NewClient(endpoint string, optFns ...func(o *ClientOptions)) (*minio.Client, error) {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
	})
}

// Store implements blobstore.BlobStore on a MinIO (or any S3-compatible)
// bucket. All blob names are placed under rootPrefix within the bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a blob store on the given bucket. rootPrefix may be
// empty; when set it namespaces every key (e.g. "graphs/layer0").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open stats the object so the returned blob knows its size; range reads
// are issued lazily per ReadAt/ReadRange call.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return &objectBlob{
		client: s.client,
		bucket: s.bucket,
		key:    s.key(name),
		size:   info.Size,
	}, nil
}

// Put uploads data as a single object. Object storage swaps the object
// atomically on completion, so no temp-and-rename dance is needed.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data),
		int64(len(data)), minio.PutObjectOptions{ContentType: snapshotContentType})
	return err
}

// Create starts a streaming upload. Bytes written to the returned blob
// are piped to a background PutObject; Close flushes the pipe and
// reports the upload result.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	pr, pw := io.Pipe()
	up := &streamUpload{
		pw:   pw,
		done: make(chan error, 1),
	}

	// The upload must be able to finish flushing after the caller's ctx
	// is done, matching the s3 store's Create.
	go func() {
		_, err := s.client.PutObject(context.WithoutCancel(ctx), s.bucket, s.key(name), pr,
			-1, minio.PutObjectOptions{ContentType: snapshotContentType})
		_ = pr.CloseWithError(err)
		up.done <- err
	}()

	return up, nil
}

// Delete removes the object. Deleting a missing blob is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// List returns the names under prefix, relative to the store's root
// prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.key(prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(strings.TrimPrefix(obj.Key, s.prefix), "/")
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// isNotFound reports whether err is MinIO's missing-object response.
func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

// clampRange converts an (offset, length) request into an inclusive byte
// range that stays inside an object of the given size.
func clampRange(off, length, size int64) (int64, int64) {
	end := off + length - 1
	if end >= size {
		end = size - 1
	}
	return off, end
}

// objectBlob reads one object through ranged GETs.
type objectBlob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *objectBlob) Size() int64 {
	return b.size
}

func (b *objectBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	start, end := clampRange(off, int64(len(p)), b.size)
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		return 0, err
	}

	obj, err := b.client.GetObject(ctx, b.bucket, b.key, opts)
	if err != nil {
		return 0, err
	}
	defer func() { _ = obj.Close() }()

	return io.ReadFull(obj, p[:end-start+1])
}

func (b *objectBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	start, end := clampRange(off, length, b.size)
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		return nil, err
	}
	return b.client.GetObject(ctx, b.bucket, b.key, opts)
}

func (b *objectBlob) Close() error {
	return nil
}

// streamUpload is the writer half of a Create upload.
type streamUpload struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (u *streamUpload) Write(p []byte) (int, error) {
	return u.pw.Write(p)
}

// Close finishes the pipe and waits for the background upload to settle.
func (u *streamUpload) Close() error {
	if !u.closed.CompareAndSwap(false, true) {
		return errors.New("already closed")
	}
	if err := u.pw.Close(); err != nil {
		return err
	}
	return <-u.done
}

func (u *streamUpload) Sync() error {
	// The object only becomes visible once the upload completes in
	// Close; there is no intermediate state to flush.
	return nil
}
