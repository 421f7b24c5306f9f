// Package s3store keeps gameweek snapshots as CSV objects in an S3 bucket.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

const DefaultBucket = "fpl-bucket-2025"

var ErrSnapshotNotFound = errors.New("snapshot object not found")

type Config struct {
	Bucket         string
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
}

// ObjectReader is the read side of the S3 client.
type ObjectReader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectUploader matches manager.Uploader.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type Store struct {
	reader   ObjectReader
	uploader ObjectUploader
	bucket   string
	logger   *logging.Logger
}

// New builds an S3 client. Static credentials are used when an access key is
// set, otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, logger *logging.Logger) (*Store, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		return nil, fmt.Errorf("s3 region is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := normaliseEndpoint(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return NewWithClients(client, manager.NewUploader(client), cfg.Bucket, logger), nil
}

func NewWithClients(reader ObjectReader, uploader ObjectUploader, bucket string, logger *logging.Logger) *Store {
	if strings.TrimSpace(bucket) == "" {
		bucket = DefaultBucket
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{reader: reader, uploader: uploader, bucket: bucket, logger: logger}
}

func PlayersKey(gameweek int) string {
	return "players-gameweek-" + strconv.Itoa(gameweek) + ".csv"
}

func OddsKey(gameweek int) string {
	return "odds-gameweek-" + strconv.Itoa(gameweek) + ".csv"
}

func normaliseEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Scheme != "" {
		return endpoint
	}
	return "https://" + endpoint
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	type httpResponseError interface {
		HTTPStatusCode() int
	}
	var httpErr httpResponseError
	return errors.As(err, &httpErr) && httpErr.HTTPStatusCode() == 404
}
