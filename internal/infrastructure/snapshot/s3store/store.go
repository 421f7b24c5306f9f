package s3store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const csvContentType = "text/csv"

var tracer = otel.Tracer("fpl-advisor/internal/infrastructure/snapshot/s3store")

// Roster reads players-gameweek-{gw}.csv. The diff column is taken as is.
func (s *Store) Roster(ctx context.Context, gameweek int) (asset.Roster, error) {
	ctx, span := tracer.Start(ctx, "s3store.Roster")
	defer span.End()

	body, err := s.get(ctx, PlayersKey(gameweek))
	if err != nil {
		return asset.Roster{}, err
	}
	defer body.Close()

	items, err := parsePlayers(body)
	if err != nil {
		return asset.Roster{}, crerr.Wrapf(err, "parse %s", PlayersKey(gameweek))
	}
	span.SetAttributes(attribute.Int("snapshot.assets", len(items)))
	return asset.NewRoster(gameweek, items), nil
}

func (s *Store) Fixtures(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	ctx, span := tracer.Start(ctx, "s3store.Fixtures")
	defer span.End()

	body, err := s.get(ctx, OddsKey(gameweek))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	items, err := parseOdds(body, gameweek)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse %s", OddsKey(gameweek))
	}
	return items, nil
}

func (s *Store) PublishRoster(ctx context.Context, roster asset.Roster) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writePlayers(buf, roster.Sorted()); err != nil {
		return crerr.Wrap(err, "encode players csv")
	}
	return s.put(ctx, PlayersKey(roster.Gameweek), buf.B)
}

func (s *Store) PublishFixtures(ctx context.Context, gameweek int, items []fixture.Fixture) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writeOdds(buf, items); err != nil {
		return crerr.Wrap(err, "encode odds csv")
	}
	return s.put(ctx, OddsKey(gameweek), buf.B)
}

func (s *Store) get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.reader.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrSnapshotNotFound, s.bucket, key)
		}
		return nil, crerr.Wrapf(err, "get s3://%s/%s", s.bucket, key)
	}
	return out.Body, nil
}

func (s *Store) put(ctx context.Context, key string, payload []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(csvContentType),
	})
	if err != nil {
		return crerr.Wrapf(err, "upload s3://%s/%s", s.bucket, key)
	}
	s.logger.InfoContext(ctx, "snapshot object uploaded", "bucket", s.bucket, "key", key, "bytes", len(payload))
	return nil
}
