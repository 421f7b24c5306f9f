package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	assetmock "github.com/riskibarqy/fpl-advisor/internal/mocks/domain/asset"
	fantasymock "github.com/riskibarqy/fpl-advisor/internal/mocks/domain/fantasy"
	fixturemock "github.com/riskibarqy/fpl-advisor/internal/mocks/domain/fixture"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu          sync.Mutex
	roster      asset.Roster
	fixtures    []fixture.Fixture
	rosterErr   error
	fixturesErr error
}

func (p *fakePublisher) PublishRoster(_ context.Context, roster asset.Roster) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roster = roster
	return p.rosterErr
}

func (p *fakePublisher) PublishFixtures(_ context.Context, _ int, items []fixture.Fixture) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fixtures = items
	return p.fixturesErr
}

type fakeInvalidator struct {
	gameweeks []int
	err       error
}

func (f *fakeInvalidator) InvalidateRoster(_ context.Context, gameweek int) error {
	f.gameweeks = append(f.gameweeks, gameweek)
	return f.err
}

func TestSnapshotService_Publish(t *testing.T) {
	t.Parallel()

	rosters := assetmock.NewRosterProvider(t)
	fixtures := fixturemock.NewProvider(t)
	gameweeks := fantasymock.NewGameweekResolver(t)
	publisher := &fakePublisher{}
	memoryCache := &fakeInvalidator{}
	sharedCache := &fakeInvalidator{err: errors.New("redis down")}

	service := NewSnapshotService(rosters, fixtures, gameweeks, publisher, logging.NewNop(), memoryCache, sharedCache)

	gameweeks.On("NextGameweek", mock.Anything).Return(11, nil).Once()
	rosters.On("Roster", mock.Anything, 11).Return(testRoster(11), nil).Once()
	fixtures.On("Fixtures", mock.Anything, 11).Return([]fixture.Fixture{{ID: 1}, {ID: 2}}, nil).Once()

	got, err := service.Publish(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 11, got.Gameweek)
	assert.Equal(t, 19, got.AssetCount)
	assert.Equal(t, 2, got.FixtureCount)
	assert.Equal(t, 19, publisher.roster.Len())
	assert.Len(t, publisher.fixtures, 2)
	assert.Equal(t, []int{11}, memoryCache.gameweeks)
	assert.Equal(t, []int{11}, sharedCache.gameweeks)
}

func TestSnapshotService_Publish_SourceFailure(t *testing.T) {
	t.Parallel()

	rosters := assetmock.NewRosterProvider(t)
	fixtures := fixturemock.NewProvider(t)
	publisher := &fakePublisher{}
	service := NewSnapshotService(rosters, fixtures, nil, publisher, logging.NewNop())

	rosters.On("Roster", mock.Anything, 4).Return(asset.Roster{}, errors.New("fpl 503")).Once()
	fixtures.On("Fixtures", mock.Anything, 4).Return(nil, nil).Maybe()

	_, err := service.Publish(context.Background(), 4)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	assert.Equal(t, 0, publisher.roster.Len())
}

func TestSnapshotService_Publish_WriteFailure(t *testing.T) {
	t.Parallel()

	rosters := assetmock.NewRosterProvider(t)
	fixtures := fixturemock.NewProvider(t)
	publisher := &fakePublisher{fixturesErr: errors.New("access denied")}
	invalidator := &fakeInvalidator{}
	service := NewSnapshotService(rosters, fixtures, nil, publisher, logging.NewNop(), invalidator)

	rosters.On("Roster", mock.Anything, 4).Return(testRoster(4), nil).Once()
	fixtures.On("Fixtures", mock.Anything, 4).Return([]fixture.Fixture{{ID: 1}}, nil).Once()

	_, err := service.Publish(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish fixtures gw=4")
	assert.Empty(t, invalidator.gameweeks)
}

func TestSnapshotService_Publish_RequiresGameweekWithoutResolver(t *testing.T) {
	t.Parallel()

	service := NewSnapshotService(nil, nil, nil, &fakePublisher{}, logging.NewNop())
	_, err := service.Publish(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
