package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// testDatabase connects to MONGO_TEST_URI and returns a throwaway database.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("hostlink_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func newTestListingRepository(t *testing.T) *ListingRepository {
	return NewListingRepository(testDatabase(t), ListingCollections{
		Concierges: "concierges",
		Cleanings:  "cleanings",
		Designers:  "designers",
	})
}

func assertPhotoState(t *testing.T, repo *ListingRepository, id string, approved, pending []string) {
	t.Helper()
	listing, err := repo.FindByID(context.Background(), domain.KindConcierge, id)
	require.NoError(t, err)
	core := listing.Core()

	assert.Equal(t, approved, nonNil(core.PortfolioPhotos), "approved")
	assert.Equal(t, pending, nonNil(core.PortfolioPhotosPending), "pending")

	seen := map[string]bool{}
	for _, url := range append(append([]string(nil), core.PortfolioPhotos...), core.PortfolioPhotosPending...) {
		assert.False(t, seen[url], "%s stored twice", url)
		seen[url] = true
	}
}

func TestPhotoQueueWritesAgainstMongo(t *testing.T) {
	repo := newTestListingRepository(t)
	ctx := context.Background()
	kind := domain.KindConcierge

	id, err := repo.Create(ctx, &domain.ConciergeListing{ListingCore: domain.ListingCore{
		OwnerID:         "owner-1",
		Name:            "Riad Services",
		Status:          domain.StatusApproved,
		PortfolioPhotos: []string{"a"},
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}})
	require.NoError(t, err)

	submit := func(owner, url string) bool {
		t.Helper()
		changed, err := repo.SubmitPhoto(ctx, kind, id, owner, url)
		require.NoError(t, err)
		return changed
	}
	assert.True(t, submit("owner-1", "b"))
	assert.False(t, submit("owner-1", "b"), "already pending")
	assert.False(t, submit("owner-1", "a"), "already approved")
	assert.False(t, submit("owner-2", "z"), "foreign owner")
	assert.True(t, submit("owner-1", "c"))
	assert.True(t, submit("owner-1", "d"))
	assert.True(t, submit("owner-1", "e"))
	assertPhotoState(t, repo, id, []string{"a"}, []string{"b", "c", "d", "e"})

	n, err := repo.CountWithPendingPhotos(ctx, kind)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	changed, err := repo.ApprovePhoto(ctx, kind, id, "b")
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.ApprovePhoto(ctx, kind, id, "b")
	require.NoError(t, err)
	assert.False(t, changed, "second approve is a no-op")
	assertPhotoState(t, repo, id, []string{"a", "b"}, []string{"c", "d", "e"})

	changed, err = repo.RejectPhoto(ctx, kind, id, "c")
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.RejectPhoto(ctx, kind, id, "a")
	require.NoError(t, err)
	assert.False(t, changed, "approved photos are not rejected")
	assertPhotoState(t, repo, id, []string{"a", "b"}, []string{"d", "e"})

	changed, err = repo.ApproveAllPhotos(ctx, kind, id)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.ApproveAllPhotos(ctx, kind, id)
	require.NoError(t, err)
	assert.False(t, changed, "empty queue")
	assertPhotoState(t, repo, id, []string{"a", "b", "d", "e"}, []string{})

	assert.True(t, submit("owner-1", "f"))
	assert.True(t, submit("owner-1", "g"))
	changed, err = repo.RejectAllPhotos(ctx, kind, id)
	require.NoError(t, err)
	assert.True(t, changed)
	assertPhotoState(t, repo, id, []string{"a", "b", "d", "e"}, []string{})

	n, err = repo.CountWithPendingPhotos(ctx, kind)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindWithPendingPhotosOrdersByUpdate(t *testing.T) {
	repo := newTestListingRepository(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i, name := range []string{"Dar Nour", "Riad Zitoun", "Kasbah Sol"} {
		id, err := repo.Create(ctx, &domain.ConciergeListing{ListingCore: domain.ListingCore{
			OwnerID: "owner-1", Name: name, Status: domain.StatusPending,
			PortfolioPhotosPending: []string{name + ".jpg"},
			CreatedAt:              t0, UpdatedAt: t0.Add(time.Duration(3-i) * time.Hour),
		}})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := repo.Create(ctx, &domain.ConciergeListing{ListingCore: domain.ListingCore{
		OwnerID: "owner-1", Name: "Empty Queue", Status: domain.StatusPending, CreatedAt: t0, UpdatedAt: t0,
	}})
	require.NoError(t, err)

	first, err := repo.FindWithPendingPhotos(ctx, domain.KindConcierge, adminapp.Paging{Page: 1, Limit: 2})
	require.NoError(t, err)
	second, err := repo.FindWithPendingPhotos(ctx, domain.KindConcierge, adminapp.Paging{Page: 2, Limit: 2})
	require.NoError(t, err)

	var got []string
	for _, l := range append(first, second...) {
		got = append(got, l.Core().ID)
	}
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, got)
}
