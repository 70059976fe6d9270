package client

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"bagsync/internal/app/client/config"
	"bagsync/internal/domain/inventory"
	"bagsync/internal/mockserver"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	srv := httptest.NewServer(mockserver.New().Router())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		Env:            config.EnvLocal,
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		ConfigDir:      dir,
		StatePath:      filepath.Join(dir, "state.json"),
		CachePath:      filepath.Join(dir, "cache.db"),
		ExportDir:      dir,
		RequestTimeout: 5 * time.Second,
		MaxRetries:     1,
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	return app
}

func login(t *testing.T, app *App) inventory.User {
	t.Helper()
	user, err := app.Login(context.Background(), "dana@example.com", "secret")
	require.NoError(t, err)
	return user
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestLoginPersistsSession(t *testing.T) {
	app := newTestApp(t)

	_, ok := app.CurrentUser()
	assert.False(t, ok)

	user := login(t, app)
	assert.Equal(t, 7, user.ID)

	current, ok := app.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.Email, current.Email)

	require.NoError(t, app.Logout())
	_, ok = app.CurrentUser()
	assert.False(t, ok)
}

func TestOwnerScopedOpsRequireLogin(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.ListBags(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = app.CreateBag(ctx, "Rig A", "2024-03-01 09:00:00")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = app.CountBags(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCreateBagGeneratesID(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "2024-03-01 09:00:00")
	require.NoError(t, err)
	assert.NotEmpty(t, bag.ID)
	assert.Equal(t, 7, bag.OwnerUserID)

	fetched, err := app.GetBag(ctx, bag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rig A", fetched.Name)

	bags, err := app.ListBags(ctx)
	require.NoError(t, err)
	require.Len(t, bags, 1)

	count, err := app.CountBags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveItemWithPhoto(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "")
	require.NoError(t, err)

	id, err := app.SaveItem(ctx, inventory.Item{
		Description:      "Harness",
		BagID:            bag.ID,
		InspectionStatus: inventory.StatusPassed,
	}, testJPEG(t))
	require.NoError(t, err)
	require.NotZero(t, id)

	item, err := app.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, item.ImageURL, "/uploads/")
}

func TestSaveItemFailsClosedOnBadPhoto(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "")
	require.NoError(t, err)

	_, err = app.SaveItem(ctx, inventory.Item{
		Description:      "Harness",
		BagID:            bag.ID,
		InspectionStatus: inventory.StatusPassed,
	}, []byte("not an image"))
	require.Error(t, err)

	// The save must not have gone through without its photo.
	items, err := app.ListItems(ctx, bag.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteBagInvalidatesCachedItems(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "")
	require.NoError(t, err)
	_, err = app.SaveItem(ctx, inventory.Item{
		Description:      "Rope",
		BagID:            bag.ID,
		InspectionStatus: inventory.StatusPassed,
	}, nil)
	require.NoError(t, err)

	items, err := app.ListItems(ctx, bag.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	cached, err := app.CachedItems(bag.ID)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	require.NoError(t, app.DeleteBag(ctx, bag.ID))

	cached, err = app.CachedItems(bag.ID)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestExportBag(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "2024-03-01 09:00:00")
	require.NoError(t, err)
	_, err = app.SaveItem(ctx, inventory.Item{
		Description:      "Rope",
		BagID:            bag.ID,
		InspectionStatus: inventory.StatusPassed,
	}, nil)
	require.NoError(t, err)

	path, err := app.ExportBag(ctx, bag.ID, "csv")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `"Bag ID"`))
	assert.Contains(t, string(data), `"Rope"`)

	_, err = app.ExportBag(ctx, bag.ID, "pdf")
	assert.Error(t, err)
}

func TestLabelRoundTrip(t *testing.T) {
	app := newTestApp(t)
	login(t, app)
	ctx := context.Background()

	bag, err := app.CreateBag(ctx, "Rig A", "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "label.png")
	require.NoError(t, app.WriteLabel(bag.ID, path))

	resolved, err := app.ScanLabel(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, bag.ID, resolved.ID)
}
