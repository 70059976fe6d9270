// Package client wires the synchronization core together for a caller (the
// CLI): configuration, session, sync client, attachment pipeline and the
// local cache.
package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"bagsync/internal/app/client/config"
	"bagsync/internal/attachment"
	"bagsync/internal/domain/inventory"
	"bagsync/internal/export"
	"bagsync/internal/qr"
	"bagsync/internal/session"
	"bagsync/internal/sync"
)

// ErrNotLoggedIn is returned by owner-scoped operations without a session.
var ErrNotLoggedIn = errors.New("not logged in; run: bagsync auth login")

// App is the entry point the presentation layer talks to.
type App struct {
	config      *config.Config
	log         *slog.Logger
	session     *session.Store
	sync        *sync.Client
	attachments *attachment.Pipeline
	cache       *SQLiteCache
}

// New builds the application from configuration. A broken local cache is
// logged and tolerated; everything else is fatal.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	syncClient, err := sync.New(sync.Config{
		BaseURL:    cfg.BaseURL(),
		Timeout:    cfg.RequestTimeout,
		MaxRetries: cfg.MaxRetries,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("initializing sync client: %w", err)
	}

	cache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		log.Warn("local cache unavailable", "error", err)
		cache = nil
	}

	return &App{
		config:      cfg,
		log:         log,
		session:     session.NewStore(cfg.StatePath),
		sync:        syncClient,
		attachments: attachment.NewPipeline(syncClient.HTTPClient(), syncClient.BaseURL(), log),
		cache:       cache,
	}, nil
}

// Close releases local resources.
func (a *App) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("closing cache", "error", err)
		}
	}
}

// Login performs the handshake and stores the issued identity.
func (a *App) Login(ctx context.Context, email, password string) (inventory.User, error) {
	user, err := a.sync.Login(ctx, email, password)
	if err != nil {
		return inventory.User{}, err
	}

	if err := a.session.Set(user); err != nil {
		return inventory.User{}, fmt.Errorf("persisting session: %w", err)
	}

	a.log.Info("logged in", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Logout clears the persisted session.
func (a *App) Logout() error {
	return a.session.Clear()
}

// CurrentUser returns the session identity, if any.
func (a *App) CurrentUser() (inventory.User, bool) {
	return a.session.Current()
}

func (a *App) requireUser() (inventory.User, error) {
	user, ok := a.session.Current()
	if !ok {
		return inventory.User{}, ErrNotLoggedIn
	}
	return user, nil
}

// ListBags fetches the current owner's bags and refreshes the cache.
func (a *App) ListBags(ctx context.Context) ([]inventory.Bag, error) {
	user, err := a.requireUser()
	if err != nil {
		return nil, err
	}

	bags := a.sync.ListBags(ctx, user.ID)
	if a.cache != nil {
		if err := a.cache.PutBags(user.ID, bags); err != nil {
			a.log.Warn("refreshing bag cache", "error", err)
		}
	}
	return bags, nil
}

// CreateBag creates a bag with a freshly generated client-side id owned by
// the current user, and returns it.
func (a *App) CreateBag(ctx context.Context, name, assignmentDate string) (inventory.Bag, error) {
	user, err := a.requireUser()
	if err != nil {
		return inventory.Bag{}, err
	}

	bag := inventory.Bag{
		ID:             uuid.New().String(),
		Name:           name,
		OwnerUserID:    user.ID,
		AssignmentDate: assignmentDate,
	}
	if err := a.sync.CreateBag(ctx, bag); err != nil {
		return inventory.Bag{}, err
	}
	return bag, nil
}

// GetBag fetches a single bag by id.
func (a *App) GetBag(ctx context.Context, id string) (inventory.Bag, error) {
	return a.sync.GetBag(ctx, id)
}

// UpdateBag sends the mutable fields of a bag.
func (a *App) UpdateBag(ctx context.Context, bag inventory.Bag) error {
	return a.sync.UpdateBag(ctx, bag)
}

// DeleteBag removes a bag. The server cascades to the bag's items; the
// cached item list is invalidated on this side.
func (a *App) DeleteBag(ctx context.Context, id string) error {
	if err := a.sync.DeleteBag(ctx, id); err != nil {
		return err
	}
	if a.cache != nil {
		if err := a.cache.InvalidateBag(id); err != nil {
			a.log.Warn("invalidating bag cache", "bag_id", id, "error", err)
		}
	}
	return nil
}

// ResolveScan turns a decoded QR payload into the bag it names. The payload
// is used directly as a lookup key; a malformed scan shows up as a lookup
// miss, not a decode error.
func (a *App) ResolveScan(ctx context.Context, payload string) (inventory.Bag, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return inventory.Bag{}, sync.ErrNotFound
	}
	return a.sync.GetBag(ctx, payload)
}

// ListItems fetches a bag's items and refreshes the cache.
func (a *App) ListItems(ctx context.Context, bagID string) ([]inventory.Item, error) {
	items := a.sync.ListItems(ctx, bagID)
	if a.cache != nil {
		if err := a.cache.PutItems(bagID, items); err != nil {
			a.log.Warn("refreshing item cache", "bag_id", bagID, "error", err)
		}
	}
	return items, nil
}

// CachedBags returns the last known bag list for an owner without touching
// the network.
func (a *App) CachedBags(ownerID int) ([]inventory.Bag, error) {
	if a.cache == nil {
		return nil, nil
	}
	return a.cache.CachedBags(ownerID)
}

// CachedItems returns the last known item list for a bag without touching
// the network.
func (a *App) CachedItems(bagID string) ([]inventory.Item, error) {
	if a.cache == nil {
		return nil, nil
	}
	return a.cache.CachedItems(bagID)
}

// GetItem fetches a single item by id.
func (a *App) GetItem(ctx context.Context, id int) (inventory.Item, error) {
	return a.sync.GetItem(ctx, id)
}

// SaveItem creates or updates an item. When a freshly captured photo is
// supplied it is prepared and uploaded first; if the upload fails the save
// does not proceed and the caller sees attachment.ErrUploadFailed.
func (a *App) SaveItem(ctx context.Context, item inventory.Item, photo []byte) (int, error) {
	if len(photo) > 0 {
		url, err := a.attachments.PrepareAndUpload(ctx, photo)
		if err != nil {
			return 0, err
		}
		item.ImageURL = url
	}

	if item.ID == 0 {
		return a.sync.CreateItem(ctx, item)
	}
	if err := a.sync.UpdateItem(ctx, item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// DeleteItem removes an item and its cached copy.
func (a *App) DeleteItem(ctx context.Context, id int) error {
	if err := a.sync.DeleteItem(ctx, id); err != nil {
		return err
	}
	if a.cache != nil {
		if err := a.cache.InvalidateItem(id); err != nil {
			a.log.Warn("invalidating item cache", "item_id", id, "error", err)
		}
	}
	return nil
}

// CountBags returns the current owner's bag count.
func (a *App) CountBags(ctx context.Context) (int, error) {
	user, err := a.requireUser()
	if err != nil {
		return 0, err
	}
	return a.sync.CountBags(ctx, user.ID)
}

// CountItems returns the current owner's item count.
func (a *App) CountItems(ctx context.Context) (int, error) {
	user, err := a.requireUser()
	if err != nil {
		return 0, err
	}
	return a.sync.CountItems(ctx, user.ID)
}

// ListInspections returns an item's inspection history in creation order.
func (a *App) ListInspections(ctx context.Context, itemID int) ([]inventory.InspectionRecord, error) {
	return a.sync.ListInspections(ctx, itemID)
}

// AddInspection appends a record to an item's history.
func (a *App) AddInspection(ctx context.Context, rec inventory.InspectionRecord) error {
	return a.sync.CreateInspection(ctx, rec)
}

// ExportBag renders a bag and its items into a file under the export dir
// and returns the file path. Format is "csv" or "xlsx".
func (a *App) ExportBag(ctx context.Context, bagID, format string) (string, error) {
	bag, err := a.sync.GetBag(ctx, bagID)
	if err != nil {
		return "", err
	}
	items := a.sync.ListItems(ctx, bagID)

	switch format {
	case "", "csv":
		return export.WriteCSV(a.config.ExportDir, bag, items)
	case "xlsx":
		return export.WriteXLSX(a.config.ExportDir, bag, items)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteLabel renders a bag's QR label as a PNG file.
func (a *App) WriteLabel(bagID, path string) error {
	data, err := qr.EncodePNG(bagID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing label file: %w", err)
	}
	return nil
}

// ScanLabel decodes a QR payload from an image file (the gallery path) and
// resolves it to a bag.
func (a *App) ScanLabel(ctx context.Context, imagePath string) (inventory.Bag, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return inventory.Bag{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	payload, ok := qr.DecodeReader(f)
	if !ok {
		return inventory.Bag{}, fmt.Errorf("no QR code found in %s", imagePath)
	}
	return a.ResolveScan(ctx, payload)
}
