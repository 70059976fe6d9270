// Package sync issues the CRUD operations of the inventory backend: one
// request/response per call, no batching, no pagination, no read cache.
// Timeouts and a deliberate retry policy for idempotent reads live here;
// response validation is by HTTP status.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/slog"

	"bagsync/internal/codec"
	"bagsync/internal/domain/inventory"
)

// Kind names an entity class for kind-dispatched operations.
type Kind string

const (
	KindBag  Kind = "bag"
	KindItem Kind = "item"
)

const defaultTimeout = 30 * time.Second

// Config carries the client's endpoint and policy knobs.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

// Client is the REST operation layer mediating all entity reads and writes.
type Client struct {
	client     *http.Client
	log        *slog.Logger
	baseURL    string
	maxRetries uint64
	inflight   *inflight
	userAgent  string
}

// New builds a client against the configured base URL.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &EndpointError{Path: cfg.BaseURL, Err: errors.New("base URL must be absolute")}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:        log,
		baseURL:    base.String(),
		maxRetries: cfg.MaxRetries,
		inflight:   newInflight(),
		userAgent:  "bagsync-client/1.0",
	}, nil
}

// HTTPClient exposes the underlying transport so collaborators (the
// attachment pipeline) share the same timeout policy.
func (c *Client) HTTPClient() *http.Client { return c.client }

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

// Login performs the authentication handshake and returns the user identity
// issued by the backend.
func (c *Client) Login(ctx context.Context, email, password string) (inventory.User, error) {
	body, err := json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password})
	if err != nil {
		return inventory.User{}, &EncodeError{Err: err}
	}

	data, err := c.send(ctx, http.MethodPost, body, http.StatusOK, "login")
	if err != nil {
		return inventory.User{}, err
	}

	user, err := codec.DecodeUser(data)
	if err != nil {
		return inventory.User{}, &DecodeError{Err: err}
	}
	return user, nil
}

// ListBags returns the bags owned by the given user. By original design a
// transport or decode failure degrades to an empty list rather than an
// error; a warning is logged so the ambiguity is at least observable.
func (c *Client) ListBags(ctx context.Context, ownerID int) []inventory.Bag {
	data, err := c.get(ctx, "bags", strconv.Itoa(ownerID))
	if err != nil {
		c.log.Warn("bag list degraded to empty", "owner_id", ownerID, "error", err)
		return []inventory.Bag{}
	}

	bags, err := codec.DecodeBags(data)
	if err != nil {
		c.log.Warn("malformed bag list degraded to empty", "owner_id", ownerID, "error", err)
		return []inventory.Bag{}
	}
	return bags
}

// ListItems returns the items in the given bag, degrading to empty the same
// way ListBags does.
func (c *Client) ListItems(ctx context.Context, bagID string) []inventory.Item {
	data, err := c.get(ctx, "items_by_bag_id", bagID)
	if err != nil {
		c.log.Warn("item list degraded to empty", "bag_id", bagID, "error", err)
		return []inventory.Item{}
	}

	items, err := codec.DecodeItems(data)
	if err != nil {
		c.log.Warn("malformed item list degraded to empty", "bag_id", bagID, "error", err)
		return []inventory.Item{}
	}
	return items
}

// GetBag fetches a single bag by id. This is the lookup behind a scanned QR
// payload: a malformed scan surfaces here as ErrNotFound.
func (c *Client) GetBag(ctx context.Context, id string) (inventory.Bag, error) {
	data, err := c.get(ctx, "bags", id)
	if err != nil {
		return inventory.Bag{}, err
	}

	bag, err := codec.DecodeBag(data)
	if err != nil {
		return inventory.Bag{}, &DecodeError{Err: err}
	}
	return bag, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id int) (inventory.Item, error) {
	data, err := c.get(ctx, "items", strconv.Itoa(id))
	if err != nil {
		return inventory.Item{}, err
	}

	item, err := codec.DecodeItem(data)
	if err != nil {
		return inventory.Item{}, &DecodeError{Err: err}
	}
	return item, nil
}

// CreateBag persists a bag whose id was generated on the client. The server
// must accept and keep the client-supplied id.
func (c *Client) CreateBag(ctx context.Context, bag inventory.Bag) error {
	if !c.inflight.begin(string(KindBag), bag.ID, "create") {
		return ErrInFlight
	}
	defer c.inflight.end(string(KindBag), bag.ID, "create")

	body, err := codec.EncodeBag(bag)
	if err != nil {
		return &EncodeError{Err: err}
	}

	_, err = c.send(ctx, http.MethodPost, body, http.StatusOK, "bags")
	return err
}

// CreateItem persists a new item (id zero) and returns the server-assigned
// id from the response.
func (c *Client) CreateItem(ctx context.Context, item inventory.Item) (int, error) {
	if !c.inflight.begin(string(KindItem), strconv.Itoa(item.ID), "create") {
		return 0, ErrInFlight
	}
	defer c.inflight.end(string(KindItem), strconv.Itoa(item.ID), "create")

	body, err := codec.EncodeItem(item)
	if err != nil {
		return 0, &EncodeError{Err: err}
	}

	data, err := c.send(ctx, http.MethodPost, body, http.StatusOK, "items")
	if err != nil {
		return 0, err
	}

	created, err := codec.DecodeItem(data)
	if err != nil {
		return 0, &DecodeError{Err: err}
	}
	return created.ID, nil
}

// UpdateBag sends the mutable subset of a bag. The id travels in the URL
// only, so the update can never alter it.
func (c *Client) UpdateBag(ctx context.Context, bag inventory.Bag) error {
	if !c.inflight.begin(string(KindBag), bag.ID, "update") {
		return ErrInFlight
	}
	defer c.inflight.end(string(KindBag), bag.ID, "update")

	body, err := codec.EncodeBagUpdate(bag)
	if err != nil {
		return &EncodeError{Err: err}
	}

	_, err = c.send(ctx, http.MethodPut, body, http.StatusOK, "bags", bag.ID)
	return err
}

// UpdateItem sends the mutable subset of an item.
func (c *Client) UpdateItem(ctx context.Context, item inventory.Item) error {
	id := strconv.Itoa(item.ID)
	if !c.inflight.begin(string(KindItem), id, "update") {
		return ErrInFlight
	}
	defer c.inflight.end(string(KindItem), id, "update")

	body, err := codec.EncodeItemUpdate(item)
	if err != nil {
		return &EncodeError{Err: err}
	}

	_, err = c.send(ctx, http.MethodPut, body, http.StatusOK, "items", id)
	return err
}

// DeleteBag removes a bag. The server cascades the delete to the bag's
// items; callers must treat any cached item list for the bag as invalid.
func (c *Client) DeleteBag(ctx context.Context, id string) error {
	if !c.inflight.begin(string(KindBag), id, "delete") {
		return ErrInFlight
	}
	defer c.inflight.end(string(KindBag), id, "delete")

	_, err := c.send(ctx, http.MethodDelete, nil, http.StatusOK, "bags", id)
	return err
}

// DeleteItem removes an item by id.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	key := strconv.Itoa(id)
	if !c.inflight.begin(string(KindItem), key, "delete") {
		return ErrInFlight
	}
	defer c.inflight.end(string(KindItem), key, "delete")

	_, err := c.send(ctx, http.MethodDelete, nil, http.StatusOK, "items", key)
	return err
}

// Delete removes an entity by kind and id.
func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	switch kind {
	case KindBag:
		return c.DeleteBag(ctx, id)
	case KindItem:
		itemID, err := strconv.Atoi(id)
		if err != nil {
			return &EndpointError{Path: id, Err: err}
		}
		return c.DeleteItem(ctx, itemID)
	default:
		return &EndpointError{Path: string(kind), Err: errors.New("unknown entity kind")}
	}
}

// CountBags returns the number of bags owned by the given user.
func (c *Client) CountBags(ctx context.Context, ownerID int) (int, error) {
	return c.count(ctx, "bags", ownerID)
}

// CountItems returns the number of items owned by the given user.
func (c *Client) CountItems(ctx context.Context, ownerID int) (int, error) {
	return c.count(ctx, "items", ownerID)
}

func (c *Client) count(ctx context.Context, resource string, ownerID int) (int, error) {
	data, err := c.get(ctx, resource, "count", strconv.Itoa(ownerID))
	if err != nil {
		return 0, err
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, &DecodeError{Err: err}
	}
	return resp.Count, nil
}

// ListInspections returns the time-ordered inspection history of an item.
// Unlike the bag/item list calls this surfaces failures to the caller.
func (c *Client) ListInspections(ctx context.Context, itemID int) ([]inventory.InspectionRecord, error) {
	data, err := c.get(ctx, "items", strconv.Itoa(itemID), "inspections")
	if err != nil {
		return nil, err
	}

	records, err := codec.DecodeInspections(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return records, nil
}

// CreateInspection appends a record to an item's inspection history. The
// server answers 201 on success.
func (c *Client) CreateInspection(ctx context.Context, rec inventory.InspectionRecord) error {
	key := strconv.Itoa(rec.ItemID)
	if !c.inflight.begin("inspection", key, "create") {
		return ErrInFlight
	}
	defer c.inflight.end("inspection", key, "create")

	body, err := codec.EncodeInspectionCreate(rec)
	if err != nil {
		return &EncodeError{Err: err}
	}

	_, err = c.send(ctx, http.MethodPost, body, http.StatusCreated, "items", key, "inspections")
	return err
}

// get performs an idempotent read, retrying transport failures with
// exponential backoff up to the configured attempt limit.
func (c *Client) get(ctx context.Context, parts ...string) ([]byte, error) {
	var data []byte
	op := func() error {
		var err error
		data, err = c.send(ctx, http.MethodGet, nil, http.StatusOK, parts...)
		if err != nil {
			var transport *TransportError
			if errors.As(err, &transport) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return data, nil
}

// send issues one request and validates the response status. 404 maps to
// ErrNotFound; any other mismatch is a ServerError.
func (c *Client) send(ctx context.Context, method string, body []byte, wantStatus int, parts ...string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return nil, &EndpointError{Path: c.baseURL, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &EndpointError{Path: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != wantStatus:
		return nil, &ServerError{Status: resp.StatusCode}
	}

	return data, nil
}
