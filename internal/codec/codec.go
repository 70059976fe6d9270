// Package codec translates between the in-memory entity model and the wire
// representation of the inventory backend. The wire schema uses snake_case
// field names that must match the server exactly; they are part of the
// contract, not cosmetics.
package codec

import (
	"encoding/json"
	"fmt"

	"bagsync/internal/domain/inventory"
)

// BagWire is the wire form of a Bag.
type BagWire struct {
	ID             string `json:"bag_id"`
	Name           string `json:"bag_name"`
	UserID         int    `json:"user_id"`
	AssignmentDate string `json:"assignment_date,omitempty"`
}

// BagUpdate is the partial schema sent on bag updates. The bag id travels in
// the URL, never in the body, so an update can never alter it.
type BagUpdate struct {
	Name           string `json:"bag_name"`
	AssignmentDate string `json:"assignment_date,omitempty"`
}

// ItemWire is the wire form of an Item.
type ItemWire struct {
	ID                     int    `json:"item_id"`
	Description            string `json:"item_description"`
	ModelName              string `json:"model_name"`
	Brand                  string `json:"brand"`
	Comment                string `json:"comment"`
	SerialNumber           string `json:"serial_number"`
	Condition              string `json:"condition_o"`
	InspectionStatus       int    `json:"inspection_status"`
	InspectionDate         string `json:"inspection_date_1"`
	FollowUpInspectionDate string `json:"follow_up_inspection_date"`
	ExpirationDate         string `json:"expiration_date"`
	BagID                  string `json:"bag_id"`
	ImageURL               string `json:"image_url,omitempty"`
}

// ItemUpdate is the partial schema sent on item updates. It carries every
// mutable field; item_id and bag_id are excluded (path parameter and
// immutable parent, respectively).
type ItemUpdate struct {
	Description            string `json:"item_description"`
	ModelName              string `json:"model_name"`
	Brand                  string `json:"brand"`
	Comment                string `json:"comment"`
	SerialNumber           string `json:"serial_number"`
	Condition              string `json:"condition_o"`
	InspectionStatus       int    `json:"inspection_status"`
	InspectionDate         string `json:"inspection_date_1"`
	FollowUpInspectionDate string `json:"follow_up_inspection_date"`
	ExpirationDate         string `json:"expiration_date"`
	ImageURL               string `json:"image_url,omitempty"`
}

// InspectionWire is the wire form of an InspectionRecord.
type InspectionWire struct {
	ID                 int    `json:"id"`
	ItemID             int    `json:"item_id"`
	Status             int    `json:"status"`
	InspectionDate     string `json:"inspection_date"`
	InspectorName      string `json:"inspector_name"`
	NextInspectionDate string `json:"next_inspection_date,omitempty"`
	Comments           string `json:"comments,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// InspectionCreate is the body of the append-only "create inspection" call.
// The record id and created_at are assigned by the server.
type InspectionCreate struct {
	ItemID             int    `json:"item_id"`
	Status             int    `json:"status"`
	InspectionDate     string `json:"inspection_date"`
	InspectorName      string `json:"inspector_name"`
	NextInspectionDate string `json:"next_inspection_date,omitempty"`
	Comments           string `json:"comments,omitempty"`
}

// UserWire is the wire form of a User.
type UserWire struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ToBag converts the wire form to the entity model.
func (w BagWire) ToBag() inventory.Bag {
	return inventory.Bag{
		ID:             w.ID,
		Name:           w.Name,
		OwnerUserID:    w.UserID,
		AssignmentDate: w.AssignmentDate,
	}
}

// FromBag converts the entity model to the wire form.
func FromBag(b inventory.Bag) BagWire {
	return BagWire{
		ID:             b.ID,
		Name:           b.Name,
		UserID:         b.OwnerUserID,
		AssignmentDate: b.AssignmentDate,
	}
}

// ToItem converts the wire form to the entity model. It fails when the
// inspection status is outside the three known values.
func (w ItemWire) ToItem() (inventory.Item, error) {
	status := inventory.InspectionStatus(w.InspectionStatus)
	if !status.Valid() {
		return inventory.Item{}, fmt.Errorf("invalid inspection status %d", w.InspectionStatus)
	}
	return inventory.Item{
		ID:                     w.ID,
		Description:            w.Description,
		ModelName:              w.ModelName,
		Brand:                  w.Brand,
		Comment:                w.Comment,
		SerialNumber:           w.SerialNumber,
		Condition:              w.Condition,
		InspectionStatus:       status,
		InspectionDate:         w.InspectionDate,
		FollowUpInspectionDate: w.FollowUpInspectionDate,
		ExpirationDate:         w.ExpirationDate,
		BagID:                  w.BagID,
		ImageURL:               w.ImageURL,
	}, nil
}

// FromItem converts the entity model to the wire form.
func FromItem(it inventory.Item) ItemWire {
	return ItemWire{
		ID:                     it.ID,
		Description:            it.Description,
		ModelName:              it.ModelName,
		Brand:                  it.Brand,
		Comment:                it.Comment,
		SerialNumber:           it.SerialNumber,
		Condition:              it.Condition,
		InspectionStatus:       int(it.InspectionStatus),
		InspectionDate:         it.InspectionDate,
		FollowUpInspectionDate: it.FollowUpInspectionDate,
		ExpirationDate:         it.ExpirationDate,
		BagID:                  it.BagID,
		ImageURL:               it.ImageURL,
	}
}

// ToInspection converts the wire form to the entity model, validating the
// status the same way items are validated.
func (w InspectionWire) ToInspection() (inventory.InspectionRecord, error) {
	status := inventory.InspectionStatus(w.Status)
	if !status.Valid() {
		return inventory.InspectionRecord{}, fmt.Errorf("invalid inspection status %d", w.Status)
	}
	return inventory.InspectionRecord{
		ID:                 w.ID,
		ItemID:             w.ItemID,
		Status:             status,
		InspectionDate:     w.InspectionDate,
		InspectorName:      w.InspectorName,
		NextInspectionDate: w.NextInspectionDate,
		Comments:           w.Comments,
		CreatedAt:          w.CreatedAt,
	}, nil
}

// ToUser converts the wire form to the entity model.
func (w UserWire) ToUser() inventory.User {
	return inventory.User{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
	}
}

// FromUser converts the entity model to the wire form.
func FromUser(u inventory.User) UserWire {
	return UserWire{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// EncodeBag serializes a bag into its wire JSON.
func EncodeBag(b inventory.Bag) ([]byte, error) {
	return json.Marshal(FromBag(b))
}

// DecodeBag parses a single wire bag.
func DecodeBag(data []byte) (inventory.Bag, error) {
	var w BagWire
	if err := json.Unmarshal(data, &w); err != nil {
		return inventory.Bag{}, fmt.Errorf("decoding bag: %w", err)
	}
	return w.ToBag(), nil
}

// DecodeBags parses a wire bag list.
func DecodeBags(data []byte) ([]inventory.Bag, error) {
	var ws []BagWire
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decoding bag list: %w", err)
	}
	bags := make([]inventory.Bag, 0, len(ws))
	for _, w := range ws {
		bags = append(bags, w.ToBag())
	}
	return bags, nil
}

// EncodeBagUpdate serializes the mutable subset of a bag for update calls.
func EncodeBagUpdate(b inventory.Bag) ([]byte, error) {
	return json.Marshal(BagUpdate{
		Name:           b.Name,
		AssignmentDate: b.AssignmentDate,
	})
}

// EncodeItem serializes an item into its wire JSON.
func EncodeItem(it inventory.Item) ([]byte, error) {
	return json.Marshal(FromItem(it))
}

// DecodeItem parses a single wire item.
func DecodeItem(data []byte) (inventory.Item, error) {
	var w ItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return inventory.Item{}, fmt.Errorf("decoding item: %w", err)
	}
	return w.ToItem()
}

// DecodeItems parses a wire item list.
func DecodeItems(data []byte) ([]inventory.Item, error) {
	var ws []ItemWire
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decoding item list: %w", err)
	}
	items := make([]inventory.Item, 0, len(ws))
	for _, w := range ws {
		it, err := w.ToItem()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// EncodeItemUpdate serializes the mutable subset of an item for update calls.
func EncodeItemUpdate(it inventory.Item) ([]byte, error) {
	return json.Marshal(ItemUpdate{
		Description:            it.Description,
		ModelName:              it.ModelName,
		Brand:                  it.Brand,
		Comment:                it.Comment,
		SerialNumber:           it.SerialNumber,
		Condition:              it.Condition,
		InspectionStatus:       int(it.InspectionStatus),
		InspectionDate:         it.InspectionDate,
		FollowUpInspectionDate: it.FollowUpInspectionDate,
		ExpirationDate:         it.ExpirationDate,
		ImageURL:               it.ImageURL,
	})
}

// EncodeInspectionCreate serializes the body of a create-inspection call.
func EncodeInspectionCreate(rec inventory.InspectionRecord) ([]byte, error) {
	if !rec.Status.Valid() {
		return nil, fmt.Errorf("invalid inspection status %d", int(rec.Status))
	}
	return json.Marshal(InspectionCreate{
		ItemID:             rec.ItemID,
		Status:             int(rec.Status),
		InspectionDate:     rec.InspectionDate,
		InspectorName:      rec.InspectorName,
		NextInspectionDate: rec.NextInspectionDate,
		Comments:           rec.Comments,
	})
}

// DecodeInspections parses a wire inspection list.
func DecodeInspections(data []byte) ([]inventory.InspectionRecord, error) {
	var ws []InspectionWire
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decoding inspection list: %w", err)
	}
	records := make([]inventory.InspectionRecord, 0, len(ws))
	for _, w := range ws {
		rec, err := w.ToInspection()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeUser parses a wire user (login response).
func DecodeUser(data []byte) (inventory.User, error) {
	var w UserWire
	if err := json.Unmarshal(data, &w); err != nil {
		return inventory.User{}, fmt.Errorf("decoding user: %w", err)
	}
	return w.ToUser(), nil
}
