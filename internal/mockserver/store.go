package mockserver

import (
	"fmt"
	gosync "sync"
	"time"

	"bagsync/internal/codec"
)

const wireTimeLayout = "2006-01-02 15:04:05"

// store is the in-memory state behind the mock backend. All access goes
// through the mutex; handlers never touch the maps directly.
type store struct {
	mu          gosync.RWMutex
	user        codec.UserWire
	bags        map[string]codec.BagWire
	items       map[int]codec.ItemWire
	inspections map[int][]codec.InspectionWire
	uploads     map[string][]byte
	nextItem    int
	nextInsp    int
	nextUpload  int
}

func newStore() *store {
	return &store{
		user: codec.UserWire{
			ID:        7,
			FirstName: "Dana",
			LastName:  "Okafor",
			Email:     "dana@example.com",
		},
		bags:        make(map[string]codec.BagWire),
		items:       make(map[int]codec.ItemWire),
		inspections: make(map[int][]codec.InspectionWire),
		uploads:     make(map[string][]byte),
		nextItem:    1,
		nextInsp:    1,
		nextUpload:  1,
	}
}

func (s *store) putBag(bag codec.BagWire) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bags[bag.ID] = bag
}

func (s *store) getBag(id string) (codec.BagWire, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bag, ok := s.bags[id]
	return bag, ok
}

func (s *store) bagsByOwner(userID int) []codec.BagWire {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []codec.BagWire{}
	for _, bag := range s.bags {
		if bag.UserID == userID {
			out = append(out, bag)
		}
	}
	return out
}

func (s *store) updateBag(id string, upd codec.BagUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bag, ok := s.bags[id]
	if !ok {
		return false
	}
	bag.Name = upd.Name
	bag.AssignmentDate = upd.AssignmentDate
	s.bags[id] = bag
	return true
}

// deleteBag removes the bag and cascades to its items and their histories.
func (s *store) deleteBag(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bags[id]; !ok {
		return false
	}
	delete(s.bags, id)
	for itemID, item := range s.items {
		if item.BagID == id {
			delete(s.items, itemID)
			delete(s.inspections, itemID)
		}
	}
	return true
}

func (s *store) createItem(item codec.ItemWire) codec.ItemWire {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextItem
	s.nextItem++
	s.items[item.ID] = item
	return item
}

func (s *store) getItem(id int) (codec.ItemWire, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *store) itemsByBag(bagID string) []codec.ItemWire {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []codec.ItemWire{}
	for id := 1; id < s.nextItem; id++ {
		if item, ok := s.items[id]; ok && item.BagID == bagID {
			out = append(out, item)
		}
	}
	return out
}

func (s *store) updateItem(id int, upd codec.ItemUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return false
	}
	item.Description = upd.Description
	item.ModelName = upd.ModelName
	item.Brand = upd.Brand
	item.Comment = upd.Comment
	item.SerialNumber = upd.SerialNumber
	item.Condition = upd.Condition
	item.InspectionStatus = upd.InspectionStatus
	item.InspectionDate = upd.InspectionDate
	item.FollowUpInspectionDate = upd.FollowUpInspectionDate
	item.ExpirationDate = upd.ExpirationDate
	item.ImageURL = upd.ImageURL
	s.items[id] = item
	return true
}

func (s *store) deleteItem(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	delete(s.inspections, id)
	return true
}

func (s *store) countBags(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, bag := range s.bags {
		if bag.UserID == userID {
			n++
		}
	}
	return n
}

func (s *store) countItems(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.items {
		if bag, ok := s.bags[item.BagID]; ok && bag.UserID == userID {
			n++
		}
	}
	return n
}

func (s *store) appendInspection(create codec.InspectionCreate) (codec.InspectionWire, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[create.ItemID]; !ok {
		return codec.InspectionWire{}, false
	}

	rec := codec.InspectionWire{
		ID:                 s.nextInsp,
		ItemID:             create.ItemID,
		Status:             create.Status,
		InspectionDate:     create.InspectionDate,
		InspectorName:      create.InspectorName,
		NextInspectionDate: create.NextInspectionDate,
		Comments:           create.Comments,
		CreatedAt:          time.Now().UTC().Format(wireTimeLayout),
	}
	s.nextInsp++
	s.inspections[create.ItemID] = append(s.inspections[create.ItemID], rec)
	return rec, true
}

func (s *store) inspectionsByItem(itemID int) []codec.InspectionWire {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Append-only slice is already in creation order.
	out := make([]codec.InspectionWire, len(s.inspections[itemID]))
	copy(out, s.inspections[itemID])
	return out
}

func (s *store) saveUpload(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("img_%d.jpg", s.nextUpload)
	s.nextUpload++
	s.uploads[name] = data
	return name
}

func (s *store) getUpload(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.uploads[name]
	return data, ok
}
