package inventory

// InspectionRecord is one append-only entry in an item's inspection history.
// Records are created through a dedicated call and never updated or deleted
// by this client.
type InspectionRecord struct {
	ID                 int
	ItemID             int
	Status             InspectionStatus
	InspectionDate     string
	InspectorName      string
	NextInspectionDate string
	Comments           string
	CreatedAt          string
}

// User is the authenticated identity issued by the backend at login.
// It is immutable for the process lifetime and held by the session store.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}
