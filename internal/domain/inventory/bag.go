package inventory

// Bag is a container record representing one assignee's equipment set.
// The ID is generated on the client before the first create call and is
// immutable afterwards: it is the value printed into the bag's QR label.
type Bag struct {
	ID             string
	Name           string
	OwnerUserID    int
	AssignmentDate string
}

// Item is a single tracked piece of equipment belonging to exactly one Bag.
// ID is server-assigned; zero means "not yet created on the server".
type Item struct {
	ID                     int
	Description            string
	ModelName              string
	Brand                  string
	Comment                string
	SerialNumber           string
	Condition              string
	InspectionStatus       InspectionStatus
	InspectionDate         string
	FollowUpInspectionDate string
	ExpirationDate         string
	BagID                  string
	ImageURL               string
}
