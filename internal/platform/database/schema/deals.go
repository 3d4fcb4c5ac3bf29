package schema

// DealsDealTable represents the 'deals.deal' table
type DealsDealTable struct {
	Table     string
	ID        string
	Kind      string
	EntityID  string
	Title     string
	Status    string
	Territory string
	StartDate string
	EndDate   string
	Platforms string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// DealsDeal is the schema definition for deals.deal
var DealsDeal = DealsDealTable{
	Table:     "deals.deal",
	ID:        "id",
	Kind:      "kind",
	EntityID:  "entityid",
	Title:     "title",
	Status:    "status",
	Territory: "territory",
	StartDate: "startdate",
	EndDate:   "enddate",
	Platforms: "platforms",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// DealsRevenueShareTable represents the 'deals.revenueshare' table
type DealsRevenueShareTable struct {
	Table          string
	ID             string
	DealID         string
	Label          string
	PartyEntityID  string
	RatePercentage string
	EffectiveFrom  string
	EffectiveTo    string
	CreatedAt      string
}

// DealsRevenueShare is the schema definition for deals.revenueshare
var DealsRevenueShare = DealsRevenueShareTable{
	Table:          "deals.revenueshare",
	ID:             "id",
	DealID:         "dealid",
	Label:          "label",
	PartyEntityID:  "partyentityid",
	RatePercentage: "ratepercentage",
	EffectiveFrom:  "effectivefrom",
	EffectiveTo:    "effectiveto",
	CreatedAt:      "createdat",
}

// DealsDeliverableTable represents the 'deals.deliverable' table
type DealsDeliverableTable struct {
	Table     string
	ID        string
	DealID    string
	Name      string
	Kind      string
	DueDate   string
	Status    string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// DealsDeliverable is the schema definition for deals.deliverable
var DealsDeliverable = DealsDeliverableTable{
	Table:     "deals.deliverable",
	ID:        "id",
	DealID:    "dealid",
	Name:      "name",
	Kind:      "kind",
	DueDate:   "duedate",
	Status:    "status",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// DealsDeliverablePackTable represents the 'deals.deliverablepack' table
type DealsDeliverablePackTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
}

// DealsDeliverablePack is the schema definition for deals.deliverablepack
var DealsDeliverablePack = DealsDeliverablePackTable{
	Table:       "deals.deliverablepack",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
}

// DealsDeliverablePackItemTable represents the 'deals.deliverablepackitem' table
type DealsDeliverablePackItemTable struct {
	Table         string
	ID            string
	PackID        string
	Position      string
	Name          string
	Kind          string
	DueOffsetDays string
	Notes         string
}

// DealsDeliverablePackItem is the schema definition for deals.deliverablepackitem
var DealsDeliverablePackItem = DealsDeliverablePackItemTable{
	Table:         "deals.deliverablepackitem",
	ID:            "id",
	PackID:        "packid",
	Position:      "position",
	Name:          "name",
	Kind:          "kind",
	DueOffsetDays: "dueoffsetdays",
	Notes:         "notes",
}
