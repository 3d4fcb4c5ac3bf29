package schema

// RightsShareTable represents the 'rights.share' table
type RightsShareTable struct {
	Table           string
	ID              string
	SubjectType     string
	SubjectID       string
	RightType       string
	EntityID        string
	SharePercentage string
	Territory       string
	IsLocked        string
	CreatedAt       string
	UpdatedAt       string
}

// RightsShare is the schema definition for rights.share
var RightsShare = RightsShareTable{
	Table:           "rights.share",
	ID:              "id",
	SubjectType:     "subjecttype",
	SubjectID:       "subjectid",
	RightType:       "righttype",
	EntityID:        "entityid",
	SharePercentage: "sharepercentage",
	Territory:       "territory",
	IsLocked:        "islocked",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// RightsCreditTable represents the 'rights.credit' table
type RightsCreditTable struct {
	Table       string
	ID          string
	SubjectType string
	SubjectID   string
	EntityID    string
	Role        string
	CreditedAs  string
	ShareKind   string
	ShareValue  string
	CreatedAt   string
}

// RightsCredit is the schema definition for rights.credit
var RightsCredit = RightsCreditTable{
	Table:       "rights.credit",
	ID:          "id",
	SubjectType: "subjecttype",
	SubjectID:   "subjectid",
	EntityID:    "entityid",
	Role:        "role",
	CreditedAs:  "creditedas",
	ShareKind:   "sharekind",
	ShareValue:  "sharevalue",
	CreatedAt:   "createdat",
}
