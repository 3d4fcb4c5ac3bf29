package schema

// ContractsTermsDraftTable represents the 'contracts.termsdraft' table
type ContractsTermsDraftTable struct {
	Table         string
	DealID        string
	DurationYears string
	Enabled       string
	Rates         string
	Version       string
	UpdatedBy     string
	UpdatedAt     string
}

// ContractsTermsDraft is the schema definition for contracts.termsdraft
var ContractsTermsDraft = ContractsTermsDraftTable{
	Table:         "contracts.termsdraft",
	DealID:        "dealid",
	DurationYears: "durationyears",
	Enabled:       "enabled",
	Rates:         "rates",
	Version:       "version",
	UpdatedBy:     "updatedby",
	UpdatedAt:     "updatedat",
}

// ContractsTemplateTable represents the 'contracts.template' table
type ContractsTemplateTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	Kind      string
	Body      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// ContractsTemplate is the schema definition for contracts.template
var ContractsTemplate = ContractsTemplateTable{
	Table:     "contracts.template",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	Kind:      "kind",
	Body:      "body",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}
