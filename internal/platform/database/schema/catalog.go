package schema

// CatalogEntityTable represents the 'catalog.entity' table
type CatalogEntityTable struct {
	Table             string
	ID                string
	Kind              string
	Name              string
	LegalName         string
	Country           string
	IPI               string
	Email             string
	Notes             string
	TaxIDSealed       string
	BankAccountSealed string
	CreatedAt         string
	UpdatedAt         string
	DeletedAt         string
}

// CatalogEntity is the schema definition for catalog.entity
var CatalogEntity = CatalogEntityTable{
	Table:             "catalog.entity",
	ID:                "id",
	Kind:              "kind",
	Name:              "name",
	LegalName:         "legalname",
	Country:           "country",
	IPI:               "ipi",
	Email:             "email",
	Notes:             "notes",
	TaxIDSealed:       "taxidsealed",
	BankAccountSealed: "bankaccountsealed",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
	DeletedAt:         "deletedat",
}

// CatalogSongTable represents the 'catalog.song' table
type CatalogSongTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	ArtistID    string
	ReleaseDate string
	Genre       string
	Status      string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogSong is the schema definition for catalog.song
var CatalogSong = CatalogSongTable{
	Table:       "catalog.song",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	ArtistID:    "artistid",
	ReleaseDate: "releasedate",
	Genre:       "genre",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// CatalogWorkTable represents the 'catalog.work' table
type CatalogWorkTable struct {
	Table          string
	ID             string
	SongID         string
	Title          string
	ISWC           string
	AlternateTitle string
	Language       string
	Genre          string
	Notes          string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// CatalogWork is the schema definition for catalog.work
var CatalogWork = CatalogWorkTable{
	Table:          "catalog.work",
	ID:             "id",
	SongID:         "songid",
	Title:          "title",
	ISWC:           "iswc",
	AlternateTitle: "alternatetitle",
	Language:       "language",
	Genre:          "genre",
	Notes:          "notes",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
}

// CatalogRecordingTable represents the 'catalog.recording' table
type CatalogRecordingTable struct {
	Table           string
	ID              string
	WorkID          string
	SongID          string
	Title           string
	ISRC            string
	Version         string
	DurationSeconds string
	RecordedOn      string
	CreatedAt       string
	UpdatedAt       string
	DeletedAt       string
}

// CatalogRecording is the schema definition for catalog.recording
var CatalogRecording = CatalogRecordingTable{
	Table:           "catalog.recording",
	ID:              "id",
	WorkID:          "workid",
	SongID:          "songid",
	Title:           "title",
	ISRC:            "isrc",
	Version:         "version",
	DurationSeconds: "durationseconds",
	RecordedOn:      "recordedon",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	DeletedAt:       "deletedat",
}
