package schema

// CatalogGenreTitleTable represents the 'catalog.genretitle' join table
type CatalogGenreTitleTable struct {
	Table   string
	ID      string
	TitleID string
	GenreID string
}

// CatalogGenreTitle is the schema definition for catalog.genretitle
var CatalogGenreTitle = CatalogGenreTitleTable{
	Table:   "catalog.genretitle",
	ID:      "id",
	TitleID: "titleid",
	GenreID: "genreid",
}
