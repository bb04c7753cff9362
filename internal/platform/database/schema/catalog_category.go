package schema

// CatalogCategoryTable represents the 'catalog.category' table
type CatalogCategoryTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogCategoryTable{
	Table: "catalog.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t CatalogCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
