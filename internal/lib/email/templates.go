package email

// Template names an HTML file under templates/, without the extension.
type Template string

const (
	TemplateCatalogChange Template = "catalog_change"
)
