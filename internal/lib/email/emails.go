package email

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CatalogChange describes one create, update or delete of an actor or movie.
type CatalogChange struct {
	Entity     string
	Action     string
	ID         int
	Label      string
	OccurredAt time.Time
}

// Subject is the email subject for the change, e.g. "Movie #4 updated".
func (c CatalogChange) Subject() string {
	entity := cases.Title(language.English).String(c.Entity)
	return fmt.Sprintf("%s #%d %s", entity, c.ID, c.Action)
}

// SendCatalogChangeEmail notifies to about a catalog change.
func (c *Client) SendCatalogChangeEmail(ctx context.Context, to string, change CatalogChange) error {
	return c.SendEmail(ctx, to, change.Subject(), TemplateCatalogChange, change)
}
