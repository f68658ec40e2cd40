// Package navigation builds the public site menu from the category table.
package navigation

import (
	"sort"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// Item represents a single menu entry.
type Item struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Order int    `json:"order"`
}

// Menu is the ordered list of visible site sections.
type Menu struct {
	Items []Item `json:"items"`
}

// Build assembles the menu from categories. Administrator-only sections
// and sections with a zero order value are hidden; the rest appear in
// display sequence.
func Build(categories []models.Category) *Menu {
	menu := &Menu{Items: make([]Item, 0, len(categories))}

	for _, cat := range categories {
		if cat.Role == models.RoleAdministrator || cat.Order == 0 {
			continue
		}

		menu.Items = append(menu.Items, Item{
			Title: cat.Name,
			Link:  cat.Link,
			Order: cat.Order,
		})
	}

	sort.SliceStable(menu.Items, func(i, j int) bool {
		return menu.Items[i].Order < menu.Items[j].Order
	})

	return menu
}

// Contains reports whether the menu carries an entry with the given link.
func (m *Menu) Contains(link string) bool {
	for _, item := range m.Items {
		if item.Link == link {
			return true
		}
	}

	return false
}
