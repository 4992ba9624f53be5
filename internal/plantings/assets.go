package plantings

import (
	_ "embed"
)

// LayoutName is the name the layout template is registered under
const LayoutName = "layout_page"

// UppercaseHelper is the name of the uppercase helper
const UppercaseHelper = "uppercase"

// Layout is the page frame template.
//
//go:embed templates/layout.hbs
var Layout string

// Content is the plantings list template.
//
//go:embed templates/plantings_list.hbs
var Content string

// Plants returns the 2020 plantings in planting order
func Plants() []string {
	return []string{
		"green beans",
		"tomatoes",
		"peas",
		"zucchini",
		"peppers",
		"cucumbers",
		"soy beans",
		"corn",
		"melons",
	}
}

// Payload returns the data the content template is rendered against
func Payload() map[string]interface{} {
	return map[string]interface{}{
		"plants": Plants(),
	}
}
