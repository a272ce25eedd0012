package models

import "github.com/gosimple/slug"

// TagPalette is the fixed set of colors a tag may use.
var TagPalette = []string{
	"#FF0000", "#00FF00", "#0000FF",
	"#FFFF00", "#FF00FF", "#00FFFF",
	"#800080", "#008000", "#800000",
	"#000080", "#FFC0CB",
}

// Tag categorizes recipes. Recipes reference tags but never own them; a tag
// is created and edited by staff only.
type Tag struct {
	ID    uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name  string `json:"name" db:"name" gorm:"type:varchar(200);not null;uniqueIndex"`
	Color string `json:"color" db:"color" gorm:"type:varchar(7);not null;uniqueIndex"`
	Slug  string `json:"slug" db:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// NormalizeSlug lowercases and transliterates a candidate slug the same way
// incoming slugs are stored.
func NormalizeSlug(s string) string {
	return slug.Make(s)
}

// PaletteContains reports whether color is one of the allowed tag colors.
func PaletteContains(color string) bool {
	for _, c := range TagPalette {
		if c == color {
			return true
		}
	}
	return false
}
