package domain

import "strings"

// Categories lists the catalog categories the back-office may assign.
var Categories = []string{
	"Rockets",
	"Sparklers",
	"Fountains",
	"Ground Spinners",
	"Aerial Shells",
	"Gift Boxes",
}

// IsCategory reports whether name is one of Categories (case-insensitive).
func IsCategory(name string) bool {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
