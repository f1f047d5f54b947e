package nlp

import (
	"regexp"
	"strings"
)

type Entities struct {
	Locations     []string `json:"locations"`
	Prices        []string `json:"prices"`
	Areas         []string `json:"areas"`
	PropertyTypes []string `json:"propertyTypes"`
}

var (
	locationRe = regexp.MustCompile(`في ([\x{0600}-\x{06FF}\s]+?)[\s،.]`)
	priceRe    = regexp.MustCompile(`(\d[\d,.]*)\s*(ريال|الف|مليون|دينار|جنيه|درهم)`)
	areaRe     = regexp.MustCompile(`(\d[\d,.]*)\s*(متر مربع|م2|م٢|متر²)`)
)

var propertyTypeTerms = []string{"شقة", "فيلا", "أرض", "عمارة", "محل", "مكتب", "استديو", "دور", "منزل", "قصر"}

// ExtractEntities pulls locations, prices, areas and property types out
// of Arabic real-estate text with pattern heuristics. No model call.
func ExtractEntities(text string) Entities {
	entities := Entities{
		Locations:     []string{},
		Prices:        []string{},
		Areas:         []string{},
		PropertyTypes: []string{},
	}

	// Pad so a trailing location still terminates the match.
	for _, m := range locationRe.FindAllStringSubmatch(text+" ", -1) {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			entities.Locations = append(entities.Locations, loc)
		}
	}

	for _, m := range priceRe.FindAllString(text, -1) {
		entities.Prices = append(entities.Prices, strings.TrimSpace(m))
	}

	for _, m := range areaRe.FindAllString(text, -1) {
		entities.Areas = append(entities.Areas, strings.TrimSpace(m))
	}

	for _, term := range propertyTypeTerms {
		if strings.Contains(text, term) {
			entities.PropertyTypes = append(entities.PropertyTypes, term)
		}
	}

	return entities
}
