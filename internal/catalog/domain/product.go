package domain

import "slices"

type Color struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Product is a catalog entry. A zero Price means the price is given on inquiry.
type Product struct {
	ID              int      `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Category        string   `json:"category" yaml:"category"`
	Description     string   `json:"description" yaml:"description"`
	FullDescription string   `json:"fullDescription" yaml:"fullDescription"`
	Price           int64    `json:"price" yaml:"price"`
	PricePerL       string   `json:"pricePerL" yaml:"pricePerL"`
	Features        []string `json:"features" yaml:"features"`
	Colors          []Color  `json:"colors" yaml:"colors"`
	Image           string   `json:"image" yaml:"image"`
	Sizes           []string `json:"sizes" yaml:"sizes"`
	Coverage        string   `json:"coverage" yaml:"coverage"`
	DryTime         string   `json:"dryTime" yaml:"dryTime"`
	MasticeURL      string   `json:"masticeUrl,omitempty" yaml:"masticeUrl"`
}

func (p Product) OffersColor(code string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool { return c.Code == code })
}

func (p Product) ColorName(code string) string {
	for _, c := range p.Colors {
		if c.Code == code {
			return c.Name
		}
	}
	return ""
}

type Filter struct {
	Query    string
	Category string
	Limit    int
	// Cursor is the id of the last product of the previous page; 0 starts at the beginning.
	Cursor int
}
