package tracker

import (
	"cmp"
	"fmt"
	"slices"
)

// Dimension is a grouping of weights.
type Dimension int

const (
	ByAsset Dimension = iota
	ByCountry
	ByIndustry
	ByCountryIndustry
)

func (d Dimension) String() string {
	switch d {
	case ByAsset:
		return "asset"
	case ByCountry:
		return "country"
	case ByIndustry:
		return "industry"
	case ByCountryIndustry:
		return "country and industry"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Share is the weight of a group.
type Share struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// CountryShare is the weight of a country, broken down by industry.
type CountryShare struct {
	Share
	Industries []Share `json:"industries"`
}

// Allocation breaks weights down along every Dimension. Groups are sorted by
// ascending weight.
//
// A ticker whose country or industry is unknown is excluded from the
// dimensions that need it, their Total is then less than 1.
type Allocation struct {
	Assets            []Share        `json:"assets"`
	Countries         []Share        `json:"countries"`
	Industries        []Share        `json:"industries"`
	CountryIndustries []CountryShare `json:"country_industries"`
}

// NewAllocation groups the weights of the holdings of p.
// Assets with equal weights keep the portfolio order.
func NewAllocation(p Portfolio, weights Weights, profiles map[string]Profile) *Allocation {
	a := &Allocation{Assets: make([]Share, 0, len(p))}
	countries := make(map[string]float64)
	industries := make(map[string]float64)
	combined := make(map[string]map[string]float64)

	for _, h := range p {
		w := weights[h.Ticker]
		a.Assets = append(a.Assets, Share{Label: h.Ticker, Weight: w})

		prof := profiles[h.Ticker]
		if prof.Country != "" {
			countries[prof.Country] += w
		}
		if prof.Industry != "" {
			industries[prof.Industry] += w
		}
		if prof.Country != "" && prof.Industry != "" {
			if combined[prof.Country] == nil {
				combined[prof.Country] = make(map[string]float64)
			}
			combined[prof.Country][prof.Industry] += w
		}
	}
	slices.SortStableFunc(a.Assets, byWeight)
	a.Countries = shares(countries)
	a.Industries = shares(industries)

	for country, inds := range combined {
		cs := CountryShare{Share: Share{Label: country}, Industries: shares(inds)}
		for _, s := range cs.Industries {
			cs.Weight += s.Weight
		}
		a.CountryIndustries = append(a.CountryIndustries, cs)
	}
	slices.SortFunc(a.CountryIndustries, func(x, y CountryShare) int {
		return cmp.Or(byWeight(x.Share, y.Share), cmp.Compare(x.Label, y.Label))
	})
	return a
}

// shares returns the groups sorted by weight, then label.
func shares(groups map[string]float64) []Share {
	s := make([]Share, 0, len(groups))
	for label, w := range groups {
		s = append(s, Share{Label: label, Weight: w})
	}
	slices.SortFunc(s, func(x, y Share) int {
		return cmp.Or(byWeight(x, y), cmp.Compare(x.Label, y.Label))
	})
	return s
}

func byWeight(x, y Share) int { return cmp.Compare(x.Weight, y.Weight) }

// Total returns the sum of the weights grouped in dimension d.
func (a *Allocation) Total(d Dimension) float64 {
	var groups []Share
	switch d {
	case ByAsset:
		groups = a.Assets
	case ByCountry:
		groups = a.Countries
	case ByIndustry:
		groups = a.Industries
	case ByCountryIndustry:
		for _, c := range a.CountryIndustries {
			groups = append(groups, c.Share)
		}
	}
	var total float64
	for _, s := range groups {
		total += s.Weight
	}
	return total
}
