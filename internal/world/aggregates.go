package world

import "sort"

// aggregates holds the derived hierarchy-level statistics. They are
// computed once, on first query, over the immutable province snapshot.
type aggregates struct {
	areaDev map[string]float64

	regionReligion      map[string]string
	regionCulture       map[string]string
	superregionReligion map[string]string
	superregionCulture  map[string]string

	countryOwnedDev      map[string]float64
	countryControlledDev map[string]float64

	maxDev float64
}

// vote accumulates a development-weighted tally for one candidate. The
// lowest contributing province id is kept so ties break deterministically
// regardless of map iteration order.
type vote struct {
	weight   float64
	lowestID int
}

type tally map[string]*vote

func (t tally) add(candidate string, weight float64, provinceID int) {
	if candidate == "" || weight <= 0 {
		return
	}
	v := t[candidate]
	if v == nil {
		t[candidate] = &vote{weight: weight, lowestID: provinceID}
		return
	}
	v.weight += weight
	if provinceID < v.lowestID {
		v.lowestID = provinceID
	}
}

// winner picks the candidate with the highest weight; ties go to the
// candidate whose lowest contributing province id is smallest.
func (t tally) winner() string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	for _, name := range names {
		v := t[name]
		if best == "" {
			best = name
			continue
		}
		b := t[best]
		if v.weight > b.weight || (v.weight == b.weight && v.lowestID < b.lowestID) {
			best = name
		}
	}
	return best
}

func (w *World) aggregates() *aggregates {
	w.aggOnce.Do(w.computeAggregates)
	return w.agg
}

func (w *World) computeAggregates() {
	agg := &aggregates{
		areaDev:              make(map[string]float64),
		regionReligion:       make(map[string]string),
		regionCulture:        make(map[string]string),
		superregionReligion:  make(map[string]string),
		superregionCulture:   make(map[string]string),
		countryOwnedDev:      make(map[string]float64),
		countryControlledDev: make(map[string]float64),
	}

	regionReligion := make(map[string]tally)
	regionCulture := make(map[string]tally)
	superregionReligion := make(map[string]tally)
	superregionCulture := make(map[string]tally)

	for id, p := range w.Provinces {
		dev := p.Development()

		if p.Type != ProvinceWasteland && dev > agg.maxDev {
			agg.maxDev = dev
		}
		if p.Owner != "" {
			agg.countryOwnedDev[p.Owner] += dev
		}
		if p.Controller != "" {
			agg.countryControlledDev[p.Controller] += dev
		} else if p.Owner != "" {
			agg.countryControlledDev[p.Owner] += dev
		}

		area, ok := w.hierArea(id)
		if !ok {
			continue
		}
		agg.areaDev[area] += dev

		if !p.IsLand() {
			continue
		}

		region, ok := w.hier.RegionOf(area)
		if !ok {
			continue
		}
		voteInto(regionReligion, region, p.Religion, dev, id)
		voteInto(regionCulture, region, p.Culture, dev, id)

		superregion, ok := w.hier.SuperregionOf(region)
		if !ok {
			continue
		}
		voteInto(superregionReligion, superregion, p.Religion, dev, id)
		voteInto(superregionCulture, superregion, p.Culture, dev, id)
	}

	for region, t := range regionReligion {
		agg.regionReligion[region] = t.winner()
	}
	for region, t := range regionCulture {
		agg.regionCulture[region] = t.winner()
	}
	for sr, t := range superregionReligion {
		agg.superregionReligion[sr] = t.winner()
	}
	for sr, t := range superregionCulture {
		agg.superregionCulture[sr] = t.winner()
	}

	w.agg = agg
}

func (w *World) hierArea(provinceID int) (string, bool) {
	if w.hier == nil {
		return "", false
	}
	return w.hier.AreaOf(provinceID)
}

func voteInto(tallies map[string]tally, group, candidate string, weight float64, provinceID int) {
	t := tallies[group]
	if t == nil {
		t = make(tally)
		tallies[group] = t
	}
	t.add(candidate, weight, provinceID)
}

// AreaDevelopment is the summed development of the area's provinces.
func (w *World) AreaDevelopment(areaID string) float64 {
	return w.aggregates().areaDev[areaID]
}

// RegionDominantReligion is the region's development-weighted majority
// religion; ties break on the lowest province id among the tied group.
func (w *World) RegionDominantReligion(regionID string) string {
	return w.aggregates().regionReligion[regionID]
}

// RegionDominantCulture is the region's development-weighted majority
// culture.
func (w *World) RegionDominantCulture(regionID string) string {
	return w.aggregates().regionCulture[regionID]
}

// SuperregionDominantReligion is the superregion's development-weighted
// majority religion.
func (w *World) SuperregionDominantReligion(superregionID string) string {
	return w.aggregates().superregionReligion[superregionID]
}

// SuperregionDominantCulture is the superregion's development-weighted
// majority culture.
func (w *World) SuperregionDominantCulture(superregionID string) string {
	return w.aggregates().superregionCulture[superregionID]
}

// CountryOwnedDevelopment is the summed development of the tag's owned
// provinces.
func (w *World) CountryOwnedDevelopment(tag string) float64 {
	return w.aggregates().countryOwnedDev[tag]
}

// CountryControlledDevelopment is the summed development of the provinces
// the tag currently controls, occupations included.
func (w *World) CountryControlledDevelopment(tag string) float64 {
	return w.aggregates().countryControlledDev[tag]
}

// MaxDevelopment is the highest development observed among non-wasteland
// provinces.
func (w *World) MaxDevelopment() float64 {
	return w.aggregates().maxDev
}
