package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"vinfreak-api/internal/car"
	"vinfreak-api/internal/util"

	"gorm.io/datatypes"
)

var (
	leadingYearRe = regexp.MustCompile(`^\s*(\d{4})\b`)
	stateParenRe  = regexp.MustCompile(`\(([A-Z]{2})\)`)
	stateWordRe   = regexp.MustCompile(`\b([A-Z]{2})\b`)
)

// normalizeRecord flattens one heterogeneous scraped object into a car row.
// Recoverable oddities (missing fields, unparseable numbers) become absent
// values, never errors.
func normalizeRecord(rec RawRecord) car.Car {
	c := car.Car{}

	c.VIN = strField(rec, "vin")
	c.Make = strField(rec, "carMark", "make")
	c.Model = strField(rec, "model")
	c.Trim = strField(rec, "trim")
	c.Title = strField(rec, "title")
	c.Description = strField(rec, "description")
	c.URL = strField(rec, "url")

	c.Year = intField(rec, "year")
	if c.Year == nil && c.Title != nil {
		c.Year = parseYearFromTitle(*c.Title)
	}
	c.Mileage = intField(rec, "mileage")

	if offer, ok := rec["offer"].(map[string]any); ok {
		c.Price = looseFloat(offer["price"])
		c.Currency = looseString(offer["currency"])
	}
	if c.Price == nil {
		c.Price = floatField(rec, "price")
	}
	if c.Currency == nil {
		c.Currency = strField(rec, "currency")
	}

	var address *string
	if loc, ok := rec["location"].(map[string]any); ok {
		address = looseString(loc["address"])
		c.LocationURL = looseString(loc["url"])
	}
	c.LocationAddress = address
	c.City = strField(rec, "city")
	if c.City == nil {
		c.City = parseCity(address)
	}
	c.State = strField(rec, "state")
	if c.State == nil {
		c.State = parseState(strField(rec, "status"), address)
	}

	c.Transmission = mapTransmission(strField(rec, "transmission"))
	c.Drivetrain = mapDrivetrain(strField(rec, "drivetrain"))
	c.ExteriorColor = strField(rec, "exteriorColor", "exterior_color")
	c.InteriorColor = strField(rec, "interiorColor", "interior_color")
	// some sources ship the misspelled bodyStayle key
	c.BodyType = strField(rec, "bodyStyle", "bodyStayle", "body_type")
	c.FuelType = strField(rec, "fuelType", "fuel_type")
	c.Engine = strField(rec, "engine")

	c.AuctionStatus = strField(rec, "auctionStatus", "auction_status", "status")
	c.LotNumber = strField(rec, "lotNumber", "lot_number")
	c.EndTime = strField(rec, "endTime", "end_time")
	c.TimeLeft = strField(rec, "timeLeft", "time_left")
	c.NumberOfViews = intField(rec, "numberOfViews", "number_of_views")
	c.NumberOfBids = intField(rec, "numberOfBids", "number_of_bids")

	c.Highlights = strField(rec, "highlights")
	if c.Highlights == nil {
		c.Highlights = joinListField(rec, "highlightsList")
	}
	c.Equipment = strField(rec, "equipment")
	if c.Equipment == nil {
		c.Equipment = joinListField(rec, "equipmentList")
	}
	c.Modifications = joinListField(rec, "modificationsList")
	c.KnownFlaws = joinListField(rec, "knownFlowsList", "knownFlawsList")
	c.ServiceHistory = joinListField(rec, "serviceHistoryList")
	c.OwnershipHistory = strField(rec, "ownershipHistory")
	c.SellerNotes = strField(rec, "sellerNotes")
	c.OtherItems = strField(rec, "otherItems")
	c.SellerType = strField(rec, "sellerType", "seller_type")

	if seller, ok := rec["seller"].(map[string]any); ok {
		c.SellerName = looseString(seller["name"])
		c.SellerURL = looseString(seller["url"])
		c.SellerRating = looseFloat(seller["rating"])
		c.SellerReviews = looseInt(seller["reviews"])
	}
	if c.SellerName == nil {
		c.SellerName = strField(rec, "seller_name")
	}

	c.PostedAt = strField(rec, "posted_at", "postedAt")
	c.Source = strField(rec, "source")
	if c.Source == nil {
		src := "json_import"
		c.Source = &src
	}

	hero, gallery := normalizeImages(imageList(rec))
	if hero != nil {
		c.ImageURL = hero
	} else {
		c.ImageURL = strField(rec, "image_url", "imageUrl")
	}
	c.ImagesJSON = gallery

	return c
}

// normalizeImages dedupes preserving first-seen order: the first unique URL
// is the hero, the rest become the gallery. With fewer than two uniques the
// gallery stays absent, not an empty array.
func normalizeImages(images []string) (hero *string, gallery datatypes.JSON) {
	seen := map[string]bool{}
	uniques := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		uniques = append(uniques, img)
	}

	if len(uniques) == 0 {
		return nil, nil
	}
	hero = &uniques[0]
	if len(uniques) < 2 {
		return hero, nil
	}

	b, err := json.Marshal(uniques[1:])
	if err != nil {
		return hero, nil
	}
	return hero, datatypes.JSON(b)
}

func imageList(rec RawRecord) []string {
	raw, ok := rec["images"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseYearFromTitle(title string) *int {
	m := leadingYearRe.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	return util.ParseLooseInt(m[1])
}

func parseCity(address *string) *string {
	if address == nil {
		return nil
	}
	parts := strings.Split(*address, ",")
	city := strings.TrimSpace(parts[0])
	if city == "" {
		return nil
	}
	return &city
}

func parseState(status, address *string) *string {
	if status != nil {
		if m := stateParenRe.FindStringSubmatch(*status); m != nil {
			return &m[1]
		}
	}
	if address != nil {
		if m := stateWordRe.FindStringSubmatch(*address); m != nil {
			return &m[1]
		}
	}
	return nil
}

func mapDrivetrain(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	var out string
	switch {
	case strings.Contains(v, "rear"):
		out = "RWD"
	case strings.Contains(v, "front"):
		out = "FWD"
	case strings.Contains(v, "all"):
		out = "AWD"
	case strings.Contains(v, "4-wheel"), strings.Contains(v, "4wd"), strings.Contains(v, "four"):
		out = "4WD"
	default:
		return nil
	}
	return &out
}

func mapTransmission(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	switch {
	case strings.Contains(v, "manual"):
		v = "manual"
	case strings.Contains(v, "auto"):
		v = "automatic"
	}
	return &v
}

// strField returns the first present, non-blank string among keys.
func strField(rec RawRecord, keys ...string) *string {
	for _, k := range keys {
		if s := looseString(rec[k]); s != nil {
			return s
		}
	}
	return nil
}

func intField(rec RawRecord, keys ...string) *int {
	for _, k := range keys {
		if n := looseInt(rec[k]); n != nil {
			return n
		}
	}
	return nil
}

func floatField(rec RawRecord, keys ...string) *float64 {
	for _, k := range keys {
		if f := looseFloat(rec[k]); f != nil {
			return f
		}
	}
	return nil
}

func looseString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func looseInt(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		return util.ParseLooseInt(n)
	}
	return nil
}

func looseFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		f := n
		return &f
	case string:
		return util.ParseLooseFloat(n)
	}
	return nil
}

func joinListField(rec RawRecord, keys ...string) *string {
	for _, k := range keys {
		raw, ok := rec[k].([]any)
		if !ok {
			continue
		}
		parts := make([]string, 0, len(raw))
		for _, v := range raw {
			s := strings.TrimSpace(fmt.Sprint(v))
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			joined := strings.Join(parts, " • ")
			return &joined
		}
	}
	return nil
}
