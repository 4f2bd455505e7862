package seed

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func parseItems(r gjson.Result, path string, key domain.SectionKey) ([]domain.Item, error) {
	if r.Type == gjson.Null {
		return []domain.Item{}, nil
	}
	if !r.IsArray() {
		return nil, domain.NewSeedError(path, "must be an array")
	}

	arr := r.Array()
	items := make([]domain.Item, 0, len(arr))
	for j, v := range arr {
		switch {
		case v.IsObject():
			items = append(items, parseItem(v, key))
		case v.Type == gjson.String && strings.TrimSpace(v.Str) != "":
			items = append(items, bareItem(strings.TrimSpace(v.Str), key))
		default:
			return nil, domain.NewSeedError(fmt.Sprintf("%s.%d", path, j), "must be an object")
		}
	}
	return items, nil
}

func bareItem(title string, key domain.SectionKey) domain.Item {
	return domain.Item{
		Type:           key.ItemType(),
		Title:          title,
		Photos:         []domain.Photo{},
		OperatingHours: domain.OperatingHours{Periods: []domain.Period{}},
	}
}

func parseItem(r gjson.Result, key domain.SectionKey) domain.Item {
	it := domain.Item{
		ID:               str(first(r, "id", "_id")),
		Type:             key.ItemType(),
		Title:            str(first(r, "title", "name")),
		Description:      str(r.Get("description")),
		Location:         parseLocation(r),
		StartTime:        str(r.Get("startTime")),
		EndTime:          str(r.Get("endTime")),
		Duration:         str(r.Get("duration")),
		PriceLevel:       str(r.Get("priceLevel")),
		UserRatingsTotal: integer(r.Get("userRatingsTotal")),
		Photos:           parsePhotos(first(r, "photos", "photo", "imageUrl")),
		Contact:          parseContact(r),
		OperatingHours:   parseHours(r.Get("operatingHours")),
		BookingInfo:      str(first(r, "bookingInfo", "contact.bookingInfo")),
		Cuisine:          str(r.Get("cuisine")),
	}
	if it.Title == "" {
		it.Title = it.Location.Name
	}
	it.Rating, _ = number(r.Get("rating"))

	priceRes := first(r, "price", "pricePerNight", "priceRange")
	if p, ok := number(priceRes); ok {
		it.Price = p
	} else if it.PriceLevel == "" {
		it.PriceLevel = str(priceRes)
	}
	return it
}

func parseLocation(item gjson.Result) domain.Location {
	r := item.Get("location")
	loc := domain.Location{}
	switch {
	case r.IsObject():
		loc.Name = str(r.Get("name"))
		loc.Address = str(first(r, "address", "formattedAddress"))
		loc.PlaceID = str(r.Get("placeId"))
		loc.Coordinates = coordinates(r.Get("coordinates"))
	case r.Type == gjson.String:
		loc.Address = strings.TrimSpace(r.Str)
	}
	if loc.Address == "" {
		loc.Address = str(item.Get("address"))
	}
	if loc.PlaceID == "" {
		loc.PlaceID = str(first(item, "placeId", "operatingHours.placeId"))
	}
	if loc.Coordinates == nil {
		loc.Coordinates = coordinates(item.Get("coordinates"))
	}
	return loc
}

// parsePhotos accepts [{url, caption}], ["url"], "url" or {url}.
func parsePhotos(r gjson.Result) []domain.Photo {
	photos := []domain.Photo{}
	add := func(v gjson.Result) {
		switch {
		case v.Type == gjson.String:
			if u := strings.TrimSpace(v.Str); u != "" {
				photos = append(photos, domain.Photo{URL: u})
			}
		case v.IsObject():
			if u := str(first(v, "url", "src")); u != "" {
				photos = append(photos, domain.Photo{URL: u, Caption: str(v.Get("caption"))})
			}
		}
	}
	if r.IsArray() {
		for _, v := range r.Array() {
			add(v)
		}
	} else {
		add(r)
	}
	return photos
}

func parseContact(item gjson.Result) domain.Contact {
	c := item.Get("contact")
	return domain.Contact{
		GoogleMapsURL: str(first(c, "googleMapsUrl", "mapsUrl", "url")),
		Website:       str(first(c, "website")),
		Phone:         str(first(c, "phone")),
	}
}

// parseHours accepts {isOpen, periods: [{day, hours}]}; periods may also be
// strings like "Monday: 9:00 AM – 5:00 PM".
func parseHours(r gjson.Result) domain.OperatingHours {
	h := domain.OperatingHours{Periods: []domain.Period{}}
	if !r.IsObject() {
		return h
	}
	h.IsOpen = boolean(r.Get("isOpen"))
	for _, p := range r.Get("periods").Array() {
		switch {
		case p.IsObject():
			h.Periods = append(h.Periods, domain.Period{Day: str(p.Get("day")), Hours: str(p.Get("hours"))})
		case p.Type == gjson.String:
			day, hours, _ := strings.Cut(p.Str, ":")
			h.Periods = append(h.Periods, domain.Period{Day: strings.TrimSpace(day), Hours: strings.TrimSpace(hours)})
		}
	}
	return h
}
