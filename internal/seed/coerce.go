package seed

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

var numberToken = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// first returns the first of keys present on r.
func first(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// str renders a scalar as a string. Objects, arrays and null give "".
func str(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return r.Raw
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	}
	return ""
}

// number coerces a JSON value to a finite float. Strings like "$1,200",
// "€15-25" or "4.5 stars" yield their first number; "free" yields 0.
// ok is false for values that carry no number at all (e.g. "$$").
func number(r gjson.Result) (v float64, ok bool) {
	switch r.Type {
	case gjson.Number:
		if math.IsNaN(r.Num) || math.IsInf(r.Num, 0) {
			return 0, false
		}
		return r.Num, true
	case gjson.String:
		s := strings.ToLower(strings.TrimSpace(r.Str))
		if s == "free" {
			return 0, true
		}
		tok := numberToken.FindString(strings.ReplaceAll(s, ",", ""))
		if tok == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case gjson.JSON:
		if r.IsObject() {
			return number(first(r, "amount", "value", "total"))
		}
	}
	return 0, false
}

func integer(r gjson.Result) int {
	f, ok := number(r)
	if !ok {
		return 0
	}
	return int(f)
}

func boolean(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		b, _ := strconv.ParseBool(strings.TrimSpace(r.Str))
		return b
	case gjson.Number:
		return r.Num != 0
	}
	return false
}

// stringList accepts ["a","b"] or "a, b".
func stringList(r gjson.Result) []string {
	out := []string{}
	switch {
	case r.IsArray():
		for _, v := range r.Array() {
			if s := str(v); s != "" {
				out = append(out, s)
			}
		}
	case r.Type == gjson.String:
		for _, part := range strings.Split(r.Str, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// coordinates accepts [lat, lng], {lat, lng}, {latitude, longitude} or "lat,lng".
func coordinates(r gjson.Result) *domain.Coordinates {
	var lat, lng gjson.Result
	switch {
	case r.IsArray():
		arr := r.Array()
		if len(arr) < 2 {
			return nil
		}
		lat, lng = arr[0], arr[1]
	case r.IsObject():
		lat, lng = first(r, "lat", "latitude"), first(r, "lng", "lon", "longitude")
	case r.Type == gjson.String:
		parts := strings.Split(r.Str, ",")
		if len(parts) != 2 {
			return nil
		}
		la, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		ln, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		return validCoordinates(la, ln)
	default:
		return nil
	}

	la, ok1 := number(lat)
	ln, ok2 := number(lng)
	if !ok1 || !ok2 {
		return nil
	}
	return validCoordinates(la, ln)
}

func validCoordinates(lat, lng float64) *domain.Coordinates {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &domain.Coordinates{Lat: lat, Lng: lng}
}
