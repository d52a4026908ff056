package sumo

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/transita/ptdelta/core/logger"
	"github.com/transita/ptdelta/core/measure"
)

// ptClassMarker identifies public-transport vehicle types, matched
// case-insensitively as a substring of the vType attribute.
const ptClassMarker = "bus"

// TripDurations extracts per-vehicle trip durations for public-transport
// vehicles from a tripinfo file. The identity is the id attribute (tripid as
// fallback). A record is kept when its vType contains the PT class marker,
// or, when vType is absent, when the id is not purely numeric. The duration
// attribute is preferred; otherwise arrival − depart is used. Non-positive
// durations are discarded. One duration per vehicle is kept per file, the
// last one seen winning.
func TripDurations(path string, log logger.Logger) measure.Extraction {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("skipping unreadable tripinfo file %s: %v", path, err)
		return measure.Unavailable()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Errorf("close %s: %v", path, cerr)
		}
	}()

	set := measure.Set{}
	err = scanElements(f, "tripinfo", func(se xml.StartElement) {
		vid, _ := attr(se, "id", "tripid")
		if vid == "" {
			return
		}
		vtype, hasType := attr(se, "vType", "vtype")
		isPT := (hasType && strings.Contains(strings.ToLower(vtype), ptClassMarker)) ||
			(!hasType && !isNumeric(vid))
		if !isPT {
			return
		}
		dur, ok := tripDuration(se)
		if !ok || !(dur > 0) {
			return
		}
		set.Put(vid, dur)
	})
	if err != nil {
		log.Warnf("recovered from malformed XML in %s: %v", path, err)
	}
	return measure.Extraction{Set: set, OK: true}
}

func tripDuration(se xml.StartElement) (float64, bool) {
	if raw, ok := attr(se, "duration"); ok {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return d, true
	}
	arrRaw, ok := attr(se, "arrival")
	if !ok {
		return 0, false
	}
	depRaw, ok := attr(se, "depart")
	if !ok {
		return 0, false
	}
	arr, err := strconv.ParseFloat(arrRaw, 64)
	if err != nil {
		return 0, false
	}
	dep, err := strconv.ParseFloat(depRaw, 64)
	if err != nil {
		return 0, false
	}
	return arr - dep, true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
