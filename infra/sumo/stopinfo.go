package sumo

import (
	"encoding/xml"
	"os"
	"strconv"

	"github.com/transita/ptdelta/core/logger"
	"github.com/transita/ptdelta/core/measure"
)

// StopDelays extracts per-stop schedule delays from a stopinfo event file.
// The identity is the busStop attribute (stop as fallback); the delay
// attribute defaults to 0 when absent and the whole record is skipped when
// it is present but unparseable. Occurrences are sorted by delay ascending
// per stop, so occurrence rank reflects position in sorted order.
func StopDelays(path string, log logger.Logger) measure.Extraction {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("skipping unreadable stop events file %s: %v", path, err)
		return measure.Unavailable()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Errorf("close %s: %v", path, cerr)
		}
	}()

	set := measure.Set{}
	err = scanElements(f, "stopinfo", func(se xml.StartElement) {
		stopID, _ := attr(se, "busStop", "stop")
		if stopID == "" {
			return
		}
		delay := 0.0
		if raw, ok := attr(se, "delay"); ok {
			d, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				return
			}
			delay = d
		}
		set.Add(stopID, delay)
	})
	if err != nil {
		log.Warnf("recovered from malformed XML in %s: %v", path, err)
	}
	set.Sort()
	return measure.Extraction{Set: set, OK: true}
}
