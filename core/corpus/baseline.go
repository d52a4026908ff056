package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/transita/ptdelta/core/logger"
	"github.com/transita/ptdelta/core/measure"
)

// ExtractFunc parses one replicate file into a measurement set.
type ExtractFunc func(path string) measure.Extraction

// BaselineCandidates are the baseline naming conventions, in preference
// order: the explicit baseline marker first, the legacy value=0 convention
// second. Each entry is a printf pattern taking the replicate index.
var BaselineCandidates = []string{
	"stop_events_baseline_%d.xml",
	"stop_events_0_%d.xml",
}

// ResolveBaseline returns the first existing baseline candidate for the
// replicate index, or "" when none exists.
func ResolveBaseline(dir string, sim int) string {
	for _, pattern := range BaselineCandidates {
		p := filepath.Join(dir, fmt.Sprintf(pattern, sim))
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadBaselines extracts baseline measurements for replicate indices 1..sims.
// Missing files and files that parse to nothing are recorded as absent with
// a warning; alignment for those replicates is skipped downstream.
func LoadBaselines(dir string, sims int, extract ExtractFunc, log logger.Logger) map[int]measure.Set {
	baselines := make(map[int]measure.Set)
	for sim := 1; sim <= sims; sim++ {
		path := ResolveBaseline(dir, sim)
		if path == "" {
			log.Warnf("missing baseline file for sim %d in %s", sim, dir)
			continue
		}
		ext := extract(path)
		switch {
		case !ext.OK:
			log.Warnf("baseline file for sim %d is unavailable: %s", sim, path)
			continue
		case ext.Set.Len() == 0:
			log.Warnf("no usable baseline measurements in %s", path)
			continue
		}
		baselines[sim] = ext.Set
	}
	return baselines
}
