package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/transita/ptdelta/core/logger"
)

// Replicate file naming conventions. Each pattern captures the perturbation
// value first and the replicate index second.
var (
	StopEventsPattern  = regexp.MustCompile(`^stop_events_(\d+)_(\d+)\.xml$`)
	TripOutputsPattern = regexp.MustCompile(`^4_(\d+)_(\d+)_.*_sim_output\.xml$`)
)

// Index maps perturbation value -> replicate index -> file path.
type Index map[int]map[int]string

// Values returns the perturbation values present in the index, ascending.
func (ix Index) Values() []int {
	values := make([]int, 0, len(ix))
	for v := range ix {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Path returns the file for (value, sim), or "" when absent.
func (ix Index) Path(value, sim int) string {
	return ix[value][sim]
}

// Sims returns the replicate indices discovered for a value, ascending.
func (ix Index) Sims(value int) []int {
	sims := make([]int, 0, len(ix[value]))
	for sim := range ix[value] {
		sims = append(sims, sim)
	}
	sort.Ints(sims)
	return sims
}

// Scan builds an Index by matching every entry of dir against pattern.
// Non-matching names are ignored. When two files map to the same
// (value, sim) pair the collision is logged and the later entry of the
// sorted listing wins.
func Scan(dir string, pattern *regexp.Regexp, log logger.Logger) (Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	ix := Index{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sim, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if prev, ok := ix[value][sim]; ok {
			log.Warnf("duplicate replicate file for value=%d sim=%d: %s replaces %s", value, sim, path, prev)
		}
		if ix[value] == nil {
			ix[value] = map[int]string{}
		}
		ix[value][sim] = path
	}
	return ix, nil
}
