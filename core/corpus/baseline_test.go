package corpus

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transita/ptdelta/core/measure"
)

func TestResolveBaselinePrefersExplicitMarker(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "stop_events_baseline_1.xml")
	touch(t, dir, "stop_events_0_1.xml")
	touch(t, dir, "stop_events_0_2.xml")

	assert.True(t, strings.HasSuffix(ResolveBaseline(dir, 1), "stop_events_baseline_1.xml"))
	assert.True(t, strings.HasSuffix(ResolveBaseline(dir, 2), "stop_events_0_2.xml"))
	assert.Equal(t, "", ResolveBaseline(dir, 3))
}

func TestLoadBaselines(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "stop_events_baseline_1.xml")
	touch(t, dir, "stop_events_0_2.xml")
	touch(t, dir, "stop_events_baseline_3.xml")

	extract := func(path string) measure.Extraction {
		switch filepath.Base(path) {
		case "stop_events_0_2.xml":
			// parses to nothing: recorded as absent
			return measure.Extraction{Set: measure.Set{}, OK: true}
		case "stop_events_baseline_3.xml":
			// unreadable file: recorded as absent
			return measure.Unavailable()
		}
		return measure.Extraction{Set: measure.Set{"A": {1.5}}, OK: true}
	}

	log := &captureLog{}
	baselines := LoadBaselines(dir, 4, extract, log)
	assert.Len(t, baselines, 1)
	assert.Equal(t, []float64{1.5}, baselines[1]["A"])
	// distinct warnings: empty parse (sim 2), unavailable file (sim 3),
	// missing file (sim 4)
	require.Len(t, log.warns, 3)
	assert.Contains(t, log.warns[0], "no usable baseline measurements")
	assert.Contains(t, log.warns[1], "unavailable")
	assert.Contains(t, log.warns[2], "missing baseline file")
}
