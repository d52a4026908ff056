package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transita/ptdelta/core/summary"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	stats := []summary.Stats{
		{Value: 1000, Count: 2, Mean: 1.5, Median: 1.5, P10: 1.1, P90: 1.9, Min: 1, Max: 2},
		{Value: 2000},
	}
	require.NoError(t, WriteCSV(&buf, stats, "delta"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "value,count,mean_delta_s,median_delta_s,p10_delta_s,p90_delta_s,min_delta_s,max_delta_s", lines[0])
	assert.Equal(t, "1000,2,1.5,1.5,1.1,1.9,1,2", lines[1])
	assert.Equal(t, "2000,0,0,0,0,0,0,0", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []summary.Stats{{Value: 7000, Count: 1, Mean: 20}}))

	var decoded []summary.Stats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 7000, decoded[0].Value)
	assert.Equal(t, 20.0, decoded[0].Mean)
}
