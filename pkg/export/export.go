package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/transita/ptdelta/core/summary"
)

// WriteJSON writes the cross-value summary to w in JSON format.
func WriteJSON(w io.Writer, stats []summary.Stats) error {
	enc := json.NewEncoder(w)
	return enc.Encode(stats)
}

// WriteCSV writes the cross-value summary to w in CSV format. The metric
// label names the statistic columns, matching the workbook's summary sheet.
func WriteCSV(w io.Writer, stats []summary.Stats, metric string) error {
	cw := csv.NewWriter(w)
	header := []string{
		"value", "count",
		fmt.Sprintf("mean_%s_s", metric),
		fmt.Sprintf("median_%s_s", metric),
		fmt.Sprintf("p10_%s_s", metric),
		fmt.Sprintf("p90_%s_s", metric),
		fmt.Sprintf("min_%s_s", metric),
		fmt.Sprintf("max_%s_s", metric),
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range stats {
		rec := []string{
			strconv.Itoa(s.Value),
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Median),
			formatFloat(s.P10),
			formatFloat(s.P90),
			formatFloat(s.Min),
			formatFloat(s.Max),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
