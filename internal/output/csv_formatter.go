package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/famplan/planner/internal/domain"
)

// CSVFormatter emits one row per simulated month, with per-asset balance
// columns in the snapshot's declared order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Month", "Date", "TotalAssets", "TotalAssetsReal",
		"TotalDeposits", "TotalReturns", "TotalFees", "TotalChildExpenses",
		"MonthlyIncome", "InflationFactor",
	}
	if len(results.Timeline) > 0 {
		for _, ab := range results.Timeline[0].AssetsBreakdown {
			header = append(header, "Balance:"+ab.AssetID)
		}
	}
	header = append(header, "Events")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, point := range results.Timeline {
		row := []string{
			strconv.Itoa(point.MonthIndex),
			point.Date.Format("2006-01-02"),
			point.TotalAssets.StringFixed(2),
			point.TotalAssetsReal.StringFixed(2),
			point.TotalDeposits.StringFixed(2),
			point.TotalReturns.StringFixed(2),
			point.TotalFees.StringFixed(2),
			point.TotalChildExpenses.StringFixed(2),
			point.MonthlyIncome.StringFixed(2),
			point.InflationFactor.StringFixed(6),
		}
		for _, ab := range point.AssetsBreakdown {
			row = append(row, ab.Balance.StringFixed(2))
		}
		row = append(row, strings.Join(point.Events, "; "))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
