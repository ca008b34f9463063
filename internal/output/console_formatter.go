package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/famplan/planner/internal/domain"
)

// ConsoleFormatter renders a human-readable report: the run summary, each
// goal's verdict, the per-child milestone projections and the months that
// triggered events.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	s := results.Summary

	fmt.Fprintf(buf, "Projection %s to %s (%d months)\n\n",
		s.StartDate.Format("2006-01"), s.EndDate.Format("2006-01"), s.Months)

	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Final total assets\t%s\n", s.FinalTotalAssets.StringFixed(2))
	fmt.Fprintf(w, "Final total assets (real)\t%s\n", s.FinalTotalAssetsReal.StringFixed(2))
	fmt.Fprintf(w, "Total deposits\t%s\n", s.TotalDeposits.StringFixed(2))
	fmt.Fprintf(w, "Total returns\t%s\n", s.TotalReturns.StringFixed(2))
	fmt.Fprintf(w, "Total fees\t%s\n", s.TotalFees.StringFixed(2))
	fmt.Fprintf(w, "Total child expenses\t%s\n", s.TotalChildExpenses.StringFixed(2))
	fmt.Fprintf(w, "Total withdrawals\t%s\n", s.TotalWithdrawals.StringFixed(2))
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if len(results.GoalsAnalysis) > 0 {
		fmt.Fprintf(buf, "\nGoals (%d/%d achievable)\n", s.GoalsAchievable, s.GoalsTotal)
		gw := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(gw, "Goal\tTarget\tProjected\tStatus")
		for _, g := range results.GoalsAnalysis {
			status := "not achievable"
			if g.IsAchievable {
				status = "achievable"
				if g.AchievementDate != nil {
					status += " by " + g.AchievementDate.Format("2006-01")
				}
			} else {
				if g.Shortfall != nil {
					status += fmt.Sprintf(", short %s", g.Shortfall.StringFixed(2))
				}
				if g.RequiredExtraMonthly != nil {
					status += fmt.Sprintf(", needs +%s/month", g.RequiredExtraMonthly.StringFixed(0))
				}
			}
			fmt.Fprintf(gw, "%s\t%s\t%s\t%s\n",
				g.Name, g.TargetAmount.StringFixed(2), g.ProjectedAmount.StringFixed(2), status)
		}
		if err := gw.Flush(); err != nil {
			return nil, err
		}
	}

	for _, child := range results.ChildProjections {
		fmt.Fprintf(buf, "\n%s: %d milestones, total %s, %s/month needed\n",
			child.Name, len(child.Milestones),
			child.TotalCost.StringFixed(2), child.TotalMonthlyNeeded.StringFixed(2))
		cw := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
		for _, ms := range child.Milestones {
			note := ""
			if ms.Past {
				note = "(already passed)"
			}
			fmt.Fprintf(cw, "  %s\t%s\tage %s\t%s\t%s\n",
				ms.Date.Format("2006-01"), ms.Name, ms.ExpectedAge,
				ms.TotalCost.StringFixed(2), note)
		}
		if err := cw.Flush(); err != nil {
			return nil, err
		}
		for _, un := range child.Unscheduled {
			fmt.Fprintf(buf, "  unscheduled: %s %s\n", un.Name, un.Amount.StringFixed(2))
		}
	}

	eventMonths := 0
	for _, point := range results.Timeline {
		if len(point.Events) > 0 {
			eventMonths++
		}
	}
	if eventMonths > 0 {
		fmt.Fprintf(buf, "\nEvents\n")
		for _, point := range results.Timeline {
			for _, ev := range point.Events {
				fmt.Fprintf(buf, "  %s  %s\n", point.Date.Format("2006-01"), ev)
			}
		}
	}

	return buf.Bytes(), nil
}
