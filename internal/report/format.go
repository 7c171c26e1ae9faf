// Package report renders plain-text summaries of benchmark results for the
// lab's logs.
package report

import (
	"fmt"
	"sort"
	"strings"

	"InvestLab/internal/recorder"
)

// FormatComparison renders one scenario's heuristic-vs-optimal table.
func FormatComparison(scenario string, optimal float64, cmps []*recorder.ComparisonRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s | optimal value %.3f\n", scenario, optimal)

	sorted := make([]*recorder.ComparisonRecord, len(cmps))
	copy(sorted, cmps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Gap < sorted[j].Gap })

	for _, c := range sorted {
		share := 100.0
		if c.OptimalValue > 0 {
			share = c.PolicyReward / c.OptimalValue * 100
		}
		fmt.Fprintf(&b, "  %-18s reward %8.3f | gap %8.3f | %5.1f%% of optimal\n",
			c.Policy, c.PolicyReward, c.Gap, share)
	}
	return b.String()
}

// FormatRun renders a one-line run summary.
func FormatRun(run *recorder.RunRecord) string {
	outcome := "survived"
	if run.Terminal {
		outcome = "depleted"
	}
	return fmt.Sprintf("%s/%s (%s): reward %.3f over %d steps, %s",
		run.Scenario, run.Policy, run.Variant, run.CumulativeReward, run.StepsSurvived, outcome)
}
