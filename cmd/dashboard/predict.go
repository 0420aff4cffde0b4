package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/matchday-edge/internal/models"
)

var outputFormat string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one refresh and print the predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		refresher, err := buildRefresher()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshTimeout())
		defer cancel()

		snap, _, err := refresher.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh predictions: %w", err)
		}
		return printSnapshot(os.Stdout, snap, outputFormat)
	},
}

func printSnapshot(w io.Writer, snap *models.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "table", "":
		return printTable(w, snap)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printTable(w io.Writer, snap *models.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "MATCH\tLEAGUE\tPICK\tHOME\tDRAW\tAWAY\tCONF\tQUALITY\tBEST VALUE")
	for _, mp := range snap.Matches {
		p := mp.Prediction
		best := "-"
		if vb, ok := p.BestValueBet(); ok {
			best = fmt.Sprintf("%s @ %.2f (%s, EV %+.1f%%)", vb.Market.DisplayName(), vb.Odds, vb.Bookmaker, vb.ExpectedValue)
		}
		conf := fmt.Sprintf("%.2f", p.Confidence)
		if p.LowConfidence {
			conf += "*"
		}
		fmt.Fprintf(tw, "%s vs %s\t%s\t%s\t%.3f\t%.3f\t%.3f\t%s\t%d\t%s\n",
			mp.Match.HomeTeam, mp.Match.AwayTeam, mp.Match.League, p.Outcome,
			p.Probabilities.Home, p.Probabilities.Draw, p.Probabilities.Away,
			conf, p.DataQuality, best)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	s := snap.Summary
	fmt.Fprintf(w, "\n%d matches, %d value bets, avg EV %.1f%%, avg data quality %.0f\n",
		s.TotalMatches, s.ValueBetsFound, s.AvgExpectedValue, s.AvgDataQuality)
	if len(snap.SourceCounts) > 0 {
		parts := make([]string, 0, len(snap.SourceCounts))
		for _, name := range sortedKeys(snap.SourceCounts) {
			parts = append(parts, fmt.Sprintf("%s=%d", name, snap.SourceCounts[name]))
		}
		fmt.Fprintf(w, "sources: %s\n", strings.Join(parts, " "))
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
