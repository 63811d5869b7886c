package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Show how the slab chain grew",
		Long: `The stats command accumulates input like cat and reports the slab chain
instead of the content: slab count, capacity, total length, the fill of the
last slab and the allocator counters.

Example:
  slabctl stats big.log
  slabctl stats --capacity 1024 --eager big.log --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

// ChainStats describes a builder after accumulation.
type ChainStats struct {
	Slabs       int                `json:"slabs"`
	Capacity    int                `json:"capacity"`
	Length      int                `json:"length"`
	LastFill    int                `json:"last_fill"`
	SlabLengths []int              `json:"slab_lengths,omitempty"`
	Allocator   string             `json:"allocator"`
	Counters    map[string]float64 `json:"counters"`
}

func runStats(args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	if _, err := readInputs(s.b, args); err != nil {
		return err
	}

	lengths := s.b.SlabLengths()
	stats := ChainStats{
		Slabs:     s.b.SlabCount(),
		Capacity:  s.b.Capacity(),
		Length:    s.b.Len(),
		LastFill:  lengths[len(lengths)-1],
		Allocator: allocName,
	}
	if verbose {
		stats.SlabLengths = lengths
	}
	stats.Counters, err = gatherCounters(s.reg)
	if err != nil {
		return fmt.Errorf("failed to gather allocator metrics: %w", err)
	}

	if jsonOut {
		return printJSON(stats)
	}
	printStats(stats)
	return nil
}

func printStats(st ChainStats) {
	printInfo("Slabs:       %d\n", st.Slabs)
	printInfo("Capacity:    %s\n", humanize.IBytes(uint64(st.Capacity)))
	printInfo("Length:      %s (%s bytes)\n", humanize.IBytes(uint64(st.Length)), humanize.Comma(int64(st.Length)))
	printInfo("Last slab:   %s of %s (%.1f%%)\n",
		humanize.IBytes(uint64(st.LastFill)),
		humanize.IBytes(uint64(st.Capacity)),
		100*float64(st.LastFill)/float64(st.Capacity))
	printInfo("Allocator:   %s\n", st.Allocator)
	for _, name := range sortedKeys(st.Counters) {
		printInfo("  %-24s %s\n", name, humanize.Commaf(st.Counters[name]))
	}
	if len(st.SlabLengths) > 0 {
		parts := make([]string, len(st.SlabLengths))
		for i, n := range st.SlabLengths {
			parts[i] = fmt.Sprint(n)
		}
		printInfo("Slab fill:   %s\n", strings.Join(parts, " "))
	}
}

// gatherCounters flattens the allocator's unlabelled-by-op series into
// short names, e.g. regions_acquired_total.
func gatherCounters(reg *prometheus.Registry) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), "slabkit_alloc_")
		for _, m := range mf.GetMetric() {
			key := name
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" {
					key = name + "{" + lp.GetValue() + "}"
				}
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
