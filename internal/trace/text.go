package trace

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/algoviz/internal/frame"
)

// WriteText prints one aligned line per frame.
func WriteText(w io.Writer, t *Trace) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STEP\tOP\tDATA\tREGIONS\tNOTE\n")
	for _, f := range t.Frames {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.Step, f.Op, FormatData(f), FormatRegions(f.Regions), f.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return WriteSummary(w, t)
}

func WriteSummary(w io.Writer, t *Trace) error {
	final := t.Final()
	fmt.Fprintf(w, "\nalgorithm: %s\n", t.Algorithm)
	fmt.Fprintf(w, "steps:     %d\n", t.Steps)
	fmt.Fprintf(w, "result:    %s\n", FormatData(final))
	if len(final.Output) > 0 {
		fmt.Fprintf(w, "output:    %s\n", joinInts(final.Output, " "))
	}
	if final.Note != "" {
		fmt.Fprintf(w, "note:      %s\n", final.Note)
	}
	fmt.Fprintf(w, "stats:     %s\n", FormatStats(final.Stats))
	if t.Error != "" {
		fmt.Fprintf(w, "error:     %s\n", t.Error)
	}
	return nil
}

func FormatStats(s frame.Stats) string {
	return fmt.Sprintf("cmp=%d swp=%d ovr=%d rlx=%d", s.Comparisons, s.Swaps, s.Writes, s.Relaxations)
}
