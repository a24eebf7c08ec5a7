package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/trace"
)

func styleFor(regions []frame.Region, has func(frame.Region) bool) (lipgloss.Style, bool) {
	for _, rs := range regionStyles {
		for _, r := range regions {
			if r.Name == rs.name && has(r) {
				return rs.style, true
			}
		}
	}
	return lipgloss.Style{}, false
}

func paint(regions []frame.Region, has func(frame.Region) bool, text string, fallback lipgloss.Style) string {
	if s, ok := styleFor(regions, has); ok {
		return s.Render(text)
	}
	return fallback.Render(text)
}

func renderFrame(f frame.Frame, height int) string {
	switch f.Kind {
	case frame.KindArray:
		return renderArray(f, height)
	case frame.KindGraph:
		return renderGraph(f)
	case frame.KindTable:
		return renderTable(f)
	}
	return dim.Render("nothing loaded")
}

// renderArray draws one bar per value, scaled between the smallest and the
// largest value so negative inputs still get a visible bar.
func renderArray(f frame.Frame, height int) string {
	if len(f.Array) == 0 {
		return ""
	}
	height = max(height, 3)
	lo, hi := float64(slices.Min(f.Array)), float64(slices.Max(f.Array))
	span := max(hi-lo, 1)

	label := 1
	for _, v := range f.Array {
		label = max(label, len(strconv.Itoa(v)))
	}
	cellW := label + 1

	cols := make([]string, len(f.Array))
	for i, v := range f.Array {
		bar := min(max(1+int((float64(v)-lo)*float64(height-1)/span), 1), height)
		has := func(r frame.Region) bool { return slices.Contains(r.Indices, i) }
		var col strings.Builder
		for row := height; row >= 1; row-- {
			cell := strings.Repeat(" ", cellW)
			if row <= bar {
				cell = strings.Repeat("█", label) + " "
			}
			col.WriteString(paint(f.Regions, has, cell, dimmer) + "\n")
		}
		col.WriteString(paint(f.Regions, has, fmt.Sprintf("%*d ", label, v), dim))
		cols[i] = col.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func renderGraph(f frame.Frame) string {
	g := f.Graph
	if g == nil {
		return ""
	}
	var b strings.Builder
	arrow := "--"
	if g.Directed {
		arrow = "->"
	}

	b.WriteString(dim.Render("node  dist  parent") + "\n")
	for n := 0; n < g.Nodes; n++ {
		dist, parent := "-", "-"
		if g.Dist != nil {
			dist = trace.FormatValue(g.Dist[n])
		}
		if g.Parent != nil && g.Parent[n] >= 0 {
			parent = strconv.Itoa(g.Parent[n])
		}
		has := func(r frame.Region) bool { return slices.Contains(r.Indices, n) }
		b.WriteString(paint(f.Regions, has, fmt.Sprintf("%4d  %4s  %6s", n, dist, parent), white) + "\n")
	}

	b.WriteString("\n" + dim.Render("edges") + "\n")
	for i, e := range g.Edges {
		has := func(r frame.Region) bool { return slices.Contains(r.Edges, i) }
		b.WriteString(paint(f.Regions, has, fmt.Sprintf("%3d  %d %s %d  w=%d", i, e.From, arrow, e.To, e.Weight), dim) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTable(f frame.Frame) string {
	if len(f.Table) == 0 {
		return ""
	}
	w := 1
	for _, row := range f.Table {
		for _, v := range row {
			w = max(w, len(trace.FormatValue(v)))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 4))
	for c := range f.Table[0] {
		b.WriteString(dim.Render(fmt.Sprintf(" %*d", w, c)))
	}
	b.WriteString("\n")
	for r, row := range f.Table {
		b.WriteString(dim.Render(fmt.Sprintf("%3d ", r)))
		for c, v := range row {
			at := frame.Cell{Row: r, Col: c}
			has := func(reg frame.Region) bool { return slices.Contains(reg.Cells, at) }
			b.WriteString(paint(f.Regions, has, fmt.Sprintf(" %*s", w, trace.FormatValue(v)), dim))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// chartColumn picks the counter that moves for a given kind of run.
func chartColumn(k frame.Kind) string {
	switch k {
	case frame.KindGraph:
		return "relaxations"
	case frame.KindTable:
		return "writes"
	}
	return "comparisons"
}

func renderChart(data []float64, caption string, width int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(4),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}
