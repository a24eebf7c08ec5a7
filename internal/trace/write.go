package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

func WriteJSON(w io.Writer, t *Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t)
}

var csvHeader = []string{"step", "op", "note", "comparisons", "swaps", "writes", "relaxations", "regions", "data", "output"}

// WriteCSV writes one row per frame. Regions are "name:i|j" joined by ";",
// data is the array, the distance vector or the table rows joined by "/".
func WriteCSV(w io.Writer, t *Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range t.Frames {
		row := []string{
			strconv.Itoa(f.Step),
			f.Op,
			f.Note,
			strconv.Itoa(f.Stats.Comparisons),
			strconv.Itoa(f.Stats.Swaps),
			strconv.Itoa(f.Stats.Writes),
			strconv.Itoa(f.Stats.Relaxations),
			FormatRegions(f.Regions),
			FormatData(f),
			joinInts(f.Output, " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the trace to path with the given writer, or to stdout
// when path is empty or "-".
func WriteFile(path string, t *Trace, write func(io.Writer, *Trace) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout, t)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func FormatRegions(regions []frame.Region) string {
	parts := make([]string, 0, len(regions))
	for _, r := range regions {
		var ids []string
		for _, i := range r.Indices {
			ids = append(ids, strconv.Itoa(i))
		}
		for _, e := range r.Edges {
			ids = append(ids, "e"+strconv.Itoa(e))
		}
		for _, c := range r.Cells {
			ids = append(ids, fmt.Sprintf("%d.%d", c.Row, c.Col))
		}
		parts = append(parts, r.Name+":"+strings.Join(ids, "|"))
	}
	return strings.Join(parts, ";")
}

func FormatData(f frame.Frame) string {
	switch f.Kind {
	case frame.KindArray:
		return joinInts(f.Array, " ")
	case frame.KindGraph:
		if f.Graph == nil {
			return ""
		}
		if f.Graph.Dist == nil {
			return fmt.Sprintf("%d nodes, %d edges", f.Graph.Nodes, len(f.Graph.Edges))
		}
		ds := make([]string, len(f.Graph.Dist))
		for i, d := range f.Graph.Dist {
			ds[i] = FormatValue(d)
		}
		return strings.Join(ds, " ")
	case frame.KindTable:
		rows := make([]string, len(f.Table))
		for i, row := range f.Table {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = FormatValue(v)
			}
			rows[i] = strings.Join(cells, " ")
		}
		return strings.Join(rows, "/")
	}
	return ""
}

// FormatValue prints a distance or table cell; unreachable distances are
// "inf" and unfilled cells are ".".
func FormatValue(v int64) string {
	switch v {
	case frame.Inf:
		return "inf"
	case boards.Unset:
		return "."
	}
	return strconv.FormatInt(v, 10)
}

func joinInts[T int | int64](vals []T, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, sep)
}
