package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"moviediary/internal/catalog"
	"moviediary/internal/fuzzy"
	"moviediary/internal/movie"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

// movieTable lists movies in the given order; ranked adds a leading position column.
func movieTable(movies []movie.Movie, ranked bool) string {
	headers := []string{"Title", "Year", "Rating"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	if ranked {
		headers = append([]string{"#"}, headers...)
		aligns = append([]columnAlignment{alignRight}, aligns...)
	}
	rows := make([][]string, 0, len(movies))
	for i, m := range movies {
		row := []string{m.Title, m.Year, formatRating(m.Rating)}
		if ranked {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func matchTable(matches []fuzzy.Match) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.Movie.Title,
			m.Movie.Year,
			formatRating(m.Movie.Rating),
			strconv.Itoa(m.Distance),
		})
	}
	return renderTable(
		[]string{"Title", "Year", "Rating", "Distance"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

func statsTable(st catalog.Stats) string {
	rows := [][]string{
		{"Number of movies", strconv.Itoa(st.Count)},
		{"Average rating", strconv.FormatFloat(st.Mean, 'f', 2, 64)},
		{"Maximum rating", formatRating(st.Max)},
		{"Minimum rating", formatRating(st.Min)},
	}
	return renderTable([]string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
