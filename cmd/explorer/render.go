package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"explorer/internal/models"
	"explorer/internal/query"
)

type renderer struct {
	w          io.Writer
	pointLimit int
}

func (r renderer) render(res *models.QueryResult) error {
	switch res.Outcome {
	case models.OutcomeNotFound:
		_, err := fmt.Fprintf(r.w, "No restaurants found for %s.\n", res.Filters["name"])
		return err
	case models.OutcomeEmpty:
		_, err := fmt.Fprintln(r.w, emptyMessage(query.ID(res.Query)))
		return err
	}

	switch query.ID(res.Query) {
	case query.DensestCity:
		if h := res.Headline; h != nil {
			fmt.Fprintf(r.w, "The city with the most fast-food restaurants is %s with %d restaurants.\n", h.Key, h.Count)
		}
		if s := res.Stats; s != nil {
			fmt.Fprintf(r.w, "Latitude mean %.4f, median %.4f over %d locations.\n", s.Mean, s.Median, s.Count)
		}
		return r.table("CITY", res.Ranking)
	case query.BrandByRegion:
		fmt.Fprintf(r.w, "Number of %s restaurants by state:\n", res.Filters["name"])
		return r.table("STATE", res.Ranking)
	case query.Scatter:
		return r.points(res.Points)
	case query.MarketShare:
		fmt.Fprintln(r.w, "Distribution of restaurants by percentage:")
		return r.table("RESTAURANT", res.Ranking)
	}
	return fmt.Errorf("%w: %q", query.ErrUnknownQuery, res.Query)
}

func emptyMessage(id query.ID) string {
	if id == query.Scatter {
		return "No geographical data available for the selected province or dataset."
	}
	return "No data available for the selected filters."
}

func (r renderer) table(keyHeader string, ranking *models.RankedResult) error {
	if ranking == nil {
		return nil
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	if ranking.Percent {
		fmt.Fprintf(tw, "%s\tCOUNT\tSHARE\n", keyHeader)
		for _, g := range ranking.Rows() {
			fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", g.Key, g.Count, g.Share)
		}
	} else {
		fmt.Fprintf(tw, "%s\tCOUNT\n", keyHeader)
		for _, g := range ranking.Rows() {
			fmt.Fprintf(tw, "%s\t%d\n", g.Key, g.Count)
		}
	}
	return tw.Flush()
}

func (r renderer) points(points []models.GeoPoint) error {
	fmt.Fprintf(r.w, "Geographical distribution of %d fast-food locations:\n", len(points))

	shown := points
	if r.pointLimit > 0 && len(points) > r.pointLimit {
		shown = points[:r.pointLimit]
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LATITUDE\tLONGITUDE")
	for _, p := range shown {
		fmt.Fprintf(tw, "%.5f\t%.5f\n", p.Latitude, p.Longitude)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if rest := len(points) - len(shown); rest > 0 {
		fmt.Fprintf(r.w, "... and %d more\n", rest)
	}
	return nil
}
