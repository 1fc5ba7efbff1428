// Package report renders the post-run HTML summary with go-echarts.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/coinwatch/tweet-scraper/internal/domain"
)

// DayCount is the exported tweet count for one scraped day.
type DayCount struct {
	Day   string // the window's until-day, matching the CSV file name
	Posts int
}

// CoinSummary is one coin's run outcome in scrape order.
type CoinSummary struct {
	Coin domain.Coin
	Days []DayCount
}

// Write renders a static HTML report: a tweets-per-day bar chart with one
// series per coin, plus a coin-share pie when several coins were scraped.
// Nothing is written when no day was exported.
func Write(path string, summaries []CoinSummary) error {
	var days []string
	for _, s := range summaries {
		if len(s.Days) > 0 {
			for _, dc := range s.Days {
				days = append(days, dc.Day)
			}
			break // all coins walk the same day range
		}
	}
	if len(days) == 0 {
		return nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Tweets per day"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	bar.SetXAxis(days)
	for _, s := range summaries {
		var ys []opts.BarData
		for _, dc := range s.Days {
			ys = append(ys, opts.BarData{Value: dc.Posts})
		}
		bar.AddSeries(s.Coin.Abbrv, ys)
	}

	page := components.NewPage()
	page.AddCharts(bar)

	if len(summaries) > 1 {
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Coin share"}))
		var items []opts.PieData
		for _, s := range summaries {
			total := 0
			for _, dc := range s.Days {
				total += dc.Posts
			}
			items = append(items, opts.PieData{Name: s.Coin.Abbrv, Value: total})
		}
		pie.AddSeries("Tweets", items)
		page.AddCharts(pie)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}
