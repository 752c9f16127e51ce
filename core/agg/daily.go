package agg

import (
	"iter"
	"time"

	"github.com/compasshq/compass/schema"
)

// DailySeries yields one gap-filled roll-up per calendar day from start to
// end inclusive, in ascending date order. Days with no contributions report
// zeroed counts rather than being absent, so chart rendering never has to
// interpolate. The sequence is computed lazily; contributions outside the
// window are ignored.
func DailySeries(contribs []schema.Contribution, start, end time.Time) iter.Seq[schema.DailyRollup] {
	startDay := truncateDay(start)
	endDay := truncateDay(end)

	byDay := make(map[time.Time][]schema.Contribution)
	for _, c := range contribs {
		day := truncateDay(c.CommitDate)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		byDay[day] = append(byDay[day], c)
	}

	return func(yield func(schema.DailyRollup) bool) {
		for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
			point := schema.DailyRollup{
				Date:   day,
				Rollup: Summarize(byDay[day]),
			}
			if !yield(point) {
				return
			}
		}
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
