package data

import (
	"sort"
	"strings"
	"time"

	"github.com/ncobase/measure/query"
)

// evaluate runs stmt over points the way InfluxDB answers it: filters and
// the time range select rows, group-by tags split them into series, a
// group-by interval sums them into buckets (empty buckets are null) and
// the order and limit apply per series.
func evaluate(points []Point, stmt query.Statement, now time.Time) []Series {
	var since time.Time
	if stmt.Since > 0 {
		since = now.Add(-stmt.Since)
	}

	groups := make(map[string][]Point)
	for _, p := range points {
		if !matches(p, stmt, since) {
			continue
		}
		key := groupKey(p, stmt.GroupByTags)
		groups[key] = append(groups[key], p)
	}
	if len(groups) == 0 {
		return nil
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]Series, 0, len(keys))
	for _, k := range keys {
		members := groups[k]
		s := Series{
			Name:    stmt.Measurement,
			Columns: []string{timeColumn, stmt.Field.Column()},
		}
		if len(stmt.GroupByTags) > 0 {
			s.Tags = make(map[string]string, len(stmt.GroupByTags))
			for _, tag := range stmt.GroupByTags {
				s.Tags[tag] = members[0].Tags[tag]
			}
		}

		if stmt.GroupByTime > 0 {
			s.Values = bucketRows(members, stmt, since, now)
		} else {
			s.Values = pointRows(members, stmt)
		}
		series = append(series, s)
	}
	return series
}

func matches(p Point, stmt query.Statement, since time.Time) bool {
	if p.Measurement != stmt.Measurement {
		return false
	}
	for _, f := range stmt.Filters {
		if p.Tags[f.Key] != f.Value {
			return false
		}
	}
	if !since.IsZero() && !p.Time.After(since) {
		return false
	}
	return true
}

func groupKey(p Point, tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = p.Tags[tag]
	}
	return strings.Join(parts, "\x00")
}

func pointRows(points []Point, stmt query.Statement) [][]any {
	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if stmt.Descending {
			return sorted[i].Time.After(sorted[j].Time)
		}
		return sorted[i].Time.Before(sorted[j].Time)
	})
	if stmt.Limit > 0 && len(sorted) > stmt.Limit {
		sorted = sorted[:stmt.Limit]
	}

	rows := make([][]any, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, []any{formatTime(p.Time), p.Value})
	}
	return rows
}

// bucketRows sums values into GroupByTime buckets covering [since, now].
// Without a time range the buckets span the points themselves.
func bucketRows(points []Point, stmt query.Statement, since, now time.Time) [][]any {
	width := stmt.GroupByTime
	sums := make(map[int64]float64)
	first, last := since, now
	if since.IsZero() {
		first, last = points[0].Time, points[0].Time
		for _, p := range points {
			if p.Time.Before(first) {
				first = p.Time
			}
			if p.Time.After(last) {
				last = p.Time
			}
		}
	}
	for _, p := range points {
		sums[p.Time.Truncate(width).UnixNano()] += p.Value
	}

	var rows [][]any
	for b := first.Truncate(width); !b.After(last); b = b.Add(width) {
		var v any
		if sum, ok := sums[b.UnixNano()]; ok {
			v = sum
		}
		rows = append(rows, []any{formatTime(b), v})
	}

	if stmt.Descending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	if stmt.Limit > 0 && len(rows) > stmt.Limit {
		rows = rows[:stmt.Limit]
	}
	return rows
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
