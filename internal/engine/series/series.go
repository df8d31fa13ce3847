// Package series turns persisted webhook events into per-minute chart
// data: bucket counts, an ordered series, and a trend delta.
package series

import (
	"sort"
	"time"

	"hookdash/internal/platform/models"
)

// Point is one chart sample.
type Point struct {
	Label string `json:"date"`
	Value int    `json:"value"`
}

const DefaultWindow = time.Hour

// BucketByMinute counts events per minute bucket, keyed on the bucket
// start as a unix second. Input order does not matter; minutes with no
// events produce no bucket, so idle periods show as gaps.
func BucketByMinute(events []*models.WebhookEvent) map[int64]int {
	buckets := make(map[int64]int)
	for _, ev := range events {
		start := time.UnixMilli(ev.CreatedAt).UTC().Truncate(time.Minute)
		buckets[start.Unix()]++
	}
	return buckets
}

// Build sorts buckets ascending by start instant and renders labels.
func Build(buckets map[int64]int) []Point {
	starts := make([]int64, 0, len(buckets))
	for s := range buckets {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	points := make([]Point, 0, len(starts))
	for _, s := range starts {
		points = append(points, Point{
			Label: time.Unix(s, 0).UTC().Format("15:04"),
			Value: buckets[s],
		})
	}
	return points
}

// Recent buckets only the events within the trailing window before
// now. The caller injects the clock so the window is testable.
func Recent(events []*models.WebhookEvent, now time.Time, window time.Duration) []Point {
	if window <= 0 {
		window = DefaultWindow
	}
	cutoff := now.Add(-window).UnixMilli()

	var recent []*models.WebhookEvent
	for _, ev := range events {
		if ev.CreatedAt >= cutoff {
			recent = append(recent, ev)
		}
	}
	return Build(BucketByMinute(recent))
}

// Delta is the percentage change between the averages of the first
// floor(n/2) points and the rest, split by index. Fewer than two
// points, or a zero first-half average, yields 0 so the result is
// always finite.
func Delta(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	mid := len(points) / 2
	first := avg(points[:mid])
	second := avg(points[mid:])
	if first == 0 {
		return 0
	}
	return (second - first) / first * 100
}

// Total sums the series counts.
func Total(points []Point) int {
	sum := 0
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

func avg(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Value
	}
	return float64(sum) / float64(len(points))
}
