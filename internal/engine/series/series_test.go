package series

import (
	"math"
	"testing"
	"time"

	"hookdash/internal/platform/models"
)

func eventAt(ts string) *models.WebhookEvent {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return &models.WebhookEvent{CreatedAt: t.UnixMilli()}
}

func TestBucketByMinute(t *testing.T) {
	events := []*models.WebhookEvent{
		eventAt("2026-08-30T10:00:05Z"),
		eventAt("2026-08-30T10:00:45Z"),
		eventAt("2026-08-30T10:01:10Z"),
	}

	buckets := BucketByMinute(events)

	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}

	tenOClock := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC).Unix()
	tenOhOne := time.Date(2026, 8, 30, 10, 1, 0, 0, time.UTC).Unix()

	if buckets[tenOClock] != 2 {
		t.Errorf("Expected 2 events at 10:00, got %d", buckets[tenOClock])
	}
	if buckets[tenOhOne] != 1 {
		t.Errorf("Expected 1 event at 10:01, got %d", buckets[tenOhOne])
	}
}

func TestBucketByMinute_OrderIndependent(t *testing.T) {
	forward := []*models.WebhookEvent{
		eventAt("2026-08-30T10:00:05Z"),
		eventAt("2026-08-30T10:01:10Z"),
		eventAt("2026-08-30T10:02:59Z"),
	}
	reversed := []*models.WebhookEvent{forward[2], forward[1], forward[0]}

	a := BucketByMinute(forward)
	b := BucketByMinute(reversed)

	if len(a) != len(b) {
		t.Fatalf("Bucket counts differ: %d vs %d", len(a), len(b))
	}
	for k, v := range a {
		if b[k] != v {
			t.Errorf("Bucket %d differs: %d vs %d", k, v, b[k])
		}
	}
}

func TestBuild_SortedAscending(t *testing.T) {
	events := []*models.WebhookEvent{
		eventAt("2026-08-30T10:02:00Z"),
		eventAt("2026-08-30T10:00:00Z"),
		eventAt("2026-08-30T10:01:00Z"),
		eventAt("2026-08-30T10:01:30Z"),
	}

	points := Build(BucketByMinute(events))

	expected := []Point{
		{Label: "10:00", Value: 1},
		{Label: "10:01", Value: 2},
		{Label: "10:02", Value: 1},
	}
	if len(points) != len(expected) {
		t.Fatalf("Expected %d points, got %d", len(expected), len(points))
	}
	for i, p := range points {
		if p != expected[i] {
			t.Errorf("Point %d: expected %+v, got %+v", i, expected[i], p)
		}
	}
}

func TestRecent_FiltersWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	events := []*models.WebhookEvent{
		eventAt("2026-08-30T11:59:00Z"), // inside
		eventAt("2026-08-30T11:00:00Z"), // boundary, inside
		eventAt("2026-08-30T10:59:59Z"), // outside
		eventAt("2026-08-30T09:00:00Z"), // outside
	}

	points := Recent(events, now, time.Hour)

	if Total(points) != 2 {
		t.Errorf("Expected 2 events inside the window, got %d", Total(points))
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		expected float64
	}{
		{"rising", []int{2, 4, 10, 10}, 233.3333},
		{"flat", []int{5, 5, 5, 5}, 0},
		{"falling", []int{10, 10, 2, 4}, -70},
		{"odd length splits floor", []int{2, 4, 6}, 150}, // first=[2], second=[4,6]
		{"single point", []int{7}, 0},
		{"empty", nil, 0},
		{"zero first half", []int{0, 0, 3, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]Point, len(tt.counts))
			for i, c := range tt.counts {
				points[i] = Point{Value: c}
			}

			got := Delta(points)

			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("Delta must be finite, got %v", got)
			}
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
