package planner

import (
	"errors"
	"math"
	"testing"

	"agro-mission-service/internal/domain"
)

func pathOfLengths(lengths ...float64) domain.CoveragePath {
	swaths := make([]domain.Swath, 0, len(lengths))
	y := 0.0
	for i, l := range lengths {
		swaths = append(swaths, domain.Swath{
			Index:   i,
			Line:    domain.LineString{{X: 0, Y: y}, {X: l, Y: y}},
			LengthM: l,
		})
		y += 20
	}
	return domain.CoveragePath{Swaths: swaths}
}

func testProfile(capacityL float64) domain.AircraftProfile {
	return domain.AircraftProfile{
		SprayWidthM:    20,
		TurnRadiusM:    40,
		TotalCapacityL: capacityL,
		MixRateLPerHa:  10,
		FuelBurnLPerKm: 0.5,
		HeadlandFactor: 3,
		RouteOrder:     domain.RouteOrderSnake,
		Objective:      domain.ObjectiveNSwath,
	}
}

// checkPartition asserts trips cover [0, n-1] contiguously, in order, with
// no gaps or overlaps.
func checkPartition(t *testing.T, trips []domain.Trip, n int) {
	t.Helper()
	next := 0
	for i, tr := range trips {
		if tr.StartIdx != next {
			t.Fatalf("trip %d starts at %d, want %d", i, tr.StartIdx, next)
		}
		if tr.EndIdx < tr.StartIdx {
			t.Fatalf("trip %d has end %d < start %d", i, tr.EndIdx, tr.StartIdx)
		}
		next = tr.EndIdx + 1
	}
	if next != n {
		t.Fatalf("trips cover [0,%d), want [0,%d)", next, n)
	}
}

// 10 swaths of 100 m at 2 L each against a 100 L tank: one trip of 20 L.
func TestSegmentTripsSingleTrip(t *testing.T) {
	path := pathOfLengths(100, 100, 100, 100, 100, 100, 100, 100, 100, 100)
	log := &BuildLog{}

	trips, err := SegmentTrips(path, testProfile(100), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	checkPartition(t, trips, 10)
	if math.Abs(trips[0].MixUsedL-20) > 1e-9 {
		t.Fatalf("mix = %v, want 20", trips[0].MixUsedL)
	}
	if len(log.Lines()) == 0 {
		t.Fatal("expected segmentation log lines")
	}
}

// Same swaths with a 5 L tank: 2 swaths fit (4 L), 3 do not (6 L), so 5
// trips of 2 swaths carrying 4 L each.
func TestSegmentTripsCapacitySplits(t *testing.T) {
	path := pathOfLengths(100, 100, 100, 100, 100, 100, 100, 100, 100, 100)

	trips, err := SegmentTrips(path, testProfile(5), &BuildLog{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trips) != 5 {
		t.Fatalf("expected 5 trips, got %d", len(trips))
	}
	checkPartition(t, trips, 10)
	for i, tr := range trips {
		if tr.EndIdx-tr.StartIdx != 1 {
			t.Errorf("trip %d spans [%d..%d], want 2 swaths", i, tr.StartIdx, tr.EndIdx)
		}
		if math.Abs(tr.MixUsedL-4) > 1e-9 {
			t.Errorf("trip %d mix = %v, want 4", i, tr.MixUsedL)
		}
	}
}

func TestSegmentTripsSingleSwathTooLarge(t *testing.T) {
	// One 100 m swath demands 2 L; tank holds 1 L.
	path := pathOfLengths(100)

	_, err := SegmentTrips(path, testProfile(1), &BuildLog{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded", err)
	}
}

func TestSegmentTripsEmptyPath(t *testing.T) {
	trips, err := SegmentTrips(domain.CoveragePath{}, testProfile(100), &BuildLog{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(trips))
	}
}

// Partition and capacity invariants hold for uneven swath lengths.
func TestSegmentTripsInvariants(t *testing.T) {
	lengths := []float64{40, 250, 90, 310, 15, 120, 200, 75, 180, 60, 145, 95}
	path := pathOfLengths(lengths...)
	profile := testProfile(10)

	trips, err := SegmentTrips(path, profile, &BuildLog{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkPartition(t, trips, len(lengths))

	totalMix := 0.0
	for i, tr := range trips {
		if tr.MixUsedL > profile.TotalCapacityL+1e-9 {
			t.Errorf("trip %d mix %v exceeds capacity %v", i, tr.MixUsedL, profile.TotalCapacityL)
		}
		totalMix += tr.MixUsedL
	}

	wantMix := 0.0
	for _, l := range lengths {
		wantMix += profile.MixPerSwathL(l)
	}
	if math.Abs(totalMix-wantMix)/wantMix > 1e-6 {
		t.Fatalf("total mix = %v, want %v", totalMix, wantMix)
	}
}

// Delayed closure: a trip only closes when the next swath would overflow.
func TestSegmentTripsGreedyClosure(t *testing.T) {
	// Mix demands: 2, 2, 2, 2 against capacity 6.4 -> trips of 3 and 1.
	path := pathOfLengths(100, 100, 100, 100)

	trips, err := SegmentTrips(path, testProfile(6.4), &BuildLog{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].EndIdx != 2 {
		t.Fatalf("first trip ends at %d, want 2", trips[0].EndIdx)
	}
	checkPartition(t, trips, 4)
}
