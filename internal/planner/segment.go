package planner

import (
	"agro-mission-service/internal/domain"
)

// Trip-buffer states for the segmentation state machine. Transitions are
// forward-only: empty -> accumulating -> (closed, then empty or accumulating
// again for the next trip).
type bufferState int

const (
	bufferEmpty bufferState = iota
	bufferAccumulating
)

// SegmentTrips partitions the coverage path into contiguous, capacity
// respecting trips using a forward single-pass greedy closure.
//
// Swath order is fixed by the planner and capacity is consumed monotonically
// along it, so closing each trip as late as possible minimizes trip count;
// no reordering or bin-packing is attempted. A swath whose own mix demand
// exceeds tank capacity makes segmentation infeasible (swaths are atomic).
//
// The returned trips carry index ranges and mix volumes only; transit
// geometry, lengths, and fuel are attached by later stages.
func SegmentTrips(path domain.CoveragePath, profile domain.AircraftProfile, log *BuildLog) ([]domain.Trip, error) {
	trips := make([]domain.Trip, 0, 4)

	state := bufferEmpty
	startIdx := 0
	bufMix := 0.0

	closeTrip := func(endIdx int) {
		trips = append(trips, domain.Trip{
			StartIdx: startIdx,
			EndIdx:   endIdx,
			MixUsedL: bufMix,
		})
		log.Appendf("trip %d closed: swaths [%d..%d] mix=%.2fL", len(trips)-1, startIdx, endIdx, bufMix)
		state = bufferEmpty
		bufMix = 0
	}

	for i, swath := range path.Swaths {
		inc := profile.MixPerSwathL(swath.LengthM)
		if inc > profile.TotalCapacityL {
			log.Appendf("swath %d demands %.2fL alone, tank holds %.2fL", i, inc, profile.TotalCapacityL)
			return nil, capacityf(
				"swath %d needs %.2fL of mix, exceeding tank capacity %.2fL",
				i, inc, profile.TotalCapacityL)
		}

		switch state {
		case bufferEmpty:
			state = bufferAccumulating
			startIdx = i
			bufMix = inc
			log.Appendf("trip opened at swath %d (mix=%.2fL)", i, bufMix)
		case bufferAccumulating:
			if bufMix+inc <= profile.TotalCapacityL {
				bufMix += inc
				continue
			}
			// Capacity check failed: close at the previous swath and reopen.
			log.Appendf("capacity check at swath %d: %.2fL + %.2fL > %.2fL", i, bufMix, inc, profile.TotalCapacityL)
			closeTrip(i - 1)
			state = bufferAccumulating
			startIdx = i
			bufMix = inc
			log.Appendf("trip opened at swath %d (mix=%.2fL)", i, bufMix)
		}
	}

	if state == bufferAccumulating {
		closeTrip(len(path.Swaths) - 1)
	}

	log.Appendf("segmentation complete: %d swaths -> %d trips", len(path.Swaths), len(trips))
	return trips, nil
}
