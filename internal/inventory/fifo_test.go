package inventory

import (
	"math"
	"testing"
	"time"
)

func day(d int) *time.Time {
	t := time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPlanConsumption_SpillsIntoNextBatch(t *testing.T) {
	batches := []Batch{
		{ID: 1, Quantity: 5, ExpiresAt: day(1)},
		{ID: 2, Quantity: 10, ExpiresAt: day(5)},
	}

	plan, remaining := PlanConsumption(batches, 8)

	if remaining != 0 {
		t.Fatalf("expected no remainder, got %v", remaining)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(plan))
	}
	if plan[0].BatchID != 1 || plan[0].Quantity != 5 || plan[0].Remaining != 0 {
		t.Errorf("first batch should be drained: %+v", plan[0])
	}
	if plan[1].BatchID != 2 || plan[1].Quantity != 3 || plan[1].Remaining != 7 {
		t.Errorf("second batch should keep 7: %+v", plan[1])
	}
}

func TestPlanConsumption_SkipsEmptyBatches(t *testing.T) {
	batches := []Batch{
		{ID: 1, Quantity: 0, ExpiresAt: day(1)},
		{ID: 2, Quantity: 4, ExpiresAt: day(2)},
	}

	plan, remaining := PlanConsumption(batches, 3)

	if remaining != 0 {
		t.Fatalf("expected no remainder, got %v", remaining)
	}
	if len(plan) != 1 || plan[0].BatchID != 2 {
		t.Fatalf("expected only batch 2 to be consumed: %+v", plan)
	}
}

func TestPlanConsumption_ReportsShortfall(t *testing.T) {
	batches := []Batch{
		{ID: 1, Quantity: 2},
		{ID: 2, Quantity: 3},
	}

	plan, remaining := PlanConsumption(batches, 10)

	if remaining != 5 {
		t.Fatalf("expected remainder 5, got %v", remaining)
	}
	if len(plan) != 2 {
		t.Fatalf("expected both batches drained, got %+v", plan)
	}
}

func TestPlanConsumption_ExactDrainLeavesInertBatch(t *testing.T) {
	batches := []Batch{{ID: 1, Quantity: 2.5}}

	plan, remaining := PlanConsumption(batches, 2.5)

	if remaining != 0 {
		t.Fatalf("expected no remainder, got %v", remaining)
	}
	if plan[0].Remaining != 0 {
		t.Errorf("batch should hit exactly zero, got %v", plan[0].Remaining)
	}
}

func TestPlanConsumption_FloatResidualWithinTolerance(t *testing.T) {
	batches := []Batch{
		{ID: 1, Quantity: 0.1},
		{ID: 2, Quantity: 0.2},
	}

	_, remaining := PlanConsumption(batches, 0.3)

	if math.Abs(remaining) > QuantityTolerance {
		t.Fatalf("residual %v exceeds tolerance", remaining)
	}
}
