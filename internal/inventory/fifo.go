package inventory

import "fmt"

// QuantityTolerance absorbs float rounding when checking whether a
// requirement was fully satisfied.
const QuantityTolerance = 1e-6

// InsufficientStockError is returned when the batches of an ingredient
// cannot cover a required quantity.
type InsufficientStockError struct {
	IngredientID int64
	Required     float64
	Short        float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for ingredient ID %d", e.IngredientID)
}

// Deduction is one planned decrement against a single batch.
type Deduction struct {
	BatchID   int64
	Quantity  float64
	Remaining float64
}

// PlanConsumption walks batches in the order given (callers fetch them
// FIFO: ascending expiry, falling back to received date) and allocates the
// required quantity across them. Zero-quantity batches are skipped, never
// removed. Returns the per-batch deductions and the unsatisfied remainder.
func PlanConsumption(batches []Batch, required float64) ([]Deduction, float64) {
	remaining := required
	var plan []Deduction

	for _, b := range batches {
		if remaining <= 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}

		used := b.Quantity
		if remaining < used {
			used = remaining
		}

		plan = append(plan, Deduction{
			BatchID:   b.ID,
			Quantity:  used,
			Remaining: b.Quantity - used,
		})
		remaining -= used
	}

	return plan, remaining
}
