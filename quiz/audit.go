package quiz

import (
	"fmt"
	"sort"
)

// AuditNumbering reports declared numbers that appear on more than one
// block, then every number missing from the [min, max] range of the
// numbers present. It runs independently of block classification.
func AuditNumbering(blocks []Block) []Diagnostic {
	counts := make(map[int]int)
	var order []int
	for _, b := range blocks {
		if b.DeclaredNumber == nil {
			continue
		}
		n := *b.DeclaredNumber
		if counts[n] == 0 {
			order = append(order, n)
		}
		counts[n]++
	}
	if len(order) == 0 {
		return nil
	}

	var diags []Diagnostic
	for _, n := range order {
		if counts[n] > 1 {
			diags = append(diags, Diagnostic{
				Index:  intPtr(n),
				Reason: ReasonDuplicateNumber,
				Note:   fmt.Sprintf("number %d appears on %d blocks", n, counts[n]),
			})
		}
	}

	present := make([]int, len(order))
	copy(present, order)
	sort.Ints(present)
	lo, hi := present[0], present[len(present)-1]
	for n := lo; n <= hi; n++ {
		if counts[n] == 0 {
			diags = append(diags, Diagnostic{
				Index:  intPtr(n),
				Reason: ReasonMissingNumber,
				Note:   fmt.Sprintf("no block numbered %d between %d and %d", n, lo, hi),
			})
		}
	}
	return diags
}
