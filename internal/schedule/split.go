package schedule

// SplitHours divides a week's total hours across dayCount days as whole
// hours. Every day receives the floored average; the remainder goes to the
// earliest days, one hour each, so the sum is conserved exactly for integral
// totals. Fractional totals are floored before splitting.
func SplitHours(total float64, dayCount int) []int {
	if dayCount <= 0 {
		return nil
	}
	whole := int(total)
	if whole < 0 {
		whole = 0
	}

	base := whole / dayCount
	remainder := whole % dayCount

	days := make([]int, dayCount)
	for i := range days {
		days[i] = base
		if i < remainder {
			days[i]++
		}
	}
	return days
}
