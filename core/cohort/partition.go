package cohort

// PartitionLevel splits `students` into cohort headcounts that sum to `students`.
//
// Cohorts of `policy.Ideal` are filled first. A remainder that cannot stand alone
// (<= MinSize) is spread one student at a time over the existing cohorts, up to MaxSize;
// a larger remainder becomes its own cohort. If any cohort still ends up below MinSize,
// the whole headcount is split evenly over the same number of cohorts.
//
// Known limitations, kept for compatibility with existing plans:
//   - a level with fewer than MinSize students yields a single undersized cohort;
//   - the even split is not re-checked against MinSize or MaxSize.
func PartitionLevel(students int, policy Policy) ([]int, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if students < 0 {
		return nil, invalidStudents("students")
	}
	return partition(students, policy), nil
}

// partition expects a valid policy and a non-negative student count.
func partition(students int, policy Policy) []int {
	cohorts, remainder := bulkFill(students, policy.Ideal)
	if remainder == 0 {
		return cohorts
	}
	cohorts = absorbRemainder(cohorts, remainder, policy)
	return rebalanceIfBelowMin(cohorts, policy.MinSize)
}

// bulkFill emits as many cohorts of `ideal` students as possible and returns the leftover.
func bulkFill(students, ideal int) (cohorts []int, remainder int) {
	full := students / ideal
	cohorts = make([]int, full)
	for i := range cohorts {
		cohorts[i] = ideal
	}
	return cohorts, students % ideal
}

// absorbRemainder places the leftover students.
// A remainder of at most MinSize is dealt round-robin from the first cohort,
// one student per cohort per pass, skipping cohorts already at MaxSize.
// Whatever cannot be absorbed (no cohorts, or all full) becomes a new cohort.
func absorbRemainder(cohorts []int, remainder int, policy Policy) []int {
	if remainder <= 0 {
		return cohorts
	}
	if remainder > policy.MinSize || len(cohorts) == 0 {
		return append(cohorts, remainder)
	}

	n := len(cohorts)
	skipped := 0 // consecutive full cohorts
	for i := 0; remainder > 0; i = (i + 1) % n {
		if cohorts[i] >= policy.MaxSize {
			skipped++
			if skipped == n {
				return append(cohorts, remainder)
			}
			continue
		}
		cohorts[i]++
		remainder--
		skipped = 0
	}
	return cohorts
}

// rebalanceIfBelowMin splits the total evenly over the same number of cohorts
// when at least one cohort is below `minSize`. The first total%n cohorts get one extra student.
func rebalanceIfBelowMin(cohorts []int, minSize int) []int {
	n := len(cohorts)
	if n == 0 {
		return cohorts
	}

	var total int
	belowMin := false
	for _, size := range cohorts {
		total += size
		if size < minSize {
			belowMin = true
		}
	}
	if !belowMin {
		return cohorts
	}

	base, extra := total/n, total%n
	balanced := make([]int, n)
	for i := range balanced {
		balanced[i] = base
		if i < extra {
			balanced[i]++
		}
	}
	return balanced
}
