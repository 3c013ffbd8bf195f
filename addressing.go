package peel

// index computes the row-major linear address of p inside size's index
// domain: absolute = sum_i p[i] * product_{j<i} length(j), axis 0 fastest.
// Fails with a MembershipViolation if p falls outside size.
func index(size Size, p Position, op string) (int, error) {
	if p.Dim() != size.Dim() {
		return 0, invariantf(op, "dimension mismatch: %d vs %d", p.Dim(), size.Dim())
	}
	if !size.Contains(p) {
		return 0, membershipf(op, "position %v outside image bounds", p.Coords())
	}
	abs := 0
	stride := 1
	for axis := 0; axis < size.Dim(); axis++ {
		abs += p.At(axis) * stride
		stride *= size.Length(axis)
	}
	return abs, nil
}
