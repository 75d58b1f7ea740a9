package db

// RemoveIf returns a new slice without the entries of ar that satisfy the
// predicate pred.
func RemoveIf[T any, A ~[]T](ar A, pred func(t T) bool) []T {
	newar := []T{}
	for _, a := range ar {
		if !pred(a) {
			newar = append(newar, a)
		}
	}
	return newar
}
