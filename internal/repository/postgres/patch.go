package postgres

import "fmt"

// appendSet collects one "col = $n" assignment when val is present.
// Usecases guarantee patches are non-empty before they reach a repository.
func appendSet(cols *[]string, args *[]interface{}, column string, val *string) {
	if val == nil {
		return
	}
	*args = append(*args, *val)
	*cols = append(*cols, fmt.Sprintf("%s = $%d", column, len(*args)))
}
