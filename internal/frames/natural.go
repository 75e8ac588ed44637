package frames

import (
	"strings"

	"github.com/maruel/natural"
)

// naturalCompare 把连续数字当成整数比较，给 slices.SortFunc 用
func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return strings.Compare(a, b)
}
