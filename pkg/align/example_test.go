package align_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sbomdiff/pkg/align"
)

func Example() {
	seqs := [][]string{
		{"./a.c", "./b.c"},
		{"./a.c", "./c.c"},
	}
	cmp := func(a, b string) (int, error) { return strings.Compare(a, b), nil }
	eq := func(a string, _ int, b string, _ int) (bool, error) { return a == b, nil }

	for row, err := range align.New(seqs, cmp, eq).Rows() {
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(row.Values[0], row.Values[1], row.Equal)
	}
	// Output:
	// ./a.c ./a.c true
	// ./b.c <absent> false
	// <absent> ./c.c false
}
