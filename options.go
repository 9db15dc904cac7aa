package tomldoc

import "fmt"

const defaultMaxDepth = 1000

// Option configures a Parser.
type Option func(*options) error

type options struct {
	maxDepth int
}

// MaxDepth returns an Option that bounds how deeply arrays and inline
// tables may nest. This guards against stack exhaustion on hostile
// input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("tomldoc: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
