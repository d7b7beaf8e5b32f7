package printer

import "github.com/roach88/modelgen/internal/alg"

// Counter counts models without rendering them.
type Counter struct {
	N int
}

func (c *Counter) Comment(string) error { return nil }

func (c *Counter) Algebra(alg.Algebra) error {
	c.N++
	return nil
}
