package alg

import (
	"sort"
	"strconv"
	"strings"
)

// Partition is an equivalence relation on {0..n-1} kept as a union-find
// forest. Methods may compress paths, so a Partition is not safe for
// concurrent use.
type Partition struct {
	parent []int
}

// Zero returns the identity relation on n elements.
func Zero(n int) *Partition {
	p := &Partition{parent: make([]int, n)}
	for i := range p.parent {
		p.parent[i] = i
	}
	return p
}

// One returns the total relation on n elements.
func One(n int) *Partition {
	p := Zero(n)
	for i := 1; i < n; i++ {
		p.Union(0, i)
	}
	return p
}

// Len is the size of the underlying set.
func (p *Partition) Len() int { return len(p.parent) }

// Find returns the representative of x.
func (p *Partition) Find(x int) int {
	root := x
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[x] != root {
		p.parent[x], x = root, p.parent[x]
	}
	return root
}

// Union merges the blocks of x and y and reports whether they were distinct.
// The smaller representative becomes the root.
func (p *Partition) Union(x, y int) bool {
	rx, ry := p.Find(x), p.Find(y)
	if rx == ry {
		return false
	}
	if ry < rx {
		rx, ry = ry, rx
	}
	p.parent[ry] = rx
	return true
}

// Same reports whether x and y are in one block.
func (p *Partition) Same(x, y int) bool {
	return p.Find(x) == p.Find(y)
}

// Clone returns an independent copy.
func (p *Partition) Clone() *Partition {
	return &Partition{parent: append([]int(nil), p.parent...)}
}

// Join returns the smallest equivalence containing p and q.
func (p *Partition) Join(q *Partition) *Partition {
	out := p.Clone()
	for x := range q.parent {
		out.Union(x, q.Find(x))
	}
	return out
}

// Meet returns the intersection of p and q.
func (p *Partition) Meet(q *Partition) *Partition {
	out := Zero(p.Len())
	for x := range p.parent {
		for y := 0; y < x; y++ {
			if p.Same(x, y) && q.Same(x, y) {
				out.Union(x, y)
				break
			}
		}
	}
	return out
}

// Leq reports whether p is contained in q.
func (p *Partition) Leq(q *Partition) bool {
	for x := range p.parent {
		if !q.Same(x, p.Find(x)) {
			return false
		}
	}
	return true
}

// IsZero reports whether every block is a singleton.
func (p *Partition) IsZero() bool {
	for x := range p.parent {
		if p.Find(x) != x {
			return false
		}
	}
	return true
}

// NumBlocks returns the number of blocks.
func (p *Partition) NumBlocks() int {
	n := 0
	for x := range p.parent {
		if p.Find(x) == x {
			n++
		}
	}
	return n
}

// Blocks returns the blocks ordered by least element.
func (p *Partition) Blocks() [][]int {
	index := map[int]int{}
	var blocks [][]int
	for x := range p.parent {
		r := p.Find(x)
		i, ok := index[r]
		if !ok {
			i = len(blocks)
			index[r] = i
			blocks = append(blocks, nil)
		}
		blocks[i] = append(blocks[i], x)
	}
	return blocks
}

// Key is a canonical string identifying the partition. Since roots are
// always the least element of their block, the root vector is canonical.
func (p *Partition) Key() string {
	var b strings.Builder
	for x := range p.parent {
		if x > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p.Find(x)))
	}
	return b.String()
}

func (p *Partition) String() string {
	var b strings.Builder
	b.WriteByte('|')
	for _, block := range p.Blocks() {
		for i, x := range block {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(x))
		}
		b.WriteByte('|')
	}
	return b.String()
}

func sortPartitions(ps []*Partition) {
	sort.Slice(ps, func(i, j int) bool {
		bi, bj := ps[i].NumBlocks(), ps[j].NumBlocks()
		if bi != bj {
			return bi > bj
		}
		return ps[i].Key() < ps[j].Key()
	})
}
