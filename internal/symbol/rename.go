package symbol

import "fmt"

// RenameBound returns a copy of f in which every quantifier binds a name
// that no other quantifier binds and that differs from every free variable.
// The k-th binder of x is renamed to "x.k"; '.' cannot occur in parsed
// identifiers, so the fresh names never collide with source names.
func (f *Formula) RenameBound() *Formula {
	r := &renamer{counts: map[string]int{}}
	return r.rename(f, map[string]string{})
}

type renamer struct {
	counts map[string]int
}

func (r *renamer) rename(f *Formula, scope map[string]string) *Formula {
	out := &Formula{Symbol: f.Symbol, Pos: f.Pos}
	switch f.Symbol.Kind {
	case KindVariable:
		if fresh, ok := scope[f.Symbol.Name]; ok {
			out.Symbol.Name = fresh
		}
		return out
	case KindForAll, KindExists:
		name := f.Symbol.Name
		r.counts[name]++
		fresh := fmt.Sprintf("%s.%d", name, r.counts[name])
		out.Symbol.Name = fresh

		prev, shadowed := scope[name]
		scope[name] = fresh
		out.Subs = []*Formula{r.rename(f.Subs[0], scope)}
		if shadowed {
			scope[name] = prev
		} else {
			delete(scope, name)
		}
		return out
	}
	if len(f.Subs) > 0 {
		out.Subs = make([]*Formula, len(f.Subs))
		for i, sub := range f.Subs {
			out.Subs[i] = r.rename(sub, scope)
		}
	}
	return out
}
