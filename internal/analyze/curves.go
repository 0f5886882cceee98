package analyze

// curveSet accumulates one value per sampled commit for every curve
// key. Keys can be registered up front (cohorts and authors are known
// after the commit listing) or appear mid-walk (extensions show up as
// trees are visited); late keys get a zero prefix so every curve ends
// up the same length.
type curveSet struct {
	values map[Key][]int
	n      int
}

func newCurveSet() *curveSet {
	return &curveSet{values: make(map[Key][]int)}
}

// register adds a key with an empty curve if it is not yet tracked.
func (c *curveSet) register(k Key) {
	if _, ok := c.values[k]; !ok {
		c.values[k] = make([]int, c.n)
	}
}

// observe appends one commit's histogram to all curves. Survival (sha)
// keys are tracked separately and skipped here.
func (c *curveSet) observe(h Histogram) {
	for k, curve := range c.values {
		c.values[k] = append(curve, h[k])
	}
	for k, v := range h {
		if k.Kind == KindSHA {
			continue
		}
		if _, ok := c.values[k]; !ok {
			curve := make([]int, c.n+1)
			curve[c.n] = v
			c.values[k] = curve
		}
	}
	c.n++
}

// byKind extracts the curves of one kind, keyed by item label.
func (c *curveSet) byKind(kind string) map[string][]int {
	out := make(map[string][]int)
	for k, curve := range c.values {
		if k.Kind == kind {
			out[k.Item] = curve
		}
	}
	return out
}
