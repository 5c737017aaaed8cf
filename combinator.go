package modular

// Branch pairs a component factory with the weight its output contributes
// to a parallel mix.
type Branch[E any] struct {
	Weight  float64
	Factory Factory[E]
}

// Serial chains components in order: the output of one stage is the input of
// the next. An empty chain is the identity. The chain owns two scratch
// buffers which the stages ping-pong between, the destination is zeroed
// before every stage so no stale samples leak through. Buffers are sized on
// first use and resized only when the output length changes.
func Serial[E any](factories ...Factory[E]) Factory[E] {
	return func(b *Builder[E]) ComponentFunc[E] {
		components := make([]ComponentFunc[E], 0, len(factories))
		for _, factory := range factories {
			components = append(components, factory(b))
		}
		var bufA, bufB []float64
		return func(rt *Runtime[E], in, out []float64, sampleRate float64) {
			if len(components) == 0 {
				copy(out, in)
				return
			}
			if len(bufA) != len(out) {
				bufA = resized(bufA, len(out))
				bufB = resized(bufB, len(out))
			}
			clear(bufA)
			copy(bufA, in)
			src, dst := bufA, bufB
			for _, component := range components {
				clear(dst)
				component(rt, src, dst, sampleRate)
				src, dst = dst, src
			}
			copy(out, src)
		}
	}
}

// Parallel runs every branch on the same input and accumulates the weighted
// outputs. Weights are not normalized, the sum may exceed unit amplitude, a
// limiter further down the chain is the place to handle that. Each branch
// owns one scratch buffer.
func Parallel[E any](branches ...Branch[E]) Factory[E] {
	return func(b *Builder[E]) ComponentFunc[E] {
		weights := make([]float64, 0, len(branches))
		components := make([]ComponentFunc[E], 0, len(branches))
		for _, branch := range branches {
			weights = append(weights, branch.Weight)
			components = append(components, branch.Factory(b))
		}
		scratch := make([][]float64, len(components))
		return func(rt *Runtime[E], in, out []float64, sampleRate float64) {
			clear(out)
			for i, component := range components {
				if len(scratch[i]) != len(out) {
					scratch[i] = resized(scratch[i], len(out))
				}
				clear(scratch[i])
				component(rt, in, scratch[i], sampleRate)
				for j := range out {
					out[j] += scratch[i][j] * weights[i]
				}
			}
		}
	}
}

// resized grows the buffer only when capacity requires it.
func resized(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
