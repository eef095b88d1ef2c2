// SPDX-License-Identifier: MIT

package amd

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/sparsix/spmat"
)

var (
	// ErrNilPattern indicates a nil *spmat.Pattern argument.
	ErrNilPattern = errors.New("amd: nil pattern")

	// ErrInsufficientSlack is returned when the pattern's index array lacks
	// the spare capacity (nnz + nnz/5 + 2n) the quotient graph needs to
	// grow elements in place between garbage collections.
	ErrInsufficientSlack = errors.New("amd: pattern capacity below nnz + nnz/5 + 2n")
)

// flip is the self-inverse encoding used to store a back-reference in a
// field that normally holds a non-negative pointer: flip(flip(x)) == x,
// flip(x) < 0 for all x >= 0, and -1 is a fixed point.
func flip(x int) int { return -x - 2 }

// Order computes an approximate-minimum-degree permutation of 0..n-1 for
// the symmetric pattern c (see spmat.AddTranspose). Diagonal entries are
// compacted out first; the elimination graph has no self-edges.
//
// The input is consumed: c's arrays become the working quotient graph.
// On success the result is a bijection on 0..n-1 regardless of the
// pattern's shape (empty and fully dense included).
func Order(c *spmat.Pattern) ([]int, error) {
	if c == nil {
		return nil, ErrNilPattern
	}
	n := c.N
	if n == 0 {
		return []int{}, nil
	}
	cp, ci := c.Ptr, c.Ind
	nzmax := len(ci)
	cnz := cp[n]
	if nzmax < cnz+cnz/5+2*n {
		return nil, fmt.Errorf("amd: have %d, need %d: %w", nzmax, cnz+cnz/5+2*n, ErrInsufficientSlack)
	}

	// The elimination graph has no self-edges: compact any diagonal
	// entries out of the pattern before initialising degrees.
	nz := 0
	for j := 0; j < n; j++ {
		start := nz
		for p := cp[j]; p < cp[j+1]; p++ {
			if ci[p] != j {
				ci[nz] = ci[p]
				nz++
			}
		}
		cp[j] = start
	}
	cp[n] = nz
	cnz = nz

	// Degree threshold above which a node is deferred to the dense block.
	dense := int(math.Max(16, 10*math.Sqrt(float64(n))))
	if dense > n-2 {
		dense = n - 2
	}

	// Workspace: eight integer vectors of length n+1. Node n is the
	// placeholder element that collects dense nodes.
	work := make([]int, 8*(n+1))
	sz := work[0 : n+1]           // adjacency list length per node
	nv := work[n+1 : 2*(n+1)]     // supervariable multiplicity
	next := work[2*(n+1) : 3*(n+1)]
	head := work[3*(n+1) : 4*(n+1)]
	elen := work[4*(n+1) : 5*(n+1)] // leading element count; <0 once dead
	degree := work[5*(n+1) : 6*(n+1)]
	w := work[6*(n+1) : 7*(n+1)] // timestamped scratch for set differences
	hhead := work[7*(n+1) : 8*(n+1)]
	perm := make([]int, n+1) // doubles as the "last" links during elimination

	// Initialise the quotient graph: every node is a supervariable of
	// multiplicity one whose degree equals its adjacency length.
	for k := 0; k < n; k++ {
		sz[k] = cp[k+1] - cp[k]
	}
	sz[n] = 0
	for i := 0; i <= n; i++ {
		head[i] = -1
		perm[i] = -1
		next[i] = -1
		hhead[i] = -1
		nv[i] = 1
		w[i] = 1
		elen[i] = 0
		degree[i] = sz[i]
	}
	mark := wclear(0, 0, w, n)
	elen[n] = -2
	cp[n] = -1
	w[n] = 0

	// Initial degree lists: empty nodes are eliminated outright, dense
	// nodes hang under the placeholder element n, the rest enter their
	// degree bucket.
	nel := 0
	for i := 0; i < n; i++ {
		d := degree[i]
		switch {
		case d == 0:
			elen[i] = -2
			nel++
			cp[i] = -1
			w[i] = 0
		case d > dense:
			nv[i] = 0
			elen[i] = -1
			nel++
			cp[i] = flip(n)
			nv[n]++
		default:
			if head[d] != -1 {
				perm[head[d]] = i
			}
			next[i] = head[d]
			head[d] = i
		}
	}

	mindeg := 0
	lemax := 0
	for nel < n {
		// Select a node of minimum degree.
		k := -1
		for mindeg < n {
			k = head[mindeg]
			if k != -1 {
				break
			}
			mindeg++
		}
		if next[k] != -1 {
			perm[next[k]] = -1
		}
		head[mindeg] = next[k]
		elenk := elen[k]
		nvk := nv[k]
		nel += nvk

		// Garbage collection: compact live adjacency lists to the front
		// of ci when the free tail cannot hold the new element.
		if elenk > 0 && cnz+mindeg >= nzmax {
			for j := 0; j < n; j++ {
				if p := cp[j]; p >= 0 {
					cp[j] = ci[p]      // stash first entry in the head slot
					ci[p] = flip(j)    // and leave a back-reference behind
				}
			}
			q := 0
			for p := 0; p < cnz; {
				j := flip(ci[p])
				p++
				if j >= 0 {
					ci[q] = cp[j]
					cp[j] = q
					q++
					for k3 := 0; k3 < sz[j]-1; k3++ {
						ci[q] = ci[p]
						q++
						p++
					}
				}
			}
			cnz = q
		}

		// Construct the new element k: gather the live supervariables of
		// k itself and of every adjacent element, absorbing the latter.
		dk := 0
		nv[k] = -nvk // flag k while its list is under construction
		p := cp[k]
		pk1 := cnz
		if elenk == 0 {
			pk1 = p // no adjacent elements, build in place
		}
		pk2 := pk1
		for k1 := 1; k1 <= elenk+1; k1++ {
			var e, pj, ln int
			if k1 > elenk {
				e = k // the variables adjacent to k itself
				pj = p
				ln = sz[k] - elenk
			} else {
				e = ci[p] // an adjacent element to absorb
				p++
				pj = cp[e]
				ln = sz[e]
			}
			for k2 := 1; k2 <= ln; k2++ {
				i := ci[pj]
				pj++
				nvi := nv[i]
				if nvi <= 0 {
					continue // dead, or already gathered
				}
				dk += nvi
				nv[i] = -nvi
				ci[pk2] = i
				pk2++
				// Unlink i from its degree bucket.
				if next[i] != -1 {
					perm[next[i]] = perm[i]
				}
				if perm[i] != -1 {
					next[perm[i]] = next[i]
				} else {
					head[degree[i]] = next[i]
				}
			}
			if e != k {
				cp[e] = flip(k) // absorbed element points at k
				w[e] = 0
			}
		}
		if elenk != 0 {
			cnz = pk2
		}
		degree[k] = dk
		cp[k] = pk1
		sz[k] = pk2 - pk1
		elen[k] = -2 // k is now an element

		// Set differences: timestamp w[e] with |Le \ Lk| + mark for every
		// element e adjacent to a variable in the new element.
		mark = wclear(mark, lemax, w, n)
		for pk := pk1; pk < pk2; pk++ {
			i := ci[pk]
			eln := elen[i]
			if eln <= 0 {
				continue
			}
			nvi := -nv[i] // still negated from the gather pass
			wnvi := mark - nvi
			for p := cp[i]; p <= cp[i]+eln-1; p++ {
				e := ci[p]
				switch {
				case w[e] >= mark:
					w[e] -= nvi
				case w[e] != 0:
					w[e] = degree[e] + wnvi
				}
			}
		}

		// Degree update: compute the approximate external degree of every
		// variable in the new element, prune absorbed elements, and hash
		// each variable for supernode detection.
		for pk := pk1; pk < pk2; pk++ {
			i := ci[pk]
			p1 := cp[i]
			p2 := p1 + elen[i] - 1
			pn := p1
			h, d := 0, 0
			for p := p1; p <= p2; p++ {
				e := ci[p]
				if w[e] == 0 {
					continue // already absorbed
				}
				dext := w[e] - mark
				if dext > 0 {
					d += dext
					ci[pn] = e
					pn++
					h += e
				} else {
					// Le is a subset of Lk: absorb e into k.
					cp[e] = flip(k)
					w[e] = 0
				}
			}
			elen[i] = pn - p1 + 1
			p3 := pn
			p4 := p1 + sz[i]
			for p := p2 + 1; p < p4; p++ {
				j := ci[p]
				nvj := nv[j]
				if nvj <= 0 {
					continue
				}
				d += nvj
				ci[pn] = j
				pn++
				h += j
			}
			if d == 0 {
				// i's adjacency is exactly the new element: mass elimination.
				cp[i] = flip(k)
				nvi := -nv[i]
				dk -= nvi
				nvk += nvi
				nel += nvi
				nv[i] = 0
				elen[i] = -1
			} else {
				if d < degree[i] {
					degree[i] = d
				}
				ci[pn] = ci[p3] // move first variable behind the elements
				ci[p3] = ci[p1]
				ci[p1] = k // the new element becomes the list head
				sz[i] = pn - p1 + 1
				h %= n
				next[i] = hhead[h]
				hhead[h] = i
				perm[i] = h // stash the hash for the detection pass
			}
		}
		degree[k] = dk
		if dk > lemax {
			lemax = dk
		}
		mark = wclear(mark+lemax, lemax, w, n)

		// Supernode detection: variables in the same hash bucket with
		// identical adjacency lists are merged into one supervariable.
		for pk := pk1; pk < pk2; pk++ {
			i := ci[pk]
			if nv[i] >= 0 {
				continue // already processed or merged away
			}
			h := perm[i]
			i = hhead[h]
			hhead[h] = -1
			for i != -1 && next[i] != -1 {
				ln := sz[i]
				eln := elen[i]
				for p := cp[i] + 1; p <= cp[i]+ln-1; p++ {
					w[ci[p]] = mark
				}
				jlast := i
				for j := next[i]; j != -1; {
					ok := sz[j] == ln && elen[j] == eln
					for p := cp[j] + 1; ok && p <= cp[j]+ln-1; p++ {
						if w[ci[p]] != mark {
							ok = false
						}
					}
					if ok {
						cp[j] = flip(i)
						nv[i] += nv[j]
						nv[j] = 0
						elen[j] = -1
						j = next[j]
						next[jlast] = j
					} else {
						jlast = j
						j = next[j]
					}
				}
				i = next[i]
				mark++
			}
		}

		// Finalize the new element: restore multiplicities, assign the
		// approximate degrees, and re-enter survivors into their buckets.
		p = pk1
		for pk := pk1; pk < pk2; pk++ {
			i := ci[pk]
			nvi := -nv[i]
			if nvi <= 0 {
				continue
			}
			nv[i] = nvi
			d := degree[i] + dk - nvi
			if nd := n - nel - nvi; d > nd {
				d = nd
			}
			if head[d] != -1 {
				perm[head[d]] = i
			}
			next[i] = head[d]
			perm[i] = -1
			head[d] = i
			if d < mindeg {
				mindeg = d
			}
			degree[i] = d
			ci[p] = i
			p++
		}
		nv[k] = nvk
		sz[k] = p - pk1
		if sz[k] == 0 {
			cp[k] = -1 // element k is empty, nothing points at it
			w[k] = 0
		}
		if elenk != 0 {
			cnz = p
		}
	}

	// Postorder the elimination tree. cp currently holds flipped parent
	// references; -1 stays -1, so roots survive the unflip.
	for i := 0; i < n; i++ {
		cp[i] = flip(cp[i])
	}
	for j := 0; j <= n; j++ {
		head[j] = -1
	}
	// Children lists in ascending order: absorbed variables first...
	for j := n; j >= 0; j-- {
		if nv[j] > 0 {
			continue
		}
		next[j] = head[cp[j]]
		head[cp[j]] = j
	}
	// ...then absorbed elements.
	for e := n; e >= 0; e-- {
		if nv[e] <= 0 {
			continue
		}
		if cp[e] != -1 {
			next[e] = head[cp[e]]
			head[cp[e]] = e
		}
	}
	// Depth-first postorder over all roots; node n is always the final
	// root, so perm[0:n] is a bijection on 0..n-1.
	for k, i := 0, 0; i <= n; i++ {
		if cp[i] == -1 {
			k = tdfs(i, k, head, next, perm, w)
		}
	}

	return perm[:n], nil
}

// wclear resets the timestamp workspace when the rolling mark is about to
// wrap, preserving only the alive/dead distinction.
func wclear(mark, lemax int, w []int, n int) int {
	if mark < 2 || mark+lemax < 0 {
		for k := 0; k < n; k++ {
			if w[k] != 0 {
				w[k] = 1
			}
		}
		mark = 2
	}

	return mark
}

// tdfs emits the depth-first postorder of the tree rooted at j into post,
// starting at position k, using stack as scratch. Returns the next free
// position. head/next are the child lists built above; head is consumed.
func tdfs(j, k int, head, next, post, stack []int) int {
	top := 0
	stack[0] = j
	for top >= 0 {
		p := stack[top]
		i := head[p]
		if i == -1 {
			top--
			post[k] = p
			k++
		} else {
			head[p] = next[i]
			top++
			stack[top] = i
		}
	}

	return k
}
