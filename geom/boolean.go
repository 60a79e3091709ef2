package geom

import (
	"math"
	"sort"
)

// This file implements the polygon boolean algebra spec.md §9 asks
// for (union, difference, convex hull) on top of the standard library,
// since no Vatti/Martinez/Clipper-style clipping library appears in
// any go.mod across the retrieved pack (see DESIGN.md). Two simple
// (non-self-intersecting, hole-free) rings are combined with a
// Greiner-Hormann clip; n-ary union/difference folds that pairwise
// operation across a MultiPolygon's polygon list, and holes created by
// subtraction are carried separately on the resulting Polygon.

type clipOp int

const (
	opUnion clipOp = iota
	opDifference
)

// Union returns the union of every polygon across a and b, folded
// pairwise. Union's operands are hole-free in practice: only Negative,
// downstream of Union in the evaluation pipeline, introduces holes.
func Union(a, b MultiPolygon) MultiPolygon {
	rings := make([]Ring, 0, len(a.Polygons)+len(b.Polygons))
	for _, p := range a.Polygons {
		rings = append(rings, p.Outer)
	}
	for _, p := range b.Polygons {
		rings = append(rings, p.Outer)
	}
	merged := unionRings(rings)
	out := MultiPolygon{Polygons: make([]Polygon, len(merged))}
	for i, r := range merged {
		out.Polygons[i] = Polygon{Outer: r}
	}
	return out
}

// UnionAll folds Union across every element of mps.
func UnionAll(mps []MultiPolygon) MultiPolygon {
	var acc MultiPolygon
	for _, mp := range mps {
		acc = Union(acc, mp)
	}
	return acc
}

// unionRings repeatedly merges any pair of rings that touch or
// overlap until no more merges are possible, leaving a minimal set of
// disjoint (or mutually exclusive) rings.
func unionRings(rings []Ring) []Ring {
	merged := append([]Ring{}, rings...)
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(merged) && !changed; i++ {
			for j := i + 1; j < len(merged); j++ {
				res, ok := pairwiseUnion(merged[i], merged[j])
				if ok && len(res) == 1 {
					merged[i] = res[0]
					merged = append(merged[:j], merged[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
	return merged
}

// pairwiseUnion returns the union of two simple rings. ok is false
// when the rings are disjoint and should remain separate output
// rings.
func pairwiseUnion(a, b Ring) ([]Ring, bool) {
	isects := findIntersections(a, b)
	if len(isects) == 0 {
		if ringContainsRing(a, b) {
			return []Ring{a}, true
		}
		if ringContainsRing(b, a) {
			return []Ring{b}, true
		}
		return nil, false
	}
	la := buildVertexList(a, isects, true)
	lb := buildVertexList(b, isects, false)
	markEntryExit(la, b, false)
	markEntryExit(lb, a, false)
	out := traceContours(la, lb, opUnion)
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// Difference subtracts every polygon in subtrahend from every polygon
// in minuend, returning the resulting (possibly holed) MultiPolygon.
func Difference(minuend, subtrahend MultiPolygon) MultiPolygon {
	out := make([]Polygon, len(minuend.Polygons))
	copy(out, minuend.Polygons)
	for _, sub := range subtrahend.Polygons {
		var next []Polygon
		for _, poly := range out {
			next = append(next, subtractRing(poly, sub.Outer)...)
		}
		out = next
	}
	return MultiPolygon{Polygons: out}
}

func subtractRing(poly Polygon, cut Ring) []Polygon {
	isects := findIntersections(poly.Outer, cut)
	if len(isects) == 0 {
		if ringContainsRing(poly.Outer, cut) {
			holes := append(append([]Ring{}, poly.Holes...), cut)
			return []Polygon{{Outer: poly.Outer, Holes: unionRings(holes)}}
		}
		if ringContainsRing(cut, poly.Outer) {
			return nil // the whole polygon is cut away
		}
		return []Polygon{poly} // disjoint: unaffected
	}

	la := buildVertexList(poly.Outer, isects, true)
	lb := buildVertexList(cut, isects, false)
	markEntryExit(la, cut, false)
	markEntryExit(lb, poly.Outer, true)
	rings := traceContours(la, lb, opDifference)
	if len(rings) == 0 {
		return nil
	}
	out := make([]Polygon, len(rings))
	for i, r := range rings {
		out[i] = Polygon{Outer: r, Holes: poly.Holes}
	}
	return out
}

// ConvexHull returns the convex hull (as a single-polygon, hole-free
// MultiPolygon) of every vertex across mp, via Andrew's monotone
// chain.
func ConvexHull(mp MultiPolygon) MultiPolygon {
	var pts []Point
	for _, poly := range mp.Polygons {
		pts = append(pts, poly.Outer...)
	}
	hull := ConvexHullOf(pts)
	if len(hull) == 0 {
		return MultiPolygon{}
	}
	return MultiPolygon{Polygons: []Polygon{{Outer: hull}}}
}

// ConvexHullOf computes the convex hull of an arbitrary point set.
func ConvexHullOf(pts []Point) Ring {
	if len(pts) < 3 {
		return append(Ring{}, pts...)
	}
	uniq := dedupePoints(pts)
	if len(uniq) < 3 {
		return Ring(uniq)
	}
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i][0] != uniq[j][0] {
			return uniq[i][0] < uniq[j][0]
		}
		return uniq[i][1] < uniq[j][1]
	})
	cross := func(o, a, b Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}
	var lower, upper []Point
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return Ring(hull)
}

func dedupePoints(pts []Point) []Point {
	const eps = 1e-9
	var out []Point
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if math.Abs(p[0]-q[0]) < eps && math.Abs(p[1]-q[1]) < eps {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func ringContainsRing(outer, inner Ring) bool {
	for _, p := range inner {
		if !outer.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// --- Greiner-Hormann core ---

// ghVertex is one node of an augmented polygon vertex list: either an
// original ring vertex or an inserted intersection point.
type ghVertex struct {
	pt        Point
	intersect bool
	entry     bool
	visited   bool
	neighbor  *ghVertex // the corresponding vertex in the other ring's list
	next, prev *ghVertex
}

// isect is one intersection between an edge of ring A and an edge of
// ring B.
type isect struct {
	pt             Point
	edgeA, edgeB   int     // starting-vertex index of the intersecting edge in each ring
	alphaA, alphaB float64 // parametric position [0,1] along that edge
}

// findIntersections returns every proper intersection between ring a
// and ring b's edges.
func findIntersections(a, b Ring) []isect {
	var out []isect
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a0, a1 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			b0, b1 := b[j], b[(j+1)%nb]
			pt, ta, tb, ok := segmentIntersection(a0, a1, b0, b1)
			if !ok {
				continue
			}
			out = append(out, isect{pt: pt, edgeA: i, edgeB: j, alphaA: ta, alphaB: tb})
		}
	}
	return out
}

// buildVertexList builds the augmented, circular doubly linked vertex
// list for ring r, splicing in intersection vertices in parametric
// order along each edge. forA selects whether edgeA/alphaA (true) or
// edgeB/alphaB (false) indexes into r. Matching intersection vertices
// across the two lists are not linked here; traceContours pairs them
// up by point equality via linkCrossNeighbors.
func buildVertexList(r Ring, isects []isect, forA bool) []*ghVertex {
	n := len(r)
	perEdge := make([][]isect, n)
	for _, is := range isects {
		e := is.edgeB
		if forA {
			e = is.edgeA
		}
		perEdge[e] = append(perEdge[e], is)
	}

	var head, tail *ghVertex
	link := func(v *ghVertex) {
		if head == nil {
			head, tail = v, v
			return
		}
		tail.next = v
		v.prev = tail
		tail = v
	}

	for i := 0; i < n; i++ {
		link(&ghVertex{pt: r[i]})
		es := perEdge[i]
		sort.Slice(es, func(x, y int) bool {
			if forA {
				return es[x].alphaA < es[y].alphaA
			}
			return es[x].alphaB < es[y].alphaB
		})
		for _, is := range es {
			link(&ghVertex{pt: is.pt, intersect: true})
		}
	}
	tail.next = head
	head.prev = tail

	// Neighbors are linked later, by linkCrossNeighbors.
	return collectList(head)
}

func collectList(head *ghVertex) []*ghVertex {
	var out []*ghVertex
	v := head
	for {
		out = append(out, v)
		v = v.next
		if v == head {
			break
		}
	}
	return out
}

const eps = 1e-9

func samePoint(a, b Point) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps
}

// linkCrossNeighbors pairs up intersection vertices between la and lb
// that sit at the same point.
func linkCrossNeighbors(la, lb []*ghVertex) {
	for _, v := range la {
		if !v.intersect || v.neighbor != nil {
			continue
		}
		for _, w := range lb {
			if w.intersect && w.neighbor == nil && samePoint(v.pt, w.pt) {
				v.neighbor, w.neighbor = w, v
				break
			}
		}
	}
}

// markEntryExit classifies every intersection vertex of list as an
// entry or exit point of other (the other ring, unaugmented), per the
// Greiner-Hormann rule: walk the list, and each time an intersection
// vertex is crossed, toggle whether the subsequent original vertices
// are inside other. invert flips the initial inside/outside sense,
// used for the second operand of a difference.
func markEntryExit(list []*ghVertex, other Ring, invert bool) {
	// Determine inside/outside status of the first non-intersection
	// vertex, then walk, toggling at every intersection.
	startInside := false
	for _, v := range list {
		if !v.intersect {
			startInside = other.ContainsPoint(v.pt)
			break
		}
	}
	inside := startInside
	if invert {
		inside = !inside
	}
	for _, v := range list {
		if v.intersect {
			inside = !inside
			v.entry = inside
		}
	}
}

// traceContours walks the two augmented lists following the
// Greiner-Hormann entry/exit rule for op, returning the resulting
// output ring(s).
func traceContours(la, lb []*ghVertex, op clipOp) []Ring {
	linkCrossNeighbors(la, lb)

	var results []Ring
	for _, start := range la {
		if !start.intersect || start.visited {
			continue
		}
		var ring Ring
		cur := start
		onA := true
		for {
			cur.visited = true
			if cur.neighbor != nil {
				cur.neighbor.visited = true
			}
			ring = append(ring, cur.pt)

			forward := cur.entry
			if op == opDifference && !onA {
				forward = !cur.entry
			}

			if forward {
				cur = cur.next
			} else {
				cur = cur.prev
			}
			for !cur.intersect {
				ring = append(ring, cur.pt)
				if forward {
					cur = cur.next
				} else {
					cur = cur.prev
				}
			}
			if cur == start || cur.neighbor == start {
				break
			}
			cur = cur.neighbor
			onA = !onA
		}
		if len(ring) >= 3 {
			results = append(results, ring)
		}
	}
	return results
}

// segmentIntersection returns the intersection point of segments
// p0-p1 and q0-q1 (if any), together with the parametric position of
// the intersection along each segment. Collinear/parallel segments
// report no intersection (treated as non-overlapping for this
// module's purposes: the feature algebra never relies on exactly
// collinear cut boundaries).
func segmentIntersection(p0, p1, q0, q1 Point) (Point, float64, float64, bool) {
	r := Pt(p1[0]-p0[0], p1[1]-p0[1])
	s := Pt(q1[0]-q0[0], q1[1]-q0[1])
	denom := r[0]*s[1] - r[1]*s[0]
	if math.Abs(denom) < eps {
		return Point{}, 0, 0, false
	}
	qp := Pt(q0[0]-p0[0], q0[1]-p0[1])
	t := (qp[0]*s[1] - qp[1]*s[0]) / denom
	u := (qp[0]*r[1] - qp[1]*r[0]) / denom
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return Point{}, 0, 0, false
	}
	if t < 0 {
		t = 0
	}
	if u < 0 {
		u = 0
	}
	pt := Pt(p0[0]+t*r[0], p0[1]+t*r[1])
	return pt, t, u, true
}
