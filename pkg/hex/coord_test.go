package hex

import "testing"

func TestDistanceKnownValues(t *testing.T) {
	cases := []struct {
		a, b Axial
		want int
	}{
		{Axial{0, 0}, Axial{0, 0}, 0},
		{Axial{0, 0}, Axial{1, 0}, 1},
		{Axial{0, 0}, Axial{2, 0}, 2},
		{Axial{0, 0}, Axial{1, -1}, 1},
		{Axial{0, 0}, Axial{3, -2}, 3},
		{Axial{-5, 0}, Axial{8, -2}, 13},
		{Axial{2, -3}, Axial{-1, 4}, 7},
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Fatalf("Distance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := Distance(c.b, c.a); got != c.want {
			t.Fatalf("Distance(%v, %v) = %d, want %d (symmetry)", c.b, c.a, got, c.want)
		}
	}
}

func TestNeighborsOrderAndAdjacency(t *testing.T) {
	c := Axial{3, -2}
	ns := c.Neighbors()
	if len(ns) != 6 {
		t.Fatalf("expected 6 neighbors, got %d", len(ns))
	}
	for i, n := range ns {
		if want := c.Add(Directions[i]); n != want {
			t.Fatalf("neighbor %d = %v, want %v", i, n, want)
		}
		if Distance(c, n) != 1 {
			t.Fatalf("neighbor %v not adjacent to %v", n, c)
		}
	}
	seen := make(map[Axial]bool)
	for _, n := range ns {
		if seen[n] {
			t.Fatalf("duplicate neighbor %v", n)
		}
		seen[n] = true
	}
}

// bfsDistances computes true shortest-path distances from origin across an
// unobstructed disk, for checking that Distance never overestimates.
func bfsDistances(center Axial, radius int) map[Axial]int {
	dist := map[Axial]int{center: 0}
	queue := []Axial{center}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if Distance(center, n) > radius {
				continue
			}
			if _, ok := dist[n]; ok {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

func TestDistanceAdmissible(t *testing.T) {
	const radius = 4
	origin := Axial{0, 0}
	truth := bfsDistances(origin, radius)
	for _, c := range Disk(origin, radius) {
		actual, ok := truth[c]
		if !ok {
			t.Fatalf("BFS never reached %v", c)
		}
		h := Distance(origin, c)
		if h > actual {
			t.Fatalf("Distance(%v, %v) = %d overestimates BFS distance %d", origin, c, h, actual)
		}
		// On an open disk the bound is tight.
		if h != actual {
			t.Fatalf("Distance(%v, %v) = %d, BFS says %d", origin, c, h, actual)
		}
	}
}

func TestDiskAndRing(t *testing.T) {
	center := Axial{1, 1}
	for r := 0; r <= 3; r++ {
		disk := Disk(center, r)
		if len(disk) != DiskSize(r) {
			t.Fatalf("Disk(%d) has %d cells, want %d", r, len(disk), DiskSize(r))
		}
		for _, c := range disk {
			if Distance(center, c) > r {
				t.Fatalf("disk cell %v outside radius %d", c, r)
			}
		}
		ring := Ring(center, r)
		wantRing := 6 * r
		if r == 0 {
			wantRing = 1
		}
		if len(ring) != wantRing {
			t.Fatalf("Ring(%d) has %d cells, want %d", r, len(ring), wantRing)
		}
		for _, c := range ring {
			if Distance(center, c) != r {
				t.Fatalf("ring cell %v not at distance %d", c, r)
			}
		}
	}
}

func TestCubeRoundTrip(t *testing.T) {
	for _, a := range Disk(Axial{0, 0}, 3) {
		cu := a.ToCube()
		if cu.X+cu.Y+cu.Z != 0 {
			t.Fatalf("cube %v does not satisfy x+y+z=0", cu)
		}
		if back := cu.ToAxial(); back != a {
			t.Fatalf("round trip %v -> %v -> %v", a, cu, back)
		}
	}
}
