package orderbook

import "testing"

func TestRBTreeUpsertFindErase(t *testing.T) {
	tree := newRBTree()
	lvl1 := tree.upsert(100)
	if lvl1 == nil {
		t.Fatal("upsert returned nil")
	}
	if got := tree.find(100); got != lvl1 {
		t.Error("find did not return the same level inserted by upsert")
	}

	tree.upsert(200)
	if tree.min().Price != 100 {
		t.Error("expected min price 100")
	}
	if tree.max().Price != 200 {
		t.Error("expected max price 200")
	}

	if !tree.erase(100) {
		t.Error("erase of existing level should return true")
	}
	if tree.find(100) != nil {
		t.Error("expected level 100 to be gone after erase")
	}
}

func TestRBTreeEraseMissing(t *testing.T) {
	tree := newRBTree()
	if tree.erase(999) {
		t.Error("erase of a missing price should return false")
	}
}

func TestRBTreeEmptyMinMax(t *testing.T) {
	tree := newRBTree()
	if tree.min() != nil || tree.max() != nil {
		t.Error("min/max on an empty tree should be nil")
	}
}

func TestRBTreeUpsertIdempotent(t *testing.T) {
	tree := newRBTree()
	lvl1 := tree.upsert(150)
	lvl2 := tree.upsert(150)
	if lvl1 != lvl2 {
		t.Error("upsert of an existing price should return the same level")
	}
	if tree.size != 1 {
		t.Errorf("expected size 1, got %d", tree.size)
	}
}

func TestRBTreeAscendDescendOrder(t *testing.T) {
	tree := newRBTree()
	prices := []int64{50, 10, 40, 30, 20, 60}
	for _, p := range prices {
		tree.upsert(p)
	}

	var asc []int64
	tree.ascend(func(l *PriceLevel) bool {
		asc = append(asc, l.Price)
		return true
	})
	wantAsc := []int64{10, 20, 30, 40, 50, 60}
	if !int64SliceEqual(asc, wantAsc) {
		t.Errorf("ascend order = %v, want %v", asc, wantAsc)
	}

	var desc []int64
	tree.descend(func(l *PriceLevel) bool {
		desc = append(desc, l.Price)
		return true
	})
	wantDesc := []int64{60, 50, 40, 30, 20, 10}
	if !int64SliceEqual(desc, wantDesc) {
		t.Errorf("descend order = %v, want %v", desc, wantDesc)
	}
}

func TestRBTreeAscendStopsEarly(t *testing.T) {
	tree := newRBTree()
	for _, p := range []int64{10, 20, 30, 40} {
		tree.upsert(p)
	}
	var seen []int64
	tree.ascend(func(l *PriceLevel) bool {
		seen = append(seen, l.Price)
		return l.Price < 20
	})
	want := []int64{10, 20}
	if !int64SliceEqual(seen, want) {
		t.Errorf("ascend with early stop = %v, want %v", seen, want)
	}
}

func TestRBTreeManyInsertDeleteKeepsOrder(t *testing.T) {
	tree := newRBTree()
	prices := []int64{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	for _, p := range prices {
		tree.upsert(p)
	}
	// delete the evens
	for _, p := range []int64{0, 2, 4, 6, 8} {
		if !tree.erase(p) {
			t.Fatalf("expected erase(%d) to succeed", p)
		}
	}
	var asc []int64
	tree.ascend(func(l *PriceLevel) bool {
		asc = append(asc, l.Price)
		return true
	})
	want := []int64{1, 3, 5, 7, 9}
	if !int64SliceEqual(asc, want) {
		t.Errorf("after deletes, ascend = %v, want %v", asc, want)
	}
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
