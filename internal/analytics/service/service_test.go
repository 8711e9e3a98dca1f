package service

import (
	"fmt"
	"testing"

	"analytics-service/internal/analytics/model"
)

func rec(name string, qty int64) model.MaterialRecord { return model.Record(name, qty) }

func noQty(name string) model.MaterialRecord { return model.MaterialRecord{Name: name} }

func findMaterial(t *testing.T, res model.Result, name string) model.MaterialProgress {
	t.Helper()
	for _, m := range res.Materials {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("material %q not found in %+v", name, res.Materials)
	return model.MaterialProgress{}
}

func TestRunSingleMaterialHalfway(t *testing.T) {
	res := Run(
		[]model.MaterialRecord{rec("Can", 10)},
		[]model.MaterialRecord{rec("can", 5)},
		model.DefaultOptions(),
	)
	if len(res.Materials) != 1 {
		t.Fatalf("expected 1 material, got %+v", res.Materials)
	}
	want := model.MaterialProgress{
		Name: "Can", Target: 10, Collected: 5,
		ProgressPercent: 50, ProgressDisplay: "50%", OverachievementPercent: 0,
	}
	if res.Materials[0] != want {
		t.Fatalf("got %+v want %+v", res.Materials[0], want)
	}
}

func TestRunOverachievement(t *testing.T) {
	res := Run(
		[]model.MaterialRecord{rec("Glass", 4)},
		[]model.MaterialRecord{rec("Glass", 8)},
		model.DefaultOptions(),
	)
	m := findMaterial(t, res, "Glass")
	if m.ProgressPercent != 100 || m.ProgressDisplay != "200% (over)" || m.OverachievementPercent != 100 {
		t.Fatalf("unexpected progress: %+v", m)
	}
	if res.Overall.ProgressDisplay != "200% (over)" || res.Overall.OverachievementPercent != 100 {
		t.Fatalf("unexpected overall: %+v", res.Overall)
	}
}

func TestRunZeroTargetGuard(t *testing.T) {
	res := Run(nil, []model.MaterialRecord{rec("X", 3)}, model.DefaultOptions())
	o := res.Overall
	if o.TargetTotal != 1 || o.CollectedTotal != 3 {
		t.Fatalf("unexpected totals: %+v", o)
	}
	if o.ProgressPercent != 100 || o.ProgressDisplay != "300% (over)" || o.OverachievementPercent != 200 {
		t.Fatalf("unexpected overall progress: %+v", o)
	}
	m := findMaterial(t, res, "X")
	if m.Target != 0 || m.ProgressPercent != 0 || m.ProgressDisplay != "0%" {
		t.Fatalf("material without target must be 0%%: %+v", m)
	}
}

func TestRunEmptyInputs(t *testing.T) {
	res := Run(nil, nil, model.Options{})
	if len(res.Materials) != 0 || len(res.TopTarget) != 0 || len(res.TopCollected) != 0 {
		t.Fatalf("expected empty lists, got %+v", res)
	}
	want := model.OverallProgress{TargetTotal: 1, ProgressDisplay: "0%"}
	if res.Overall != want {
		t.Fatalf("got %+v want %+v", res.Overall, want)
	}
}

func TestRunQuantityCoercion(t *testing.T) {
	res := Run(
		[]model.MaterialRecord{rec("Paper", 0), noQty("Cardboard"), rec("Tin", -4)},
		[]model.MaterialRecord{noQty("Paper"), rec("Tin", -2)},
		model.DefaultOptions(),
	)
	if m := findMaterial(t, res, "Paper"); m.Target != 1 || m.Collected != 0 {
		t.Fatalf("Paper: %+v", m)
	}
	if m := findMaterial(t, res, "Cardboard"); m.Target != 1 {
		t.Fatalf("Cardboard: %+v", m)
	}
	// собранное не приводится: отрицательное остаётся
	if m := findMaterial(t, res, "Tin"); m.Target != 1 || m.Collected != -2 || m.ProgressDisplay != "-200%" {
		t.Fatalf("Tin: %+v", m)
	}
	if res.Overall.TargetTotal != 3 || res.Overall.CollectedTotal != -2 {
		t.Fatalf("overall: %+v", res.Overall)
	}
}

func TestRunTopListsBoundedAndSorted(t *testing.T) {
	var targets, collected []model.MaterialRecord
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel"}
	for i, n := range names {
		targets = append(targets, rec(n, int64(i+1)))
		collected = append(collected, rec(n, int64(len(names)-i)))
	}
	res := Run(targets, collected, model.DefaultOptions())
	if len(res.Materials) != len(names) {
		t.Fatalf("expected %d materials, got %d", len(names), len(res.Materials))
	}
	if len(res.TopTarget) != 5 || len(res.TopCollected) != 5 {
		t.Fatalf("top lists must hold 5, got %d/%d", len(res.TopTarget), len(res.TopCollected))
	}
	for i := 1; i < 5; i++ {
		if res.TopTarget[i-1].Target < res.TopTarget[i].Target {
			t.Fatalf("top target not descending: %+v", res.TopTarget)
		}
		if res.TopCollected[i-1].Collected < res.TopCollected[i].Collected {
			t.Fatalf("top collected not descending: %+v", res.TopCollected)
		}
	}
	if res.TopTarget[0].Name != "Hotel" || res.TopCollected[0].Name != "Alpha" {
		t.Fatalf("unexpected leaders %q / %q", res.TopTarget[0].Name, res.TopCollected[0].Name)
	}
}

func TestRunTopTieBreakByName(t *testing.T) {
	res := Run(
		[]model.MaterialRecord{rec("Zinc", 2), rec("Brass", 2), rec("Copper", 2)},
		nil,
		model.Options{TopN: 2},
	)
	if len(res.TopTarget) != 2 || res.TopTarget[0].Name != "Brass" || res.TopTarget[1].Name != "Copper" {
		t.Fatalf("unexpected tie order: %+v", res.TopTarget)
	}
}

func TestRunUnionKeepsDivergentNames(t *testing.T) {
	// "Cans" лишь у целей, "Tin Can" лишь у собранного, без перекрёстного слияния
	res := Run(
		[]model.MaterialRecord{rec("Cans", 4)},
		[]model.MaterialRecord{rec("Tin Can", 2)},
		model.DefaultOptions(),
	)
	if len(res.Materials) != 2 {
		t.Fatalf("expected names to stay separate, got %+v", res.Materials)
	}
	if res.Materials[0].Name != "Cans" || res.Materials[1].Name != "Tin Can" {
		t.Fatalf("union must list target keys first: %+v", res.Materials)
	}
}

func TestRunCrossMergeUsesTargetKeys(t *testing.T) {
	targets := []model.MaterialRecord{rec("Plastic Bottles", 10)}
	collected := []model.MaterialRecord{rec("plastic bottle", 3), rec("Plastic Bottle (made of PET)", 2)}

	plain := Run(targets, collected, model.DefaultOptions())
	if m := findMaterial(t, plain, "Plastic Bottles"); m.Collected != 0 {
		t.Fatalf("without cross merge collected should stay apart: %+v", plain.Materials)
	}

	opt := model.DefaultOptions()
	opt.CrossMerge = true
	merged := Run(targets, collected, opt)
	if len(merged.Materials) != 1 {
		t.Fatalf("expected one material, got %+v", merged.Materials)
	}
	if m := merged.Materials[0]; m.Collected != 5 || m.ProgressPercent != 50 {
		t.Fatalf("unexpected merged material: %+v", m)
	}
}

func TestRunIsOrderIndependentForTotals(t *testing.T) {
	a := []model.MaterialRecord{rec("Can", 3), rec("Glass", 4), rec("cans", 1)}
	b := []model.MaterialRecord{rec("cans", 1), rec("Glass", 4), rec("Can", 3)}
	x := Run(a, a, model.DefaultOptions())
	y := Run(b, b, model.DefaultOptions())
	if x.Overall != y.Overall {
		t.Fatalf("overall differs by input order: %+v vs %+v", x.Overall, y.Overall)
	}
}

func TestPercentRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		c, t, want int64
	}{
		{1, 8, 12},  // 12.5
		{3, 8, 38},  // 37.5
		{1, 200, 0}, // 0.5
		{3, 200, 2}, // 1.5
		{1, 3, 33},
		{2, 3, 67},
		{23, 40, 57}, // 57.49999999999999 в float64
		{7, 40, 18},  // 17.5
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tc := range tests {
		if got := percentOf(tc.c, tc.t); got != tc.want {
			t.Fatalf("percentOf(%d,%d)=%d want=%d", tc.c, tc.t, got, tc.want)
		}
	}
}

func TestRunPercentFollowsFloatQuotient(t *testing.T) {
	res := Run([]model.MaterialRecord{model.Record("Can", 40)}, []model.MaterialRecord{model.Record("Can", 23)}, model.Options{})
	m := res.Materials[0]
	if m.ProgressPercent != 57 || m.ProgressDisplay != "57%" {
		t.Fatalf("can=%+v", m)
	}
}

func ExampleRun() {
	res := Run(
		[]model.MaterialRecord{model.Record("Can", 10), model.Record("Glass", 4)},
		[]model.MaterialRecord{model.Record("can", 5), model.Record("glass", 8)},
		model.DefaultOptions(),
	)
	for _, m := range res.Materials {
		fmt.Println(m.Name, m.ProgressDisplay)
	}
	fmt.Println("overall", res.Overall.ProgressDisplay)
	// Output:
	// Can 50%
	// Glass 200% (over)
	// overall 93%
}
