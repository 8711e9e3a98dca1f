package service

import (
	"sort"

	"analytics-service/internal/analytics/model"
)

// Run: основной расчёт. Строит два независимых аккумулятора (цели и
// собранное), объединяет ключи и считает прогресс по каждому материалу,
// общий прогресс и топы.
func Run(targets, collected []model.MaterialRecord, opt model.Options) model.Result {
	opt = withDefaults(opt)
	score := ScorerFor(opt.Metric)

	// 1) Цели: нет количества или <= 0 → 1
	tAcc := NewAccumulator(opt.Threshold, score)
	for _, r := range targets {
		q := r.Qty(0)
		if q <= 0 {
			q = 1
		}
		tAcc.Add(r.Name, q)
	}

	// 2) Собранное: нет количества → 0
	cAcc := NewAccumulator(opt.Threshold, score)
	for _, r := range collected {
		name := r.Name
		if opt.CrossMerge {
			if k := tAcc.Match(Canonicalize(name)); tAcc.Has(k) {
				name = k
			}
		}
		cAcc.Add(name, r.Qty(0))
	}

	// 3) Объединение ключей: сначала цели, затем то, что есть только в собранном
	names := tAcc.Keys()
	for _, k := range cAcc.Keys() {
		if !tAcc.Has(k) {
			names = append(names, k)
		}
	}

	materials := make([]model.MaterialProgress, 0, len(names))
	for _, name := range names {
		t, c := tAcc.Get(name), cAcc.Get(name)
		p := progressOf(c, t)
		materials = append(materials, model.MaterialProgress{
			Name:                   name,
			Target:                 t,
			Collected:              c,
			ProgressPercent:        p.capped,
			ProgressDisplay:        p.display,
			OverachievementPercent: p.over,
		})
	}

	// 4) Итог: сумма целей не меньше 1
	targetTotal := tAcc.Total()
	if targetTotal == 0 {
		targetTotal = 1
	}
	collectedTotal := cAcc.Total()
	p := progressOf(collectedTotal, targetTotal)

	return model.Result{
		Materials: materials,
		Overall: model.OverallProgress{
			TargetTotal:            targetTotal,
			CollectedTotal:         collectedTotal,
			ProgressPercent:        p.capped,
			ProgressDisplay:        p.display,
			OverachievementPercent: p.over,
		},
		TopTarget:    topBy(materials, opt.TopN, func(m model.MaterialProgress) int64 { return m.Target }),
		TopCollected: topBy(materials, opt.TopN, func(m model.MaterialProgress) int64 { return m.Collected }),
	}
}

// topBy sorts a copy descending by metric, equal values by name, and keeps n.
func topBy(in []model.MaterialProgress, n int, metric func(model.MaterialProgress) int64) []model.MaterialProgress {
	out := make([]model.MaterialProgress, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := metric(out[i]), metric(out[j])
		if mi != mj {
			return mi > mj
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func withDefaults(opt model.Options) model.Options {
	def := model.DefaultOptions()
	if opt.Threshold <= 0 || opt.Threshold > 1 {
		opt.Threshold = def.Threshold
	}
	if opt.Metric == "" {
		opt.Metric = def.Metric
	}
	if opt.TopN <= 0 {
		opt.TopN = def.TopN
	}
	return opt
}
