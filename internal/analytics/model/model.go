package model

// MaterialRecord is one raw (name, quantity) pair as it comes from a quest or a
// submission. Quantity is nil when the source had no amount at all.
type MaterialRecord struct {
	Name     string // исходное наименование
	Quantity *int64 // nil = не указано
}

// Qty returns the quantity or def when it is absent.
func (r MaterialRecord) Qty(def int64) int64 {
	if r.Quantity == nil {
		return def
	}
	return *r.Quantity
}

// Record is a shorthand constructor for a record with an explicit quantity.
func Record(name string, qty int64) MaterialRecord {
	return MaterialRecord{Name: name, Quantity: &qty}
}

type Options struct {
	Threshold  float64 // порог схожести (0..1)
	Metric     string  // ratio | levenshtein | damerau | jarowinkler
	TopN       int     // размер топов
	CrossMerge bool    // сопоставлять собранное с ключами целей
}

func DefaultOptions() Options {
	return Options{Threshold: 0.85, Metric: "ratio", TopN: 5}
}

type MaterialProgress struct {
	Name                   string `json:"name"`
	Target                 int64  `json:"target"`
	Collected              int64  `json:"collected"`
	ProgressPercent        int64  `json:"progress_percent"`
	ProgressDisplay        string `json:"progress_display"`
	OverachievementPercent int64  `json:"overachievement_percent"`
}

type OverallProgress struct {
	TargetTotal            int64  `json:"target_total"`
	CollectedTotal         int64  `json:"collected_total"`
	ProgressPercent        int64  `json:"progress_percent"`
	ProgressDisplay        string `json:"progress_display"`
	OverachievementPercent int64  `json:"overachievement_percent"`
}

// Result is what the engine returns for one aggregation run.
type Result struct {
	Materials    []MaterialProgress
	Overall      OverallProgress
	TopTarget    []MaterialProgress
	TopCollected []MaterialProgress
}

// Totals are the externally counted collection sizes echoed in the report.
type Totals struct {
	Users   int64 `json:"total_users"`
	Outlets int64 `json:"total_outlets"`
	Rewards int64 `json:"total_rewards"`
	Quests  int64 `json:"total_quests"`
}

type Recyclables struct {
	TopTargetMaterials    []MaterialProgress `json:"top_target_materials"`
	TopCollectedMaterials []MaterialProgress `json:"top_collected_materials"`
	Overall               OverallProgress    `json:"overall"`
	Materials             []MaterialProgress `json:"materials"`
}

type Report struct {
	Totals      Totals      `json:"totals"`
	Recyclables Recyclables `json:"recyclables"`
}

// NewReport packages engine output together with caller supplied totals.
func NewReport(t Totals, res Result) Report {
	return Report{
		Totals: t,
		Recyclables: Recyclables{
			TopTargetMaterials:    nonNil(res.TopTarget),
			TopCollectedMaterials: nonNil(res.TopCollected),
			Overall:               res.Overall,
			Materials:             nonNil(res.Materials),
		},
	}
}

func nonNil(s []MaterialProgress) []MaterialProgress {
	if s == nil {
		return []MaterialProgress{}
	}
	return s
}
