package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// percentOf returns collected/target*100 rounded half to even; 0 when target
// is not positive. The quotient is taken in float64 first, so 23/40 gives
// 57.49999999999999 and rounds to 57.
func percentOf(collected, target int64) int64 {
	if target <= 0 {
		return 0
	}
	f := float64(collected) / float64(target) * 100
	return decimal.NewFromFloat(f).RoundBank(0).IntPart()
}

type progress struct {
	percent int64 // без ограничения
	capped  int64
	over    int64
	display string
}

func progressOf(collected, target int64) progress {
	pct := percentOf(collected, target)
	p := progress{
		percent: pct,
		capped:  min(pct, 100),
		over:    max(pct-100, 0),
	}
	if p.over == 0 {
		p.display = fmt.Sprintf("%d%%", p.capped)
	} else {
		p.display = fmt.Sprintf("%d%% (over)", p.percent)
	}
	return p
}
