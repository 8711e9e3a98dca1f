package handler

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"analytics-service/internal/analytics/model"
	"analytics-service/internal/fileio"
	"analytics-service/internal/utils"
)

// колонки по умолчанию; варианты через "|"
const (
	defaultNameCol = "name|material|наименование|материал"
	defaultQtyCol  = "quantity|qty|amount|количество|кол-во"
)

var rxNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, без служебных символов, ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ё", "е")
	s = rxNonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey ищет реальную колонку по желаемому имени ("a|b|c" это альтернативы):
// точное совпадение, затем нормализованное, затем вхождение (самое длинное).
func resolveKey(headers []string, want string) string {
	var alts []string
	for _, a := range strings.Split(want, "|") {
		if a = strings.TrimSpace(a); a != "" {
			alts = append(alts, a)
		}
	}
	if len(alts) == 0 {
		return ""
	}

	for _, a := range alts {
		for _, h := range headers {
			if h == a {
				return h
			}
		}
	}
	for _, a := range alts {
		na := normHeaderKey(a)
		for _, h := range headers {
			if normHeaderKey(h) == na {
				return h
			}
		}
	}

	bestKey, bestScore := "", 0
	for _, h := range headers {
		nh := normHeaderKey(h)
		if nh == "" {
			continue
		}
		for _, a := range alts {
			na := normHeaderKey(a)
			if na == "" {
				continue
			}
			if strings.Contains(nh, na) || strings.Contains(na, nh) {
				if l := min(len(na), len(nh)); l > bestScore {
					bestScore, bestKey = l, h
				}
			}
		}
	}
	return bestKey
}

// повторная шапка посреди таблицы (склейка выгрузок)
func looksLikeHeaderRow(rec map[string]string, nameKey, qtyKey string) bool {
	return normHeaderKey(rec[nameKey]) == normHeaderKey(nameKey) &&
		normHeaderKey(rec[qtyKey]) == normHeaderKey(qtyKey)
}

// sheetRecords maps spreadsheet rows to material records. A row with neither
// name nor quantity is skipped; a row with only a quantity goes to the empty
// name. An empty or unparsable quantity is absent.
func sheetRecords(sh fileio.Sheet, nameCol, qtyCol string) []model.MaterialRecord {
	nameKey := resolveKey(sh.Headers, nameCol)
	qtyKey := resolveKey(sh.Headers, qtyCol)
	if nameKey == "" {
		return nil
	}
	out := make([]model.MaterialRecord, 0, len(sh.Rows))
	for _, rec := range sh.Rows {
		name := strings.TrimSpace(rec[nameKey])
		qty := ""
		if qtyKey != "" {
			qty = strings.TrimSpace(rec[qtyKey])
		}
		if name == "" && qty == "" {
			continue
		}
		if qtyKey != "" && looksLikeHeaderRow(rec, nameKey, qtyKey) {
			continue
		}
		r := model.MaterialRecord{Name: name}
		if qtyKey != "" {
			r.Quantity = utils.Quantity(qty)
		}
		out = append(out, r)
	}
	return out
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
