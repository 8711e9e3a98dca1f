package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"analytics-service/internal/analytics/model"
	anSvc "analytics-service/internal/analytics/service"
	"analytics-service/internal/config"
	"analytics-service/internal/fileio"
	"analytics-service/internal/store"
)

// Summary отдаёт отчёт по данным из хранилища:
// счётчики коллекций + прогресс по материалам квестов и заявок.
func Summary(st store.Store, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := zerolog.Ctx(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), cfg.FetchTimeout)
		defer cancel()

		in, err := store.LoadInputs(ctx, st)
		if err != nil {
			code := http.StatusBadGateway
			if errors.Is(err, context.DeadlineExceeded) {
				code = http.StatusGatewayTimeout
			}
			writeError(w, r, code, StageRetrieve, err)
			return
		}

		res := anSvc.Run(in.Targets, in.Collected, cfg.Options())
		writeOK(w, r, model.NewReport(in.Totals, res))

		log.Info().
			Int("targets", len(in.Targets)).
			Int("collected", len(in.Collected)).
			Int("materials", len(res.Materials)).
			Dur("elapsed", time.Since(start)).
			Msg("summary done")
	}
}

type optionsBody struct {
	Threshold  *float64 `json:"threshold"`
	Metric     string   `json:"metric"`
	TopN       *int     `json:"top_n"`
	CrossMerge *bool    `json:"cross_merge"`
}

type computeBody struct {
	Targets   []any        `json:"targets"`
	Collected []any        `json:"collected"`
	Totals    model.Totals `json:"totals"`
	Options   *optionsBody `json:"options"`
}

// Compute считает отчёт по записям, переданным в теле запроса.
func Compute(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, bodyErrCode(err), StageDecode, fmt.Errorf("read body: %w", err))
			return
		}

		var doc any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			writeError(w, r, http.StatusBadRequest, StageDecode, fmt.Errorf("bad json: %w", err))
			return
		}
		if err := computeSchema.Validate(doc); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, StageValidate, err)
			return
		}

		var body computeBody
		dec = json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			writeError(w, r, http.StatusBadRequest, StageDecode, err)
			return
		}

		opt := cfg.Options()
		if o := body.Options; o != nil {
			if o.Threshold != nil {
				opt.Threshold = *o.Threshold
			}
			if o.Metric != "" {
				opt.Metric = o.Metric
			}
			if o.TopN != nil {
				opt.TopN = *o.TopN
			}
			if o.CrossMerge != nil {
				opt.CrossMerge = *o.CrossMerge
			}
		}

		targets, collected := bodyRecords(body.Targets), bodyRecords(body.Collected)
		res := anSvc.Run(targets, collected, opt)
		writeOK(w, r, model.NewReport(body.Totals, res))

		zerolog.Ctx(r.Context()).Info().
			Int("targets", len(targets)).
			Int("collected", len(collected)).
			Str("metric", opt.Metric).
			Msg("compute done")
	}
}

// 413 если тело упёрлось в лимит, иначе 400
func bodyErrCode(err error) int {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// records that are not objects are skipped
func bodyRecords(items []any) []model.MaterialRecord {
	out := make([]model.MaterialRecord, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, store.MaterialFrom(m))
		}
	}
	return out
}

// Upload считает отчёт по двум загруженным таблицам (csv/xls/xlsx):
// поле targets с целями, collected с собранным.
func Upload(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, r, bodyErrCode(err), StageDecode, fmt.Errorf("bad multipart form: %w", err))
			return
		}

		headerRow := atoi(r.FormValue("header_row"), 1)
		nameCol := orDefault(r.FormValue("name_col"), defaultNameCol)
		qtyCol := orDefault(r.FormValue("qty_col"), defaultQtyCol)

		var sets [2][]model.MaterialRecord
		for i, field := range []string{"targets", "collected"} {
			sh, err := readUpload(r, field, headerRow)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, StageDecode, err)
				return
			}
			sets[i] = sheetRecords(sh, nameCol, qtyCol)
		}

		opt := cfg.Options()
		opt.Threshold = toFloat(r.FormValue("threshold"), opt.Threshold)
		opt.Metric = orDefault(r.FormValue("metric"), opt.Metric)
		opt.TopN = atoi(r.FormValue("top_n"), opt.TopN)
		opt.CrossMerge = toBool(r.FormValue("cross_merge"), opt.CrossMerge)
		if opt.Threshold <= 0 || opt.Threshold > 1 {
			writeError(w, r, http.StatusUnprocessableEntity, StageValidate,
				fmt.Errorf("threshold must be in (0,1], got %v", opt.Threshold))
			return
		}
		if !anSvc.KnownMetric(opt.Metric) {
			writeError(w, r, http.StatusUnprocessableEntity, StageValidate,
				fmt.Errorf("unknown metric %q", opt.Metric))
			return
		}

		res := anSvc.Run(sets[0], sets[1], opt)
		writeOK(w, r, model.NewReport(model.Totals{}, res))

		zerolog.Ctx(r.Context()).Info().
			Int("targets", len(sets[0])).
			Int("collected", len(sets[1])).
			Dur("elapsed", time.Since(start)).
			Msg("upload done")
	}
}

func readUpload(r *http.Request, field string, headerRow int) (fileio.Sheet, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return fileio.Sheet{}, fmt.Errorf("missing %s: %w", field, err)
	}
	defer f.Close()
	sh, err := fileio.ReadAny(f, hdr.Filename, headerRow)
	if err != nil {
		return fileio.Sheet{}, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return sh, nil
}
