package store

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"analytics-service/internal/analytics/model"
	"analytics-service/internal/utils"
)

// Materials flattens the "materials" array of every document. Documents
// without a list and entries that are not objects are skipped.
func Materials(docs []Document) []model.MaterialRecord {
	var out []model.MaterialRecord
	for _, d := range docs {
		list, ok := d["materials"].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, MaterialFrom(m))
		}
	}
	return out
}

// MaterialFrom reads name and quantity from one material object. A non-string
// name counts as absent.
func MaterialFrom(m map[string]any) model.MaterialRecord {
	name, _ := m["name"].(string)
	return model.MaterialRecord{Name: name, Quantity: utils.Quantity(m["quantity"])}
}

// Inputs is everything one analytics summary needs from the store.
type Inputs struct {
	Totals    model.Totals
	Targets   []model.MaterialRecord // из квестов
	Collected []model.MaterialRecord // из заявок
}

// LoadInputs reads the four counters and both material streams concurrently.
// The first failure cancels the rest.
func LoadInputs(ctx context.Context, s Store) (Inputs, error) {
	var in Inputs
	g, ctx := errgroup.WithContext(ctx)

	counters := []struct {
		collection string
		dst        *int64
	}{
		{Users, &in.Totals.Users},
		{Outlets, &in.Totals.Outlets},
		{Rewards, &in.Totals.Rewards},
		{Quests, &in.Totals.Quests},
	}
	for _, c := range counters {
		g.Go(func() error {
			n, err := s.Count(ctx, c.collection)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	g.Go(func() error {
		docs, err := s.Documents(ctx, Quests)
		if err != nil {
			return err
		}
		in.Targets = Materials(docs)
		return nil
	})
	g.Go(func() error {
		docs, err := s.Documents(ctx, Submissions)
		if err != nil {
			return err
		}
		in.Collected = Materials(docs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Inputs{}, fmt.Errorf("load inputs: %w", err)
	}
	return in, nil
}
