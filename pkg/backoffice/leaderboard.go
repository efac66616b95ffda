package backoffice

import (
	"context"
	"errors"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/config"
	"salesdesk/pkg/normalize"
)

const leaderboardSize = 3

type LeaderboardEntry struct {
	Nombre   string  `json:"nombre"`
	Posicion int     `json:"posicion"`
	Volumen  float64 `json:"volumen"`
	Codigo   string  `json:"codigo"`
	Current  bool    `json:"actual,omitempty"`
}

type LeaderboardView struct {
	Entries  []LeaderboardEntry `json:"leaderboard"`
	Degraded bool               `json:"degraded,omitempty"`
}

// Leaderboard ranks users by their Posicion column. The first place is
// always shown; when the current user is ranked below it, the user and the
// next ranked user follow. Otherwise the top three are shown.
func (d *Desk) Leaderboard(ctx context.Context, code string) LeaderboardView {
	entries, err := guard("leaderboard", func() ([]LeaderboardEntry, error) {
		return d.leaderboard(ctx, code)
	})
	if err != nil {
		d.degraded("leaderboard", err)
		return LeaderboardView{Entries: []LeaderboardEntry{}, Degraded: true}
	}
	return LeaderboardView{Entries: entries}
}

func (d *Desk) leaderboard(ctx context.Context, code string) ([]LeaderboardEntry, error) {
	c, err := d.credentials(ctx)
	if err != nil {
		return nil, err
	}
	var ranked []LeaderboardEntry
	for _, r := range c.recs {
		pos, okPos := normalize.ParseFloat(r.Get(c.cols["posicion"]))
		vol, okVol := normalize.ParseFloat(r.Get(c.cols["volumen"]))
		if !okPos || !okVol || pos <= 0 || vol == 0 {
			continue
		}
		ranked = append(ranked, LeaderboardEntry{
			Nombre:   c.text(r, "nombre"),
			Posicion: int(pos),
			Volumen:  vol,
			Codigo:   c.text(r, "codigo"),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Posicion < ranked[j].Posicion
	})
	return anchorLeaderboard(ranked, code), nil
}

// anchorLeaderboard picks the entries to show from a ranked list.
func anchorLeaderboard(ranked []LeaderboardEntry, code string) []LeaderboardEntry {
	out := []LeaderboardEntry{}
	if len(ranked) == 0 {
		return out
	}
	idx := -1
	if code != "" {
		for i, e := range ranked {
			if normalize.SameCode(e.Codigo, code) {
				idx = i
				break
			}
		}
	}
	if idx <= 0 {
		n := leaderboardSize
		if n > len(ranked) {
			n = len(ranked)
		}
		out = append(out, ranked[:n]...)
		if idx == 0 {
			out[0].Current = true
		}
		return out
	}

	used := map[string]bool{normalize.LooseCode(ranked[0].Codigo): true}
	out = append(out, ranked[0])
	me := ranked[idx]
	me.Current = true
	if !used[normalize.LooseCode(me.Codigo)] {
		out = append(out, me)
		used[normalize.LooseCode(me.Codigo)] = true
	}
	if next := idx + 1; next < len(ranked) && !used[normalize.LooseCode(ranked[next].Codigo)] {
		out = append(out, ranked[next])
	}
	return out
}

// RecordCount is the dashboard's total row count and where it came from.
type RecordCount struct {
	Total    int    `json:"total"`
	Source   string `json:"source,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

// TotalRecords counts the rows of the first configured source that can be
// read, trying each in order. Every source fails independently.
func (d *Desk) TotalRecords(ctx context.Context) RecordCount {
	var errs []error
	for i, ref := range d.cfg.Sources.RecordCount {
		n, err := guard("total_records", func() (int, error) {
			return d.countRecords(ctx, ref)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			continue
		}
		if i > 0 {
			log.WithField("source", ref.String()).Info("record count served by fallback source")
		}
		return RecordCount{Total: n, Source: ref.String(), Fallback: i > 0}
	}
	d.degraded("total_records", errors.Join(errs...))
	return RecordCount{Degraded: true}
}

func (d *Desk) countRecords(ctx context.Context, ref config.Ref) (int, error) {
	recs, err := d.fetch(ctx, ref)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
