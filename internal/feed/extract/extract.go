// Package extract flattens a parsed document into the court codes, cases and
// hearing dates the pipeline operates over.
package extract

import (
	"log/slog"
	"sort"
	"time"

	"caseflow/internal/feed/models"
)

// CourtCodes returns the distinct court codes touched by the sessions, sorted.
func CourtCodes(sessions []models.Session) []string {
	seen := make(map[string]struct{})
	for _, s := range sessions {
		seen[s.CourtCode] = struct{}{}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SessionCase pairs a case with its enclosing session, which carries the
// hearing date, room and sitting time the canonical record needs.
type SessionCase struct {
	Session models.Session
	Case    models.Case
}

// CasesForCourt returns every case listed under sessions for the court.
func CasesForCourt(courtCode string, sessions []models.Session) []SessionCase {
	var out []SessionCase
	for _, s := range sessions {
		if s.CourtCode != courtCode {
			continue
		}
		for _, b := range s.Blocks {
			for _, c := range b.Cases {
				out = append(out, SessionCase{Session: s, Case: c})
			}
		}
	}
	return out
}

// HearingDates derives the authoritative set of hearing dates for the batch.
//
// The feed omits a date entirely when it has zero cases, but the purge step
// still needs that date represented so the store clears it. When the sessions
// carry exactly one distinct date, a companion date is synthesized: today's
// list implies the list offsetDays ahead, and a future list implies today's.
// Two or more distinct dates are taken as-is.
func HearingDates(sessions []models.Session, offsetDays int, now time.Time, logger *slog.Logger) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, s := range sessions {
		if s.DateOfHearing.IsZero() {
			continue
		}
		seen[truncate(s.DateOfHearing.Time)] = struct{}{}
	}

	today := truncate(now)
	if len(seen) == 1 {
		var only time.Time
		for d := range seen {
			only = d
		}
		if only.Equal(today) {
			seen[only.AddDate(0, 0, offsetDays)] = struct{}{}
		} else if only.After(today) {
			seen[only.AddDate(0, 0, -offsetDays)] = struct{}{}
		}
	} else if len(seen) > 2 && logger != nil {
		logger.Warn("hearing list spans more than two distinct dates", "count", len(seen))
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
