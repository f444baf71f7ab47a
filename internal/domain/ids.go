package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Business ID prefixes. Day-scoped sequences reset every calendar day;
// lifetime sequences never reset.
const (
	PrefixCallback   = "CB"
	PrefixService    = "SV"
	PrefixRepair     = "RP"
	PrefixSchedule   = "SRV"
	PrefixReport     = "RPT"
	PrefixPayment    = "PAY"
	PrefixContract   = "AMC"
	PrefixJobNumber  = "JB"
	PrefixComplaint  = "COMP"
)

// DateKey renders the day scope used by day-rolling counters.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// FormatDatedID renders a day-scoped sequential ID, e.g. "CB-20250115-007".
// Numbers past 999 simply widen.
func FormatDatedID(prefix string, t time.Time, n int64) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, DateKey(t), n)
}

// FormatScheduleID renders a schedule ID, e.g. "SRV-20250115-0042".
func FormatScheduleID(t time.Time, n int64) string {
	return fmt.Sprintf("%s-%s-%04d", PrefixSchedule, DateKey(t), n)
}

// FormatJobNumber renders a customer job number, e.g. "JB-0001".
func FormatJobNumber(n int64) string {
	return fmt.Sprintf("%s-%04d", PrefixJobNumber, n)
}

// FormatComplaintID renders a complaint ID, e.g. "COMP-001".
func FormatComplaintID(n int64) string {
	return fmt.Sprintf("%s-%03d", PrefixComplaint, n)
}

const randomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomDatedID renders a date-stamped ID with a random 5 character suffix,
// e.g. "RPT-20250115-X7K2Q". Callers must verify uniqueness against the store.
func RandomDatedID(prefix string, t time.Time) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than returning an error to every caller.
		ns := time.Now().UnixNano()
		for i := range buf {
			buf[i] = randomIDAlphabet[int(ns>>uint(i*6))%len(randomIDAlphabet)]
		}
	} else {
		for i := range buf {
			buf[i] = randomIDAlphabet[int(buf[i])%len(randomIDAlphabet)]
		}
	}
	return fmt.Sprintf("%s-%s-%s", prefix, DateKey(t), string(buf))
}
