package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/schedule"
)

const (
	maxNameRunes   = 100
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

var (
	// Letters in any script (plus combining marks left after NFC) separated by single spaces.
	reName  = regexp.MustCompile(`^[\p{L}\p{M}]+(?: [\p{L}\p{M}]+)*$`)
	reDigit = regexp.MustCompile(`^[0-9]+$`)
)

// BookRequest is the raw booking input.
type BookRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Validator normalizes and checks booking input against the calendar.
type Validator struct {
	Clock          clock.Clock
	Slots          *schedule.Generator
	Catalog        *catalog.Catalog
	MaxAdvanceDays int
	NameLocale     language.Tag // title-casing rules for names; Und when unset
}

// Booking returns a normalized copy of req or a *ValidationError naming the
// first bad field. Fields are checked in the order name, phone, service,
// date, time; missing fields are reported before malformed ones.
func (v *Validator) Booking(req BookRequest) (BookRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Service = strings.TrimSpace(req.Service)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	for _, f := range []struct{ name, val string }{
		{"name", req.Name}, {"phone", req.Phone}, {"service", req.Service},
		{"date", req.Date}, {"time", req.Time},
	} {
		if f.val == "" {
			return req, invalid(f.name, requiredMessage(f.name))
		}
	}

	var err error
	if req.Name, err = v.Name(req.Name); err != nil {
		return req, err
	}
	if req.Phone, err = NormalizePhone(req.Phone); err != nil {
		return req, err
	}
	if !v.Catalog.Has(req.Service) {
		return req, invalid("service", "unknown service")
	}
	if req.Date, err = v.BookableDate(req.Date); err != nil {
		return req, err
	}
	if !v.Slots.Contains(req.Time) {
		return req, invalid("time", "must be a slot start within business hours (HH:MM)")
	}
	return req, nil
}

// Name applies NFC normalization, collapses whitespace, checks the
// letters-and-spaces rule and title-cases the first letter of each word.
func (v *Validator) Name(s string) (string, error) {
	s = strings.Join(strings.Fields(norm.NFC.String(s)), " ")
	if s == "" {
		return "", invalid("name", requiredMessage("name"))
	}
	if utf8.RuneCountInString(s) > maxNameRunes {
		return "", invalid("name", fmt.Sprintf("must be at most %d characters", maxNameRunes))
	}
	if !reName.MatchString(s) {
		return "", invalid("name", "may contain only letters and spaces")
	}
	return cases.Title(v.NameLocale, cases.NoLower).String(s), nil
}

// NormalizePhone strips spaces, dashes, parentheses and one leading '+',
// then requires 10 to 15 digits.
func NormalizePhone(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
	if s == "" {
		return "", invalid("phone", requiredMessage("phone"))
	}
	if !reDigit.MatchString(s) {
		return "", invalid("phone", "may contain only digits")
	}
	if n := len(s); n < minPhoneDigits || n > maxPhoneDigits {
		return "", invalid("phone", fmt.Sprintf("must have %d to %d digits", minPhoneDigits, maxPhoneDigits))
	}
	return s, nil
}

// Fingerprint hashes the normalized booking so two spellings of the same
// request (spacing, phone punctuation, name case) match. Calendar rules are
// not applied: a retry must still match after its slot has passed.
func (v *Validator) Fingerprint(req BookRequest) string {
	name := strings.TrimSpace(req.Name)
	if n, err := v.Name(name); err == nil {
		name = n
	}
	phone := strings.TrimSpace(req.Phone)
	if p, err := NormalizePhone(phone); err == nil {
		phone = p
	}
	parts := []string{
		name,
		phone,
		strings.TrimSpace(req.Service),
		strings.TrimSpace(req.Date),
		strings.TrimSpace(req.Time),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// Date checks the YYYY-MM-DD format only.
func (v *Validator) Date(s string) (string, error) {
	d, err := clock.ParseDate(strings.TrimSpace(s), v.Clock.Location())
	if err != nil {
		return "", invalid("date", "must be a valid date (YYYY-MM-DD)")
	}
	return clock.FormatDate(d), nil
}

// BookableDate checks the format and that the date lies in
// [today, today+MaxAdvanceDays], both ends inclusive.
func (v *Validator) BookableDate(s string) (string, error) {
	ds, err := v.Date(s)
	if err != nil {
		return "", err
	}
	d, _ := clock.ParseDate(ds, v.Clock.Location())
	today := clock.Today(v.Clock)
	if d.Before(today) {
		return "", invalid("date", "must not be in the past")
	}
	if d.After(today.AddDate(0, 0, v.MaxAdvanceDays)) {
		return "", invalid("date", fmt.Sprintf("must be within %d days from today", v.MaxAdvanceDays))
	}
	return ds, nil
}

// Status parses a status filter or transition target.
func Status(s string) (domain.Status, error) {
	st := domain.Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", invalid("status", "must be one of active, completed, cancelled")
	}
	return st, nil
}

// slotIsPast reports whether hhmm on date has started relative to now.
// Dates before today are entirely past.
func slotIsPast(date, hhmm string, now time.Time) bool {
	today := clock.FormatDate(now)
	switch {
	case date < today:
		return true
	case date > today:
		return false
	default:
		return hhmm <= now.Format(clock.TimeLayout)
	}
}
