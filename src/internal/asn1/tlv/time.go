// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"time"
)

const (
	utcTimeLen         = len("YYMMDDHHMMSSZ")
	generalizedTimeLen = len("YYYYMMDDHHMMSSZ")
)

// Time returns the instant held by a UTCTime or GeneralizedTime element.
//
// Only the Zulu forms are understood: UTCTime must be exactly YYMMDDHHMMSSZ
// and GeneralizedTime exactly YYYYMMDDHHMMSSZ. Two-digit years below 50 are
// in the 2000s and the rest in the 1900s. Any other tag, shape or
// out-of-range field yields ok == false; this is never an error.
func (e Element) Time() (t time.Time, ok bool) {
	v := e.value
	if len(v) == 0 || v[len(v)-1] != 'Z' {
		return time.Time{}, false
	}

	var year int
	var rest []byte
	switch {
	case e.tag == TagUTCTime && len(v) == utcTimeLen:
		yy, ok := digits(v[0:2])
		if !ok {
			return time.Time{}, false
		}
		year = 2000 + yy
		if yy >= 50 {
			year = 1900 + yy
		}
		rest = v[2:]
	case e.tag == TagGeneralizedTime && len(v) == generalizedTimeLen:
		yyyy, ok := digits(v[0:4])
		if !ok {
			return time.Time{}, false
		}
		year = yyyy
		rest = v[4:]
	default:
		return time.Time{}, false
	}

	var f [5]int // month, day, hour, minute, second
	for i := range f {
		n, ok := digits(rest[2*i : 2*i+2])
		if !ok {
			return time.Time{}, false
		}
		f[i] = n
	}
	month, day, hour, minute, second := f[0], f[1], f[2], f[3], f[4]
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	t = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Day() != day {
		// time.Date normalized an impossible day such as February 30.
		return time.Time{}, false
	}
	return t, true
}

// digits parses b as an unsigned decimal made only of ASCII digits.
func digits(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// FromTime encodes t in UTC, as UTCTime for years 1950 through 2049 and as
// GeneralizedTime otherwise. Sub-second precision is dropped.
func FromTime(t time.Time) Element {
	t = t.UTC()
	if y := t.Year(); y >= 1950 && y < 2050 {
		return Element{tag: TagUTCTime, value: []byte(t.Format("060102150405Z"))}
	}
	return Element{tag: TagGeneralizedTime, value: []byte(t.Format("20060102150405Z"))}
}
