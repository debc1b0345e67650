package entity

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ValueKind identifica o tipo escalar armazenado em um Value.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindString
	KindNumber
	KindTime
)

// DateLayouts são os formatos aceitos ao interpretar datas textuais.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Value is a single scalar field value: a string, a number or a timestamp.
// The zero Value is missing.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	at   time.Time
}

// Missing retorna um valor ausente.
func Missing() Value { return Value{} }

// String cria um valor textual. Bytes UTF-8 inválidos (ex.: CSV em Latin-1) viram U+FFFD,
// a mesma forma que o JSON exportado carrega.
func String(s string) Value {
	return Value{kind: KindString, str: strings.ToValidUTF8(s, "\uFFFD")}
}

// Number cria um valor numérico.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Time cria um valor de data. Datas zero são tratadas como ausentes.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Missing()
	}
	return Value{kind: KindTime, at: t}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// AsNumber returns the numeric form of v. Strings holding a valid number are accepted.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// AsTime returns the timestamp form of v. Strings are parsed with DateLayouts.
func (v Value) AsTime() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.at, true
	case KindString:
		return ParseDate(v.str)
	}
	return time.Time{}, false
}

// Text returns the canonical string form of the value.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.at.Format(time.RFC3339)
	}
	return ""
}

// MarshalJSON renderiza datas na forma canônica (RFC3339) e ausentes como null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString, KindTime:
		return json.Marshal(v.Text())
	case KindNumber:
		return json.Marshal(v.num)
	}
	return []byte("null"), nil
}

// Compare ordena dois valores: ausentes por último, números e datas pelo valor natural,
// demais pela forma textual.
func Compare(a, b Value) int {
	if a.IsMissing() || b.IsMissing() {
		switch {
		case a.IsMissing() && b.IsMissing():
			return 0
		case a.IsMissing():
			return 1
		default:
			return -1
		}
	}

	if a.kind == KindTime || b.kind == KindTime {
		at, aok := a.AsTime()
		bt, bok := b.AsTime()
		if aok && bok {
			return at.Compare(bt)
		}
	}

	if a.kind == KindNumber || b.kind == KindNumber {
		an, aok := a.AsNumber()
		bn, bok := b.AsNumber()
		if aok && bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(a.Text(), b.Text())
}

// ParseDate interpreta uma data textual usando DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
