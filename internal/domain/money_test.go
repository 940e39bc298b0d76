package domain

import (
	"encoding/json"
	"testing"
)

func TestCentsString(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{1999, "19.99"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Cents(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCentsMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Cents(1999))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"19.99"` {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestCentsUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{`"19.99"`, 1999},
		{`"5"`, 500},
		{`"0.5"`, 50},
		{`19.99`, 1999},
		{`7`, 700},
	}
	for _, c := range cases {
		var got Cents
		if err := json.Unmarshal([]byte(c.in), &got); err != nil {
			t.Errorf("unmarshal %s: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("unmarshal %s = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseCentsRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "1.999", "1.2.3"} {
		if _, err := ParseCents(in); err == nil {
			t.Errorf("ParseCents(%q) expected error", in)
		}
	}
}

func TestParseCentsRoundTrip(t *testing.T) {
	for _, v := range []Cents{0, 1, 99, 100, 12999, 1000000} {
		got, err := ParseCents(v.String())
		if err != nil {
			t.Fatalf("ParseCents(%q): %v", v.String(), err)
		}
		if got != v {
			t.Fatalf("round trip %d -> %q -> %d", v, v.String(), got)
		}
	}
}
