package document

import (
	"reflect"
	"strings"
	"testing"

	"github.com/veleth/stagehand/internal/apperr"
)

func TestEncodePlain_PreservesOrder(t *testing.T) {
	fields := Fields{
		{Name: "name", Value: "BD-2 Blues Driver"},
		{Name: "manufacturer", Value: "BOSS"},
		{Name: "category", Value: "Pedal"},
		{Name: "technology", Value: "Analog"},
	}

	data, err := EncodePlain(fields)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	order := []string{"name:", "manufacturer:", "category:", "technology:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("encoded document missing %q:\n%s", key, text)
		}
		if idx < last {
			t.Fatalf("key %q out of order:\n%s", key, text)
		}
		last = idx
	}
}

func TestPlainRoundTrip(t *testing.T) {
	fields := Fields{
		{Name: "name", Value: "Microkorg"},
		{Name: "manufacturer", Value: "Korg"},
		{Name: "category", Value: "Synth"},
		{Name: "technology", Value: "Digital"},
		{Name: "types", Value: []string{"Virtual Analog", "Vocoder"}},
		{Name: "description", Value: "Klasyczny wirtualno-analogowy syntezator z wokoderem, używany na żywo."},
	}

	data, err := EncodePlain(fields)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodePlain(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, fields)
	}
}

func TestPlainRoundTrip_AmbiguousScalars(t *testing.T) {
	// Values that YAML would otherwise resolve to bool, date, or number must
	// survive as strings.
	fields := Fields{
		{Name: "date", Value: "2025-10-11"},
		{Name: "flag", Value: "true"},
		{Name: "number", Value: "42"},
		{Name: "draft", Value: false},
	}

	data, err := EncodePlain(fields)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodePlain(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, fields)
	}
}

func TestDecodePlain_Invalid(t *testing.T) {
	_, err := DecodePlain([]byte("{invalid: [yaml"))
	if !apperr.IsFormat(err) {
		t.Errorf("want a format error, got %v", err)
	}

	_, err = DecodePlain([]byte("- a\n- b\n"))
	if !apperr.IsFormat(err) {
		t.Errorf("want a format error for non-mapping document, got %v", err)
	}
}

func TestSplitRoundTrip(t *testing.T) {
	fields := Fields{
		{Name: "title", Value: "Noise Space XV"},
		{Name: "date", Value: "2025-10-11"},
		{Name: "venue", Value: "Klub Mózg"},
		{Name: "location", Value: "Bydgoszcz"},
		{Name: "draft", Value: false},
		{Name: "other_performers", Value: []Fields{
			{{Name: "name", Value: "Echo Unit"}, {Name: "url", Value: "https://example.org/echo"}},
			{{Name: "name", Value: "Static Field"}},
		}},
	}
	body := "An evening of improvised noise.\n\nDoors at 19:00."

	data, err := EncodeSplit(fields, body)
	if err != nil {
		t.Fatal(err)
	}

	gotFields, gotBody, err := DecodeSplit(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotFields, fields) {
		t.Errorf("fields mismatch:\n got %#v\nwant %#v", gotFields, fields)
	}
	if gotBody != body {
		t.Errorf("body mismatch:\n got %q\nwant %q", gotBody, body)
	}
}

func TestEncodeSplit_EmptyBody(t *testing.T) {
	fields := Fields{{Name: "title", Value: "Untitled"}, {Name: "date", Value: "2025-01-01"}}

	data, err := EncodeSplit(fields, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "---\n") {
		t.Errorf("header-only file should end at the closing delimiter:\n%s", data)
	}

	_, body, err := DecodeSplit(data)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		t.Errorf("want empty body, got %q", body)
	}
}

func TestDecodeSplit_BodyTrimmed(t *testing.T) {
	raw := "---\ntitle: Test\n---\n\n\n  padded body  \n\n"
	_, body, err := DecodeSplit([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if body != "padded body" {
		t.Errorf("want trimmed body, got %q", body)
	}
}

func TestDecodeSplit_InvalidFrontmatter(t *testing.T) {
	cases := []string{
		"title: No Delimiters\n",
		"---\ntitle: Unclosed Header\n",
		"title: Late Start\n---\nbody\n",
	}
	for _, raw := range cases {
		_, _, err := DecodeSplit([]byte(raw))
		if !apperr.IsFormat(err) {
			t.Errorf("DecodeSplit(%q): want a format error, got %v", raw, err)
		}
	}
}

func TestFields_SetGetDelete(t *testing.T) {
	var f Fields
	f.Set("a", "1")
	f.Set("b", "2")
	f.Set("a", "3")

	if got := f.String("a"); got != "3" {
		t.Errorf("Set should replace in place, got %q", got)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("unexpected order %v", got)
	}
	if !f.Delete("a") {
		t.Error("Delete returned false for a present field")
	}
	if f.Has("a") {
		t.Error("field still present after Delete")
	}
	if f.Delete("missing") {
		t.Error("Delete returned true for an absent field")
	}
}

func TestFields_CloneIsDeep(t *testing.T) {
	orig := Fields{
		{Name: "types", Value: []string{"Overdrive"}},
		{Name: "performers", Value: []Fields{{{Name: "name", Value: "A"}}}},
	}
	clone := orig.Clone()

	clone.Strings("types")[0] = "Fuzz"
	if orig.Strings("types")[0] != "Overdrive" {
		t.Error("Clone shares the string slice")
	}

	subs := clone[1].Value.([]Fields)
	subs[0].Set("name", "B")
	if got := orig[1].Value.([]Fields)[0].String("name"); got != "A" {
		t.Errorf("Clone shares sub-records, got %q", got)
	}
}
