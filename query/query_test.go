package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquals(t *testing.T) {
	rec := map[string]any{"id": 123, "title": "Delete Me", "complete": false}

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"int id", Field("id").Equals(123), true},
		{"int64 id", Field("id").Equals(int64(123)), true},
		{"float id", Field("id").Equals(float64(123)), true},
		{"other id", Field("id").Equals(124), false},
		{"string vs int", Field("id").Equals("123"), false},
		{"title", Field("title").Equals("Delete Me"), true},
		{"title case", Field("title").Equals("delete me"), false},
		{"bool", Field("complete").Equals(false), true},
		{"missing field", Field("owner").Equals(nil), false},
		{"zero predicate", Predicate{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.p, rec))
		})
	}
}

func TestEquals_AfterJSONRoundTrip(t *testing.T) {
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "tags": ["a", "b"]}`), &rec))

	assert.True(t, Match(Field("id").Equals(7), rec))
	assert.True(t, Match(Field("tags").Equals([]any{"a", "b"}), rec))
	assert.True(t, Equal(json.Number("7"), 7))
}

func TestEquals_NilValue(t *testing.T) {
	rec := map[string]any{"owner": nil}
	assert.True(t, Match(Field("owner").Equals(nil), rec))
	assert.False(t, Match(Field("other").Equals(nil), rec))
}

func TestPredicate_String(t *testing.T) {
	assert.Equal(t, "id == 5", Field("id").Equals(5).String())
	assert.Equal(t, "<none>", Predicate{}.String())
	assert.Equal(t, "doc.id > 3", MustExpr("doc.id > 3").String())
}

func TestExpr(t *testing.T) {
	p, err := Expr(`doc.title == "Buy milk"`)
	require.NoError(t, err)

	assert.True(t, Match(p, map[string]any{"title": "Buy milk"}))
	assert.False(t, Match(p, map[string]any{"title": "Sell milk"}))
	// Missing key is an evaluation error, which never matches.
	assert.False(t, Match(p, map[string]any{"id": 1}))
}

func TestExpr_Compound(t *testing.T) {
	p := MustExpr(`"complete" in doc && doc.complete && doc.title.startsWith("Buy")`)

	assert.True(t, Match(p, map[string]any{"title": "Buy eggs", "complete": true}))
	assert.False(t, Match(p, map[string]any{"title": "Buy eggs", "complete": false}))
	assert.False(t, Match(p, map[string]any{"title": "Buy eggs"}))
}

func TestExpr_Invalid(t *testing.T) {
	_, err := Expr(`doc.title ==`)
	assert.Error(t, err)

	_, err = Expr(`"not a bool"`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustExpr(`)(`) })
}
