package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, routes ...[3]string) *Table[string] {
	t.Helper()
	tbl := &Table[string]{}
	for _, r := range routes {
		var methods []string
		if r[1] != "" {
			methods = []string{r[1]}
		}
		require.NoError(t, tbl.Add(r[0], methods, r[2], r[2]))
	}
	return tbl
}

func TestTable_DefaultMethodIsGet(t *testing.T) {
	tbl := newTable(t, [3]string{"/", "", "index"})

	e, _, ok := tbl.Match("/", "GET")
	require.True(t, ok)
	assert.Equal(t, "index", e.Handler)
	assert.Equal(t, []string{"GET"}, e.Methods)

	_, _, ok = tbl.Match("/", "POST")
	assert.False(t, ok)
}

func TestTable_MethodCaseInsensitive(t *testing.T) {
	tbl := &Table[string]{}
	require.NoError(t, tbl.Add("/add", []string{"post"}, "add", "add"))

	for _, m := range []string{"POST", "post", "Post"} {
		_, _, ok := tbl.Match("/add", m)
		assert.True(t, ok, m)
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	tbl := newTable(t,
		[3]string{"/item/<int:id>", "GET", "first"},
		[3]string{"/item/<int:id>", "GET", "second"},
	)
	e, params, ok := tbl.Match("/item/4", "GET")
	require.True(t, ok)
	assert.Equal(t, "first", e.Handler)
	assert.Equal(t, Params{"id": 4}, params)
}

func TestTable_MethodMismatchTriesLaterRoutes(t *testing.T) {
	tbl := newTable(t,
		[3]string{"/item/<int:id>", "GET", "show"},
		[3]string{"/item/<int:id>", "POST", "edit"},
	)
	e, _, ok := tbl.Match("/item/4", "POST")
	require.True(t, ok)
	assert.Equal(t, "edit", e.Handler)

	_, _, ok = tbl.Match("/item/4", "DELETE")
	assert.False(t, ok)
}

func TestTable_NotFound(t *testing.T) {
	tbl := newTable(t, [3]string{"/delete/<int:id>", "POST", "delete"})

	_, _, ok := tbl.Match("/delete/abc", "POST")
	assert.False(t, ok)
	_, _, ok = tbl.Match("/nothing", "POST")
	assert.False(t, ok)
}

func TestTable_Deterministic(t *testing.T) {
	tbl := newTable(t,
		[3]string{"/", "GET", "index"},
		[3]string{"/a/<int:x>", "GET", "a"},
	)
	for i := 0; i < 5; i++ {
		e, params, ok := tbl.Match("/a/10", "GET")
		require.True(t, ok)
		assert.Equal(t, "a", e.Handler)
		assert.Equal(t, Params{"x": 10}, params)
	}
}

func TestTable_URL(t *testing.T) {
	tbl := newTable(t,
		[3]string{"/", "GET", "todo.index"},
		[3]string{"/delete/<int:todo_id>", "POST", "todo.delete"},
	)

	u, err := tbl.URL("todo.index", nil)
	require.NoError(t, err)
	assert.Equal(t, "/", u)

	u, err = tbl.URL("todo.delete", Params{"todo_id": 3})
	require.NoError(t, err)
	assert.Equal(t, "/delete/3", u)

	_, err = tbl.URL("todo.missing", nil)
	assert.Error(t, err)
}

func TestTable_AddRejectsBadPattern(t *testing.T) {
	tbl := &Table[string]{}
	assert.Error(t, tbl.Add("/<uuid:id>", nil, "x", "x"))
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_Entries(t *testing.T) {
	tbl := newTable(t, [3]string{"/a", "", "a"}, [3]string{"/b", "", "b"})
	entries := tbl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "/a", entries[0].Pattern.String())
	assert.Equal(t, "b", entries[1].Endpoint)
}
