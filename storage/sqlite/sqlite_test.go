package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

var users = &schema.Schema{
	Name: "users",
	Fields: schema.Fields{
		"id":         {Type: schema.Number},
		"name":       {Type: schema.Text},
		"lastname":   {Type: schema.Text},
		"status":     {},
		"points":     {Type: schema.Number},
		"labels":     {ArrayFilterable: true},
		"created_at": {Type: schema.Date},
	},
}

func newUsers(t *testing.T) *Handler {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewHandler(db, users)
	require.NoError(t, h.CreateTable(context.Background()))
	created := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	rows := []map[string]interface{}{
		{"id": 1, "name": "Luis", "lastname": "De Sousa", "status": "Open", "points": 3, "labels": []interface{}{"api", "backend"}, "created_at": created},
		{"id": 2, "name": "Pepeto", "lastname": "Gonzalez", "status": "Closed", "points": 5, "labels": []interface{}{"web"}, "created_at": created.AddDate(0, 0, 1)},
		{"id": 3, "name": "Luis", "lastname": "Candelario", "status": "", "points": 1.5, "created_at": created.AddDate(0, 0, 2)},
		{"id": 4, "name": "Pepeto", "lastname": "Brown", "status": nil, "points": 8},
		{"id": 5, "name": "Luis", "lastname": "Jardin", "status": "Open", "points": 2, "labels": []interface{}{"web", "api"}},
		{"id": 6, "name": "Luis", "lastname": "Candelario Gonzalez", "status": "Open_2", "points": 13},
	}
	items := make([]*resource.Item, 0, len(rows))
	for _, row := range rows {
		item, err := resource.NewItem(row)
		require.NoError(t, err)
		items = append(items, item)
	}
	require.NoError(t, h.Insert(context.Background(), items))
	return h
}

func lastnames(list *resource.ItemList) []interface{} {
	names := []interface{}{}
	for _, item := range list.Items {
		names = append(names, item.Payload["lastname"])
	}
	return names
}

func TestFindSort(t *testing.T) {
	h := newUsers(t)
	p := resource.NewPlan().OrderBy("name", true).OrderBy("lastname", false)
	list, err := h.Find(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
	assert.Equal(t, []interface{}{"Brown", "Gonzalez", "Candelario", "Candelario Gonzalez", "De Sousa", "Jardin"}, lastnames(list))
}

func TestFindWindow(t *testing.T) {
	h := newUsers(t)
	p := resource.NewPlan().OrderBy("id", false).Paginate(query.Page{Number: 2, Size: 4})
	list, err := h.Find(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
	assert.Equal(t, []interface{}{"Jardin", "Candelario Gonzalez"}, lastnames(list))

	p = resource.NewPlan().Paginate(query.Page{Number: 3, Size: 4})
	list, err = h.Find(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
	assert.Empty(t, list.Items)
}

func TestFindPageOutOfRange(t *testing.T) {
	h := newUsers(t)
	p := resource.NewPlan().Paginate(query.Page{Number: 100000000000000000, Size: 100})
	list, err := h.Find(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
	assert.Empty(t, list.Items)

	p = resource.NewPlan().OrderBy("id", false)
	p.Window = &query.Window{Offset: -4, Limit: 2}
	list, err = h.Find(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"De Sousa", "Gonzalez"}, lastnames(list))
}

func TestFindPredicate(t *testing.T) {
	h := newUsers(t)
	cases := []struct {
		name string
		plan *resource.Plan
		want []interface{}
	}{
		{"equal", resource.NewPlan().Where("status", query.OpEqual, query.String("Open")),
			[]interface{}{"De Sousa", "Jardin"}},
		{"not equal", resource.NewPlan().Where("status", query.OpNotEqual, query.String("Open")),
			[]interface{}{"Gonzalez", "Candelario", "Candelario Gonzalez"}},
		{"greater than", resource.NewPlan().Where("points", query.OpGreaterThan, query.Number(3)),
			[]interface{}{"Gonzalez", "Brown", "Candelario Gonzalez"}},
		{"between", resource.NewPlan().
			Where("points", query.OpGreaterOrEqual, query.Number(2)).
			Where("points", query.OpLowerOrEqual, query.Number(5)),
			[]interface{}{"De Sousa", "Gonzalez", "Jardin"}},
		{"in", resource.NewPlan().WhereIn("id", query.Number(1), query.Number(3)),
			[]interface{}{"De Sousa", "Candelario"}},
		{"not in", resource.NewPlan().WhereNotIn("status", query.String("Open"), query.String("Closed")),
			[]interface{}{"Candelario", "Candelario Gonzalez"}},
		{"blank", resource.NewPlan().WhereBlank("status", false),
			[]interface{}{"Candelario", "Brown"}},
		{"not blank", resource.NewPlan().WhereBlank("status", true),
			[]interface{}{"De Sousa", "Gonzalez", "Candelario", "Jardin", "Candelario Gonzalez"}},
		{"like", resource.NewPlan().WhereLike("lastname", query.EscapeLike("%cand%")),
			[]interface{}{"Candelario", "Candelario Gonzalez"}},
		{"like escapes underscore", resource.NewPlan().WhereLike("status", `open\_%`),
			[]interface{}{"Candelario Gonzalez"}},
		{"date", resource.NewPlan().WhereDate("created_at", query.OpEqual, query.Date(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))),
			[]interface{}{"Gonzalez"}},
		{"date after", resource.NewPlan().WhereDate("created_at", query.OpGreaterThan, query.Date(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))),
			[]interface{}{"Gonzalez", "Candelario"}},
		{"array membership", resource.NewPlan().Where("labels", query.OpEqual, query.String("api")),
			[]interface{}{"De Sousa", "Jardin"}},
		{"array exclusion", resource.NewPlan().Where("labels", query.OpNotEqual, query.String("api")),
			[]interface{}{"Gonzalez"}},
		{"array in", resource.NewPlan().WhereIn("labels", query.String("backend"), query.String("web")),
			[]interface{}{"De Sousa", "Gonzalez", "Jardin"}},
		{"array not in", resource.NewPlan().WhereNotIn("labels", query.String("web")),
			[]interface{}{"De Sousa"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := h.Find(context.Background(), tc.plan)
			require.NoError(t, err)
			assert.Equal(t, tc.want, lastnames(list))
			assert.Equal(t, len(tc.want), list.Total)
		})
	}
}

func TestFindDecodesValues(t *testing.T) {
	h := newUsers(t)
	list, err := h.Find(context.Background(), resource.NewPlan().WhereIn("id", query.Number(1), query.Number(3)))
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	first := list.Items[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(3), first.Payload["points"])
	assert.Equal(t, []interface{}{"api", "backend"}, first.Payload["labels"])
	assert.Equal(t, "2024-03-10 23:30:00", first.Payload["created_at"])
	assert.Equal(t, 1.5, list.Items[1].Payload["points"])
	assert.Nil(t, list.Items[1].Payload["labels"])
}

func TestFindUnknownColumn(t *testing.T) {
	h := newUsers(t)
	_, err := h.Find(context.Background(), resource.NewPlan().Where(`name" OR 1=1 --`, query.OpEqual, query.String("x")))
	assert.ErrorIs(t, err, resource.ErrNotImplemented)
	_, err = h.Find(context.Background(), resource.NewPlan().OrderBy("password", false))
	assert.ErrorIs(t, err, resource.ErrNotImplemented)
}

func TestFindUnsupportedArrayOperator(t *testing.T) {
	h := newUsers(t)
	_, err := h.Find(context.Background(), resource.NewPlan().Where("labels", query.OpGreaterThan, query.String("a")))
	assert.ErrorIs(t, err, resource.ErrNotImplemented)
}

func TestInsertConflict(t *testing.T) {
	h := newUsers(t)
	item, err := resource.NewItem(map[string]interface{}{"id": 1, "name": "Dup"})
	require.NoError(t, err)
	err = h.Insert(context.Background(), []*resource.Item{item})
	assert.Equal(t, resource.ErrConflict, err)

	list, err := h.Find(context.Background(), resource.NewPlan())
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
}

func TestCreateTableWithoutName(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	h := NewHandler(db, &schema.Schema{Fields: schema.Fields{"id": {}}})
	assert.Equal(t, ErrNoTable, h.CreateTable(context.Background()))
}

func TestFindCanceledContext(t *testing.T) {
	h := newUsers(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Find(ctx, resource.NewPlan())
	assert.Error(t, err)
}
