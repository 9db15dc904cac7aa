package tomldoc_test

import (
	"math"
	"testing"
	"time"

	"github.com/KimNorgaard/go-tomldoc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestConstructorsRaw(t *testing.T) {
	tests := []struct {
		value tomldoc.Value
		kind  tomldoc.Kind
		raw   string
	}{
		{tomldoc.NewString("say \"hi\"\n"), tomldoc.KindString, `"say \"hi\"\n"`},
		{tomldoc.NewInteger(-42), tomldoc.KindInteger, "-42"},
		{tomldoc.NewFloat(3), tomldoc.KindFloat, "3.0"},
		{tomldoc.NewFloat(math.Inf(-1)), tomldoc.KindFloat, "-inf"},
		{tomldoc.NewBoolean(true), tomldoc.KindBoolean, "true"},
		{tomldoc.NewInlineTable(), tomldoc.KindInlineTable, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.value.Kind())
			require.Equal(t, tt.raw, tt.value.Raw())
			require.Empty(t, tt.value.LeadingTrivia())
			require.Empty(t, tt.value.TrailingTrivia())
		})
	}

	arr, err := tomldoc.NewArray()
	require.NoError(t, err)
	require.Equal(t, "[]", arr.Raw())
	require.Equal(t, "inline table", tomldoc.KindInlineTable.String())
}

func TestNewArrayRejectsSharedValues(t *testing.T) {
	v := tomldoc.NewInteger(1)
	_, err := tomldoc.NewArray(v, v)
	require.ErrorIs(t, err, tomldoc.ErrAttached)

	arr, err := tomldoc.NewArray(v)
	require.NoError(t, err)
	_, err = tomldoc.NewArray(v)
	require.ErrorIs(t, err, tomldoc.ErrAttached)
	require.ErrorIs(t, arr.Append(v), tomldoc.ErrAttached)
	require.Equal(t, 1, arr.Len())

	d := tomldoc.New()
	_, err = d.InsertArray(0, "a", tomldoc.NewInteger(2))
	require.NoError(t, err)
	w := tomldoc.NewInteger(3)
	_, err = d.InsertArray(0, "a", w)
	require.ErrorIs(t, err, tomldoc.ErrDuplicateKey)
	_, err = d.InsertChild(1, "w", w)
	require.NoError(t, err, "a failed insertion releases the array's values")
	require.Equal(t, "a = [2]\nw = 3", d.String())
}

func TestStringStyle(t *testing.T) {
	d := mustParse(t, "a = \"x\"\nb = 'x'\nc = \"\"\"x\"\"\"\nd = '''x'''")
	styles := []tomldoc.StringStyle{
		tomldoc.BasicString, tomldoc.LiteralString, tomldoc.MultiLineBasicString, tomldoc.MultiLineLiteralString,
	}
	for i, c := range d.Children() {
		s := c.Value().(*tomldoc.StringValue)
		require.Equal(t, styles[i], s.Style(), c.Name())
		require.Equal(t, "x", s.Value())
	}
}

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		input    string
		kind     tomldoc.DatetimeKind
		expected string
	}{
		{"1979-05-27T07:32:00Z", tomldoc.OffsetDatetime, "1979-05-27T07:32:00Z"},
		{"1979-05-27 07:32:00z", tomldoc.OffsetDatetime, "1979-05-27T07:32:00Z"},
		{"1979-05-27T00:32:00.999999-07:00", tomldoc.OffsetDatetime, "1979-05-27T00:32:00.999999-07:00"},
		{"1979-05-27t07:32:00", tomldoc.LocalDatetime, "1979-05-27T07:32:00"},
		{"1979-05-27T00:32:00.5", tomldoc.LocalDatetime, "1979-05-27T00:32:00.5"},
		{"1979-05-27", tomldoc.LocalDate, "1979-05-27"},
		{"07:32:00", tomldoc.LocalTime, "07:32:00"},
		{"00:32:00.999999", tomldoc.LocalTime, "00:32:00.999999"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := tomldoc.ParseDatetime(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.kind, d.Kind)
			require.Equal(t, tt.expected, d.String())
		})
	}

	for _, input := range []string{"1979-05-27T7:32:00", "1979-05-27T07:32", "1979-02-30", "25:00:00", "1979-05-27T07:32:00+0700", "1979-05-27T07:32:00."} {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := tomldoc.ParseDatetime(input)
			require.Error(t, err)
		})
	}
}

func TestNewDatetime(t *testing.T) {
	dt := tomldoc.Datetime{Kind: tomldoc.LocalDate, Time: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}
	d := tomldoc.New()
	_, err := d.InsertDatetime(0, "day", dt)
	require.NoError(t, err)
	require.Equal(t, "day = 2024-02-29", d.String())

	parsed := mustParse(t, d.String())
	c, err := parsed.Child(0)
	require.NoError(t, err)
	require.Equal(t, dt, c.Value().Interface())
}

func TestMap(t *testing.T) {
	d := mustParse(t, `title = "x"
owner.name = "me"
owner.age = 3

[server.http]
port = 80

[[fruit]]
name = "apple"
[fruit.color]
value = "red"

[[fruit]]
name = "pear"
tags = ["a", "b"]
point = {x = 1, y.z = 2}
`)

	got, err := d.Map()
	require.NoError(t, err)
	want := map[string]any{
		"title": "x",
		"owner": map[string]any{"name": "me", "age": int64(3)},
		"server": map[string]any{
			"http": map[string]any{"port": int64(80)},
		},
		"fruit": []map[string]any{
			{"name": "apple", "color": map[string]any{"value": "red"}},
			{
				"name":  "pear",
				"tags":  []any{"a", "b"},
				"point": map[string]any{"x": int64(1), "y": map[string]any{"z": int64(2)}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapConflicts(t *testing.T) {
	d := tomldoc.New()
	_, err := d.InsertInteger(0, "a", 1)
	require.NoError(t, err)
	c, err := d.InsertContainer(0, []string{"a", "b"}, tomldoc.Table)
	require.NoError(t, err)
	_, err = c.InsertInteger(0, "x", 1)
	require.NoError(t, err)

	_, err = d.Map()
	require.EqualError(t, err, "tomldoc: a is not a table")

	d = tomldoc.New()
	_, err = d.InsertContainer(0, []string{"t"}, tomldoc.ArrayOfTables)
	require.NoError(t, err)
	t2, err := d.InsertContainer(1, []string{"u"}, tomldoc.Table)
	require.NoError(t, err)
	_, err = t2.InsertInteger(0, "k", 1)
	require.NoError(t, err)
	_, err = d.InsertDottedChild(0, []string{"u", "k"}, tomldoc.NewInteger(2))
	require.NoError(t, err)
	_, err = d.Map()
	require.ErrorIs(t, err, tomldoc.ErrDuplicateKey)
}
