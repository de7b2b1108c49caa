package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Statement
	}{
		{
			name: "single statement",
			text: "SELECT 1;",
			want: []Statement{"SELECT 1"},
		},
		{
			name: "multiple statements with noise",
			text: "SET @a = 1;\n\nSELECT * FROM t;\n;;  ;\nSELECT 2",
			want: []Statement{"SET @a = 1", "SELECT * FROM t", "SELECT 2"},
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			// Lexical splitting only: semicolons inside literals split too.
			name: "semicolon inside literal splits",
			text: "SELECT 'a;b'",
			want: []Statement{"SELECT 'a", "b'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestExtractDateRange(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name  string
		stmts []Statement
		want  DateRange
		ok    bool
	}{
		{
			name: "both markers double quoted",
			stmts: []Statement{
				`SET @start_date = "2024-01-01"`,
				`SET @end_date = "2024-01-03"`,
				`SELECT * FROM orders`,
			},
			want: DateRange{Start: day("2024-01-01"), End: day("2024-01-03")},
			ok:   true,
		},
		{
			name: "single quotes and mixed case",
			stmts: []Statement{
				`set @Start_Date='2023-06-15'`,
				`SET @END_DATE='2023-06-20'`,
			},
			want: DateRange{Start: day("2023-06-15"), End: day("2023-06-20")},
			ok:   true,
		},
		{
			name: "later assignment overrides earlier",
			stmts: []Statement{
				`SET @start_date = '2024-01-01'`,
				`SET @end_date = '2024-01-05'`,
				`SET @start_date = '2024-01-02'`,
			},
			want: DateRange{Start: day("2024-01-02"), End: day("2024-01-05")},
			ok:   true,
		},
		{
			name:  "only start marker",
			stmts: []Statement{`SET @start_date = '2024-01-01'`, `SELECT 1`},
			ok:    false,
		},
		{
			name:  "only end marker",
			stmts: []Statement{`SET @end_date = '2024-01-01'`},
			ok:    false,
		},
		{
			name:  "no markers",
			stmts: []Statement{`SELECT * FROM t`},
			ok:    false,
		},
		{
			name: "malformed date does not raise",
			stmts: []Statement{
				`SET @start_date = '2024-13-99'`,
				`SET @end_date = '2024-01-03'`,
			},
			ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDateRange(tt.stmts)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFoundMarkers(t *testing.T) {
	start, end := FoundMarkers([]Statement{`SET @start_date = '2024-01-01'`, `SELECT 1`})
	assert.True(t, start)
	assert.False(t, end)

	start, end = FoundMarkers([]Statement{`SELECT 1`})
	assert.False(t, start)
	assert.False(t, end)
}

func TestIsAssignment(t *testing.T) {
	assert.True(t, IsAssignment(`SET @start_date = '2024-01-01'`))
	assert.True(t, IsAssignment(`set @end_date="2024-01-01"`))
	assert.False(t, IsAssignment(`SELECT @start_date`))
	assert.False(t, IsAssignment(`SET @other = '2024-01-01'`))
}

func TestRewriteForDay(t *testing.T) {
	day, err := time.Parse("2006-01-02", "2024-02-29")
	require.NoError(t, err)

	tests := []struct {
		name string
		stmt Statement
		want Statement
	}{
		{
			name: "start marker, quote style preserved",
			stmt: `SET @start_date = "2024-01-01"`,
			want: `SET @start_date = "2024-02-29"`,
		},
		{
			name: "end marker single quoted",
			stmt: `SET @end_date='2024-01-03'`,
			want: `SET @end_date='2024-02-29'`,
		},
		{
			name: "surrounding text untouched",
			stmt: `SET @start_date = '2024-01-01' /* inclusive */`,
			want: `SET @start_date = '2024-02-29' /* inclusive */`,
		},
		{
			name: "non-marker statement unchanged",
			stmt: `SELECT * FROM t WHERE d = '2024-01-01'`,
			want: `SELECT * FROM t WHERE d = '2024-01-01'`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteForDay(tt.stmt, day))
		})
	}
}
