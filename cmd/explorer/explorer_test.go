package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explorer/internal/engine"
	"explorer/internal/models"
	"explorer/internal/query"
)

const testCSV = `index,name,country,province,city,latitude,longitude,websites
0,McDonald's,US,MI,Grand Rapids,42.96,-85.66,http://mcdonalds.com
1,Taco Bell,US,MI,Grand Rapids,42.97,-85.67,
2,Burger King,US,MI,Detroit,42.33,-83.04,
3,Checkers,US,FL,Miami,25.76,-80.19,
4,Checkers,US,GA,Atlanta,33.75,-84.39,
5,Tim Hortons,CA,ON,Toronto,43.65,-79.38,
6,Wendy's,US,OH,Dublin,,-83.11,
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurants.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return path
}

func testStore(t *testing.T) *engine.RecordStore {
	t.Helper()
	rows, err := engine.ParseCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	store, err := engine.Clean(context.Background(), rows)
	require.NoError(t, err)
	return store
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func runMenu(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	m := &menu{
		store: testStore(t),
		in:    bufio.NewScanner(strings.NewReader(input)),
		out:   &out,
	}
	require.NoError(t, m.run())
	return out.String()
}

func TestQueryCmd_DensestCity(t *testing.T) {
	out, _, err := execute(t, "--file", writeCSV(t), "query", "densest-city", "--country", "US", "--province", "MI")
	require.NoError(t, err)

	assert.Contains(t, out, "The city with the most fast-food restaurants is Grand Rapids with 2 restaurants.")
	assert.Contains(t, out, "Detroit")
	assert.NotContains(t, out, "Miami")
}

func TestQueryCmd_JSON(t *testing.T) {
	out, _, err := execute(t, "--file", writeCSV(t), "query", "market-share", "--json")
	require.NoError(t, err)

	var res models.QueryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, string(query.MarketShare), res.Query)
	require.NotNil(t, res.Ranking)
	assert.Equal(t, "Checkers", res.Ranking.Entries[0].Key)
	assert.Equal(t, 6, res.Ranking.Total)
}

func TestQueryCmd_NotFound(t *testing.T) {
	out, _, err := execute(t, "--file", writeCSV(t), "query", "brand-by-region", "--name", "zzz-no-match")
	require.NoError(t, err)
	assert.Equal(t, "No restaurants found for zzz-no-match.\n", out)
}

func TestQueryCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "--file", writeCSV(t), "query", "busiest-street")
	assert.ErrorIs(t, err, query.ErrUnknownQuery)

	_, _, err = execute(t, "--file", writeCSV(t), "query", "brand-by-region")
	assert.ErrorIs(t, err, query.ErrInvalidParams)

	_, stderr, err := execute(t, "--file", filepath.Join(t.TempDir(), "missing.csv"), "query", "scatter")
	assert.ErrorIs(t, err, engine.ErrDataUnavailable)
	assert.Contains(t, stderr, unavailableMessage)
}

func TestRun_ReportsErrors(t *testing.T) {
	csv := writeCSV(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing name", []string{"--file", csv, "query", "brand-by-region"}, "name is required"},
		{"unknown query", []string{"--file", csv, "query", "busiest-street"}, "unknown query"},
		{"bad flag", []string{"query", "scatter", "--radius", "5"}, "unknown flag: --radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(""), &stdout, &stderr)

			assert.Equal(t, 1, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestRun_Success(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--file", writeCSV(t), "query", "market-share"},
		strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Distribution of restaurants by percentage:")
	assert.Empty(t, stderr.String())
}

func TestExportCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "us.arrow")
	_, stderr, err := execute(t, "--file", writeCSV(t), "export", "--out", out, "--country", "US")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote 5 records")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	r, err := ipc.NewReader(f)
	require.NoError(t, err)
	defer r.Release()
	rows := 0
	for r.Next() {
		rows += int(r.Record().NumRows())
	}
	require.NoError(t, r.Err())
	assert.Equal(t, 5, rows)
}

func TestMenu_Session(t *testing.T) {
	out := runMenu(t, strings.Join([]string{
		"1", "us", "MI",
		"2", "", "checkers", "",
		"2", "", "zzz",
		"3", "CA", "MI",
		"4",
		"9",
		"q",
	}, "\n")+"\n")

	assert.Contains(t, out, "Welcome to the fast-food restaurant explorer.")
	assert.Contains(t, out, "The city with the most fast-food restaurants is Grand Rapids with 2 restaurants.")
	assert.Contains(t, out, "Number of checkers restaurants by state:")
	assert.Contains(t, out, "No restaurants found for zzz.")
	assert.Contains(t, out, "No geographical data available for the selected province or dataset.")
	assert.Contains(t, out, "Distribution of restaurants by percentage:")
	assert.Contains(t, out, `Unknown choice "9".`)
}

func TestMenu_StateRefinement(t *testing.T) {
	out := runMenu(t, "2\nUS\nCheckers\nga\nq\n")

	assert.Contains(t, out, "Filter by State [All FL GA]")
	assert.Contains(t, out, "GA     1")
	assert.NotContains(t, out, "FL     1")
}

func TestMenu_InvalidOptionReprompts(t *testing.T) {
	out := runMenu(t, "1\nFrance\nCA\n\nq\n")

	assert.Contains(t, out, `"France" is not one of the options.`)
	assert.Contains(t, out, "Toronto with 1 restaurants")
}

func TestMenu_EmptyNameAndEOF(t *testing.T) {
	out := runMenu(t, "2\n\n\n")
	assert.Contains(t, out, "Please enter a restaurant name to begin the analysis.")

	assert.NotPanics(t, func() { runMenu(t, "") })
	assert.NotPanics(t, func() { runMenu(t, "1\nUS") })
}

func TestRenderer_ScatterLimit(t *testing.T) {
	res := query.RunScatter(testStore(t), query.Params{Country: "US"})

	var buf bytes.Buffer
	require.NoError(t, renderer{w: &buf, pointLimit: 3}.render(res))

	out := buf.String()
	assert.Contains(t, out, "Geographical distribution of 5 fast-food locations:")
	assert.Contains(t, out, "... and 2 more")
	assert.Equal(t, 1+1+3+1, strings.Count(out, "\n"))
}

func TestRenderer_PercentTable(t *testing.T) {
	res, err := query.RunMarketShare(testStore(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer{w: &buf}.render(res))
	assert.Contains(t, buf.String(), "RESTAURANT   COUNT  SHARE")
	assert.Contains(t, buf.String(), "33.3%")
}
