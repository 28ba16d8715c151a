package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/cohortplanner/core/cohort"
)

func setup(in string) (*commandLine, *bytes.Buffer) {
	var out bytes.Buffer
	return &commandLine{
		in:     strings.NewReader(in),
		out:    &out,
		policy: cohort.DefaultPolicy,
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	in         string   // stdin
	wantErr    error    // matched with errors.Is
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(tt.in)
			err := cli.run(args)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantOut, out.String())
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "help flag", args: []string{"policy", "-h"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"policy", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	})
}

func Test_commandLine_policy(t *testing.T) {
	runCLITests(t, []cliTest{
		{
			name:    "configured policy",
			args:    []string{"policy"},
			wantOut: "ideal     20\nmin_size  5\nmax_size  30\n",
		},
		{
			name:    "overridden policy",
			args:    []string{"policy", "-ideal", "10", "-min", "3", "-max", "12"},
			wantOut: "ideal     10\nmin_size  3\nmax_size  12\n",
		},
		{name: "min above ideal", args: []string{"policy", "-min", "25"}, wantErr: cohort.ErrInvalidConfiguration},
		{name: "zero max", args: []string{"policy", "-max", "0"}, wantErr: cohort.ErrInvalidConfiguration},
	})
}

func Test_commandLine_partition(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no args", args: []string{"partition"}, wantErr: errHelp},
		{name: "no students", args: []string{"partition", "-students", "0"}, wantOut: "-\n"},
		{name: "single cohort", args: []string{"partition", "-students", "25"}, wantOut: "25\n"},
		{name: "remainder cohort", args: []string{"partition", "-students", "37"}, wantOut: "20 17\n"},
		{name: "rebalanced", args: []string{"partition", "-students", "62"}, wantOut: "21 21 20\n"},
		{
			name:    "overridden policy",
			args:    []string{"partition", "-students", "45", "-max", "22"},
			wantOut: "15 15 15\n",
		},
		{
			name:       "not a number",
			args:       []string{"partition", "-students", "lol"},
			wantErrStr: `students must be an integer (got "lol")`,
		},
		{name: "negative students", args: []string{"partition", "-students", "-1"}, wantErr: cohort.ErrInvalidInput},
		{name: "largest headcount", args: []string{"partition", "-students", "100000"}, wantOut: strings.Repeat("20 ", 4999) + "20\n"},
		{
			name:    "too many students",
			args:    []string{"partition", "-students", "9000000000000000000"},
			wantErr: cohort.ErrInvalidInput,
		},
		{
			name:    "invalid policy",
			args:    []string{"partition", "-students", "10", "-ideal", "40"},
			wantErr: cohort.ErrInvalidConfiguration,
		},
	})
}

func Test_commandLine_plan(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tallies.csv")
	if err := os.WriteFile(file, []byte("level,students\n4,18\n6,37\n"), 0o600); err != nil {
		t.Fatalf("writing tallies failed: %v", err)
	}

	runCLITests(t, []cliTest{
		{name: "no args", args: []string{"plan"}, wantErr: errHelp},
		{
			name: "from file",
			args: []string{"plan", "-file", file},
			wantOut: "LEVEL  STUDENTS  COHORTS  SIZES\n" +
				"4      18        1        18\n" +
				"6      37        2        20 17\n",
		},
		{
			name: "from stdin with small level",
			args: []string{"plan", "-file", "-"},
			in:   "# school: Wima\nlevel,students\n4,18\n6,37\nB1,3\n",
			wantOut: "LEVEL  STUDENTS  COHORTS  SIZES\n" +
				"4      18        1        18\n" +
				"6      37        2        20 17\n" +
				"B1     3         1        3*\n" +
				"* outside the 5..30 size bounds\n",
		},
		{
			name:    "no header",
			args:    []string{"plan", "-file", "-"},
			in:      "7, 0\n",
			wantOut: "LEVEL  STUDENTS  COHORTS  SIZES\n7      0         0        -\n",
		},
		{
			name:       "bad count",
			args:       []string{"plan", "-file", "-"},
			in:         "4,18\n6,lol\n",
			wantErrStr: `reading -: record 2: students must be an integer (got "lol")`,
		},
		{
			name:       "missing level",
			args:       []string{"plan", "-file", "-"},
			in:         "4,18\n,3\n",
			wantErrStr: "reading -: record 2: level is required",
		},
		{name: "negative count", args: []string{"plan", "-file", "-"}, in: "4,-3\n", wantErr: cohort.ErrInvalidInput},
		{
			name:       "too many students",
			args:       []string{"plan", "-file", "-"},
			in:         "4,18\n6,400000000\n",
			wantErrStr: "reading -: record 2: invalid student count",
		},
		{
			name:    "missing file",
			args:    []string{"plan", "-file", filepath.Join(t.TempDir(), "lol.csv")},
			wantErr: os.ErrNotExist,
		},
	})
}

func Test_commandLine_plan_json(t *testing.T) {
	cli, out := setup("level,students\n4,18\nB1,37\n")

	require.NoError(t, cli.run([]string{"admin", "plan", "-file", "-", "-json"}))
	assert.JSONEq(t, `[{"level": 4, "cohorts": [18]}, {"level": "B1", "cohorts": [20, 17]}]`, out.String())
}

func Test_describe(t *testing.T) {
	cli, _ := setup("4,18\n6,-3\n")

	err := cli.run([]string{"admin", "plan", "-file", "-"})
	require.Error(t, err)
	assert.Equal(t,
		"planning cohorts: invalid student count (levels[1].students must be a non-negative integer)",
		describe(err),
	)
	assert.Equal(t, "lol", describe(errors.New("lol")))

	err = cli.run([]string{"admin", "partition", "-students", "100001"})
	require.Error(t, err)
	assert.Equal(t, "invalid student count (students must not exceed 100000)", describe(err))
}
