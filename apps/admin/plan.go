package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/cohortplanner/core"
	"github.com/trezcool/cohortplanner/core/cohort"
)

func (cli *commandLine) printPolicy(p cohort.Policy) error {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ideal\t%d\n", p.Ideal)
	fmt.Fprintf(w, "min_size\t%d\n", p.MinSize)
	fmt.Fprintf(w, "max_size\t%d\n", p.MaxSize)
	return w.Flush()
}

func (cli *commandLine) partition(planner *cohort.Planner, students int) error {
	cohorts, err := planner.Partition(students)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, formatSizes(cohorts, nil))
	return err
}

func (cli *commandLine) plan(planner *cohort.Planner, file string, asJSON bool) error {
	var r io.Reader = cli.in
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return errors.Wrap(err, "opening tallies")
		}
		defer f.Close()
		r = f
	}

	levels, err := readTallies(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", file)
	}
	plans, err := planner.Plan(levels)
	if err != nil {
		return errors.Wrap(err, "planning cohorts")
	}

	if asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(plans)
	}

	policy := planner.Policy()
	var flagged bool
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tSTUDENTS\tCOHORTS\tSIZES")
	for _, plan := range plans {
		oob := plan.OutOfBounds(policy)
		flagged = flagged || len(oob) > 0
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", plan.Level, plan.Total(), len(plan.Cohorts), formatSizes(plan.Cohorts, oob))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if flagged {
		_, err = fmt.Fprintf(cli.out, "* outside the %d..%d size bounds\n", policy.MinSize, policy.MaxSize)
	}
	return err
}

// readTallies reads `level,students` records. A first record whose count is
// not a number is taken as the header.
func readTallies(r io.Reader) ([]cohort.LevelInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var levels []cohort.LevelInput
	for rec := 1; ; rec++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name, count := core.CleanString(fields[0]), core.CleanString(fields[1])
		students, err := strconv.Atoi(count)
		if err != nil {
			if rec == 1 {
				continue // header
			}
			return nil, errors.Errorf("record %d: students must be an integer (got %q)", rec, count)
		}
		if name == "" {
			return nil, errors.Errorf("record %d: level is required", rec)
		}
		if err := cohort.CheckHeadcount("students", students); err != nil {
			return nil, errors.Wrapf(err, "record %d", rec)
		}
		levels = append(levels, cohort.LevelInput{Level: cohort.ParseLevel(name), Students: students})
	}
	return levels, nil
}

// formatSizes joins sizes with spaces, marking the flagged indices with `*`.
func formatSizes(sizes []int, flagged []int) string {
	if len(sizes) == 0 {
		return "-"
	}
	marked := make(map[int]bool, len(flagged))
	for _, i := range flagged {
		marked[i] = true
	}
	strs := make([]string, len(sizes))
	for i, size := range sizes {
		strs[i] = strconv.Itoa(size)
		if marked[i] {
			strs[i] += "*"
		}
	}
	return strings.Join(strs, " ")
}
