package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/cohortplanner/core"
	"github.com/trezcool/cohortplanner/core/cohort"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	in     io.Reader // read by `plan -file -`
	out    io.Writer
	policy cohort.Policy // configured policy; flags override it per command
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  policy [-ideal N -min N -max N] - print the cohort sizing policy")
	fmt.Fprintln(cli.out, "  partition -students N [-ideal N -min N -max N] - split one level into cohorts")
	fmt.Fprintln(cli.out, "  plan -file FILE|- [-json] [-ideal N -min N -max N] - plan every level of a `level,students` CSV")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "policy":
		cmd := cli.newFlagSet("policy")
		planner := cli.policyFlags(cmd)
		if err := cmd.Parse(args[2:]); err != nil {
			return helpOr(err)
		}
		p, err := planner()
		if err != nil {
			return err
		}
		return cli.printPolicy(p.Policy())

	case "partition":
		cmd := cli.newFlagSet("partition")
		students := cmd.String("students", "", "The number of students assessed into the level.")
		planner := cli.policyFlags(cmd)
		if err := cmd.Parse(args[2:]); err != nil {
			return helpOr(err)
		}
		if *students == "" {
			cmd.Usage()
			return errHelp
		}
		n, err := strconv.Atoi(core.CleanString(*students))
		if err != nil {
			return errors.Errorf("students must be an integer (got %q)", *students)
		}
		if err := cohort.CheckHeadcount("students", n); err != nil {
			return err
		}
		p, err := planner()
		if err != nil {
			return err
		}
		return cli.partition(p, n)

	case "plan":
		cmd := cli.newFlagSet("plan")
		file := cmd.String("file", "", "CSV file of level,students rows; - reads stdin.")
		asJSON := cmd.Bool("json", false, "Print the plans as JSON.")
		planner := cli.policyFlags(cmd)
		if err := cmd.Parse(args[2:]); err != nil {
			return helpOr(err)
		}
		if *file == "" {
			cmd.Usage()
			return errHelp
		}
		p, err := planner()
		if err != nil {
			return err
		}
		return cli.plan(p, *file, *asJSON)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// policyFlags registers the policy overrides on fs.
// The returned func builds the planner once fs is parsed.
func (cli *commandLine) policyFlags(fs *flag.FlagSet) func() (*cohort.Planner, error) {
	ideal := fs.Int("ideal", cli.policy.Ideal, "Ideal cohort size.")
	minSize := fs.Int("min", cli.policy.MinSize, "Minimum cohort size.")
	maxSize := fs.Int("max", cli.policy.MaxSize, "Maximum cohort size.")

	return func() (*cohort.Planner, error) {
		planner, err := cohort.NewPlanner(cohort.Policy{Ideal: *ideal, MinSize: *minSize, MaxSize: *maxSize})
		if err != nil {
			return nil, errors.Wrap(err, "invalid policy")
		}
		return planner, nil
	}
}

func helpOr(err error) error {
	if err == flag.ErrHelp {
		return errHelp
	}
	return err
}

// describe renders err with the field errors it carries, if any.
func describe(err error) string {
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) == 0 {
		return err.Error()
	}
	flds := make([]string, 0, len(vErr.Fields))
	for _, fErr := range vErr.Fields {
		flds = append(flds, fErr.Field+" "+fErr.Error)
	}
	return err.Error() + " (" + strings.Join(flds, "; ") + ")"
}
