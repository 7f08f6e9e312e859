package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colonia/internal/chronicle"
	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/sim"
)

var (
	flagDays       int
	flagAutoAnswer int
	flagBuild      []string
	flagEnact      []string
	flagQuiet      bool
	flagNoRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a colony without the terminal UI",
	Long: `Simulate a colony day by day and print a monthly summary.

Buildings given with --build are started on the first day. Laws given with
--enact are passed as soon as a senate sits. Popups are answered with the
--auto-answer choice (counted from 0), or left open when it is negative.
The run stops early when the colony goes bankrupt or empties.

Examples:
  colonia run --days 365
  colonia run --days 720 --build "senate house" --build farm:1 --enact "lex tributum soli"
  colonia run --days 90 --auto-answer 1 --seed 7 --chronicle ./annals`,
	Run: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagDays, "days", 360, "Number of days to simulate")
	runCmd.Flags().IntVar(&flagAutoAnswer, "auto-answer", 0, "Choice for every popup (negative leaves them open)")
	runCmd.Flags().StringArrayVar(&flagBuild, "build", nil, "Project to build, as name[:variant]")
	runCmd.Flags().StringArrayVar(&flagEnact, "enact", nil, "Law to pass once the senate sits")
	runCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the final summary")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in the history")
	runCmd.Flags().StringVar(&flagChronicle, "chronicle", "", "Directory for the compressed event chronicle")
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, rc := loadSettings()
	mustScenario(rc.Scenario)

	session, err := core.NewSession(rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error founding colony: %v\n", err)
		os.Exit(1)
	}
	city := session.City

	var ch *chronicle.Chronicle
	if dir := chronicleDir(cfg); dir != "" {
		ch = chronicle.Open(dir, city)
	}

	if !flagQuiet {
		city.Log().AddSink(func(msg string) {
			fmt.Printf("  %-22s %s\n", city.Date().Short(), msg)
		})
	}

	for _, spec := range flagBuild {
		in, err := parseBuild(city, spec)
		if err == nil {
			err = session.Apply(in)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot build %q: %v\n", spec, err)
			os.Exit(1)
		}
	}

	laws := make([]int, 0, len(flagEnact))
	for _, name := range flagEnact {
		i := lawIndex(city, name)
		if i < 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown law %q\n", name)
			fmt.Fprintln(os.Stderr, "Run 'colonia catalog' to see available laws.")
			os.Exit(1)
		}
		laws = append(laws, i)
	}

	fmt.Printf("%s, %s\n\n", city.Name(), city.Date().Long())

	for day := 0; day < flagDays; day++ {
		answerPopups(session)
		laws = enactReady(session, laws)

		session.Step()
		if ch != nil {
			ch.Day()
		}

		if !flagQuiet && city.Date().Day == 0 {
			printSummary(city)
		}
		if city.Current().Outcome() != sim.Republic {
			break
		}
	}

	fmt.Println()
	printSummary(city)
	fmt.Printf("Outcome: %s after %d days\n", city.Current().Outcome(), city.Tick())

	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Warn("chronicle incomplete", "error", err)
		}
	}

	if flagNoRecord {
		return
	}
	store := openStore(cfg.HistoryDB)
	if store == nil {
		return
	}
	defer store.Close()
	id, err := session.Save(store)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id)
}

// answerPopups gives every waiting popup the configured answer.
func answerPopups(session *core.Session) {
	if flagAutoAnswer < 0 {
		return
	}
	for p := session.Popup(); p != nil; p = session.Popup() {
		choice := min(flagAutoAnswer, len(p.Choices)-1)
		if err := session.Apply(core.With(core.ActionChoose, choice)); err != nil {
			logger.Warn("cannot answer popup", "title", p.Title, "error", err)
			return
		}
	}
}

// enactReady passes the queued laws once the senate sits and returns the
// ones still waiting.
func enactReady(session *core.Session, queued []int) []int {
	if len(queued) == 0 || !session.City.Current().LawsEnabled {
		return queued
	}
	for _, i := range queued {
		if err := session.Apply(core.With(core.ActionEnact, i)); err != nil {
			logger.Warn("cannot enact law", "law", session.City.Laws()[i].Name, "error", err)
		}
	}
	return nil
}

// parseBuild turns "name[:variant]" into a build input.
func parseBuild(city *sim.City, spec string) (core.Input, error) {
	name, variant := spec, 0
	if i := strings.LastIndex(spec, ":"); i >= 0 {
		v, err := strconv.Atoi(spec[i+1:])
		if err != nil {
			return core.Input{}, fmt.Errorf("bad variant %q", spec[i+1:])
		}
		name, variant = spec[:i], v
	}

	project := city.FindProject(strings.TrimSpace(name))
	if project == nil {
		return core.Input{}, fmt.Errorf("%w: %s", core.ErrNoSuchProject, name)
	}
	return core.Input{Action: core.ActionBuild, Value: slices.Index(city.Projects(), project), Variant: variant}, nil
}

// lawIndex returns the index of the named law, or -1.
func lawIndex(city *sim.City, name string) int {
	law := city.FindLaw(strings.TrimSpace(name))
	if law == nil {
		return -1
	}
	return slices.Index(city.Laws(), law)
}

func printSummary(city *sim.City) {
	st := city.Current()
	fmt.Printf("%-26s pop %6d (%+d)  gold %9.2f (-%.2f)  food %+7.2f  land %d/%d\n",
		city.Date().String(), st.Population, st.PopulationDelta,
		st.Gold, st.GoldUsage, st.FoodProduction, st.LandAreaUsed, st.LandArea)
}
