package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gubarz/pandatools/internal/config"
	"github.com/gubarz/pandatools/internal/cut"
	"github.com/gubarz/pandatools/internal/logging"
	"github.com/gubarz/pandatools/internal/output"
	"github.com/gubarz/pandatools/internal/ui"
	"github.com/gubarz/pandatools/internal/xsec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "pandatools",
	Short: "Analysis helpers: cross-section tables and cut formulas",
	Long: `Helpers for the dark-matter analysis.

Look up model parameters from the tabulated cross sections in the
directory given by --xsecs or PANDA_XSECS, and build selection-cut
formulas for the plotting code.`,
	SilenceUsage: true,
}

var nrCmd = &cobra.Command{
	Use:   "nr <mV> <mDM>",
	Short: "Look up a non-resonant model",
	Long: `Prints the non-resonant model at the given mediator and dark-matter
masses. Without --couplings the first record of the table (the nominal
model) is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runNonResonant,
}

var rCmd = &cobra.Command{
	Use:   "r <mV>",
	Short: "Look up a resonant model",
	Args:  cobra.ExactArgs(1),
	RunE:  runResonant,
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios <mV>",
	Short: "List the coupling scenarios of a resonant table",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarios,
}

var browseCmd = &cobra.Command{
	Use:   "browse <mV> <mDM>",
	Short: "Browse a non-resonant table interactively",
	Long: `Shows every record of a non-resonant table. Pressing enter prints the
couplings of the selected record, ready for nr --couplings.`,
	Args: cobra.ExactArgs(2),
	RunE: runBrowse,
}

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Build selection-cut formulas",
}

var cutAndCmd = &cobra.Command{
	Use:   "and <cut>...",
	Short: "AND cuts together",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, cut.AndAll(args...))
	},
}

var cutOrCmd = &cobra.Command{
	Use:   "or <cut>...",
	Short: "OR cuts together",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, cut.OrAll(args...))
	},
}

var cutTimesCmd = &cobra.Command{
	Use:   "times <weight> <cut>",
	Short: "Multiply a weight by a selection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, cut.Times(args[0], args[1]))
	},
}

var cutNotCmd = &cobra.Command{
	Use:   "not <cut>",
	Short: "Negate a cut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, cut.Not(args[0]))
	},
}

var cutRemoveCmd = &cobra.Command{
	Use:   "remove <cut> <var>",
	Short: "Remove the dependence on a variable from a cut",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emit(cmd, cut.RemoveCut(args[0], args[1]))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(nrCmd, rCmd, scenariosCmd, browseCmd, cutCmd)
	cutCmd.AddCommand(cutAndCmd, cutOrCmd, cutTimesCmd, cutNotCmd, cutRemoveCmd)

	rootCmd.PersistentFlags().String("xsecs", "", "Cross-section table directory (default $PANDA_XSECS)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy")
	rootCmd.PersistentFlags().Bool("print", false, "Print results (shorthand for -o print)")
	rootCmd.PersistentFlags().Bool("copy", false, "Copy results (shorthand for -o copy)")

	nrCmd.Flags().StringP("couplings", "c", "", "Couplings gV_DM,gA_DM,gV_q,gA_q to select")
	nrCmd.Flags().BoolP("all", "a", false, "Print every record of the table")

	rCmd.Flags().Int("mdm", xsec.DefaultDarkMatterMass, "Dark-matter mass")
	rCmd.Flags().StringP("scenario", "s", xsec.NominalScenario, "Coupling scenario")

	scenariosCmd.Flags().Int("mdm", xsec.DefaultDarkMatterMass, "Dark-matter mass")
}

func initConfig() {
	viper.BindPFlag("xsecs", rootCmd.PersistentFlags().Lookup("xsecs"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	logging.SetDefault(logging.New(os.Stdout, os.Stderr,
		logging.WithModuleWidth(config.GetModuleWidth()),
		logging.WithColors(logging.Colors{
			Info:    config.GetColorInfo(),
			Warning: config.GetColorWarning(),
			Debug:   config.GetColorDebug(),
			Error:   config.GetColorError(),
		}),
	))
}

// applyOutputFlags resolves the --print/--copy shorthands
func applyOutputFlags() {
	flags := rootCmd.PersistentFlags()
	if p, _ := flags.GetBool("print"); p {
		config.SetOutput(string(output.ModePrint))
	} else if c, _ := flags.GetBool("copy"); c {
		config.SetOutput(string(output.ModeCopy))
	}
}

// newWriter builds the result writer for a command's output stream
var newWriter = func(out io.Writer) *output.Writer {
	return output.NewWriter(out)
}

// emit hands a result to the configured output mode
func emit(cmd *cobra.Command, text string) error {
	applyOutputFlags()
	return newWriter(cmd.OutOrStdout()).Output(text)
}

// emitLines emits one result made of several lines. Nothing is emitted for
// an empty list.
func emitLines[T fmt.Stringer](cmd *cobra.Command, items []T) error {
	if len(items) == 0 {
		return nil
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.String()
	}
	return emit(cmd, strings.Join(lines, "\n"))
}

// tables builds the table reader from the configured directory
func tables() (*xsec.Tables, error) {
	dir := config.GetXsecsDir()
	if dir == "" {
		return nil, fmt.Errorf("no cross-section directory: set --xsecs or %s", config.LegacyXsecsEnv)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving path: %w", err)
	}
	return xsec.NewTables(abs), nil
}

func parseMass(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func parseMasses(args []string) (mV, mDM int, err error) {
	if mV, err = parseMass("mV", args[0]); err != nil {
		return 0, 0, err
	}
	if len(args) > 1 {
		if mDM, err = parseMass("mDM", args[1]); err != nil {
			return 0, 0, err
		}
	}
	return mV, mDM, nil
}

// notFound logs a lookup that found no matching record. Missing tables are
// already logged by the reader.
func notFound(module string, err error, format string, args ...any) error {
	if errors.Is(err, xsec.ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
		logging.Default().Errorf(module, format, args...)
	}
	return err
}

func runNonResonant(cmd *cobra.Command, args []string) error {
	mV, mDM, err := parseMasses(args)
	if err != nil {
		return err
	}
	t, err := tables()
	if err != nil {
		return err
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		models, err := t.NonResonantModels(mV, mDM)
		if err != nil {
			return err
		}
		return emitLines(cmd, models)
	}

	var couplings *xsec.Couplings
	if s, _ := cmd.Flags().GetString("couplings"); s != "" {
		c, err := xsec.ParseCouplings(s)
		if err != nil {
			return err
		}
		couplings = &c
	}

	p, err := t.ReadNonResonant(mV, mDM, couplings)
	if err != nil {
		return notFound("pandatools.nr", err, "No model for mV=%d mDM=%d couplings=%v", mV, mDM, couplings)
	}
	return emit(cmd, p.String())
}

func runResonant(cmd *cobra.Command, args []string) error {
	mV, _, err := parseMasses(args)
	if err != nil {
		return err
	}
	mDM, _ := cmd.Flags().GetInt("mdm")
	scenario, _ := cmd.Flags().GetString("scenario")

	t, err := tables()
	if err != nil {
		return err
	}

	p, err := t.ReadResonant(mV, mDM, scenario)
	if err != nil {
		return notFound("pandatools.r", err, "No scenario %q for mV=%d mDM=%d", scenario, mV, mDM)
	}
	return emit(cmd, p.String())
}

func runScenarios(cmd *cobra.Command, args []string) error {
	mV, _, err := parseMasses(args)
	if err != nil {
		return err
	}
	mDM, _ := cmd.Flags().GetInt("mdm")

	t, err := tables()
	if err != nil {
		return err
	}

	scenarios, err := t.ResonantScenarios(mV, mDM)
	if err != nil {
		return err
	}
	return emitLines(cmd, scenarios)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	mV, mDM, err := parseMasses(args)
	if err != nil {
		return err
	}
	t, err := tables()
	if err != nil {
		return err
	}

	models, err := t.NonResonantModels(mV, mDM)
	if err != nil {
		return err
	}

	selected, err := ui.Run(models, filepath.Base(t.NonResonantPath(mV, mDM)))
	if err != nil || selected == nil {
		return err
	}
	return emit(cmd, selected.Couplings().String())
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
