package skimmer

import (
	"io"
	"os"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/tui"
	"github.com/spf13/pflag"
)

// Options stores the values of command-line options
type Options struct {
	Exact      bool
	FuzzyAlgo  Algo
	Case       Case
	Sort       bool
	Tac        bool
	Multi      bool
	Prompt     string
	Tabstop    int
	Theme      *tui.ColorTheme
	Keymap     map[keyChord][]actionType
	Query      string
	Filter     *string
	PrintQuery bool
	ReadZero   bool
	Output     io.Writer
	Printer    func(string)
	History    *History
	LogFile    string
	Debug      bool

	// Raw flag values, resolved by PostProcessOptions
	algo        string
	color       string
	bind        []string
	filter      string
	ignoreCase  bool
	respectCase bool
	noSort      bool
	print0      bool
	historyPath string
	historyMax  int
}

// DefaultOptions returns the options used when no flag is given
func DefaultOptions() *Options {
	return &Options{
		FuzzyAlgo:  AlgoV1,
		Case:       CaseSmart,
		Sort:       true,
		Prompt:     defaultPrompt,
		Tabstop:    defaultTabstop,
		Theme:      tui.EmptyTheme(),
		Keymap:     defaultKeymap(),
		Output:     os.Stdout,
		algo:       "v1",
		historyMax: defaultHistoryMax}
}

// BindFlags registers the command-line flags on the flag set
func BindFlags(flags *pflag.FlagSet, opts *Options) {
	// Search
	flags.BoolVarP(&opts.Exact, "exact", "e", opts.Exact, "Enable exact-match")
	flags.StringVar(&opts.algo, "algo", opts.algo, "Fuzzy matching algorithm: [v1|sahilm]")
	flags.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Case-insensitive match (default: smart-case match)")
	flags.BoolVar(&opts.respectCase, "no-ignore-case", false, "Case-sensitive match")
	flags.BoolVar(&opts.noSort, "no-sort", false, "Do not sort the result")
	flags.BoolVar(&opts.Tac, "tac", opts.Tac, "Reverse the order of the input")

	// Interface
	flags.BoolVarP(&opts.Multi, "multi", "m", opts.Multi, "Enable multi-select with tab/shift-tab")
	flags.StringArrayVar(&opts.bind, "bind", nil, "Custom key bindings: KEY:ACTION[+ACTION..][,..]")
	flags.StringVar(&opts.Prompt, "prompt", opts.Prompt, "Input prompt")
	flags.IntVar(&opts.Tabstop, "tabstop", opts.Tabstop, "Number of spaces for a tab character")
	flags.StringVar(&opts.color, "color", "", "Color scheme: [dark|light|16|bw]")

	// History
	flags.StringVar(&opts.historyPath, "history", "", "History file")
	flags.IntVar(&opts.historyMax, "history-size", opts.historyMax, "Maximum number of history entries")

	// Scripting
	flags.StringVarP(&opts.Query, "query", "q", opts.Query, "Start the finder with the given query")
	flags.StringVarP(&opts.filter, "filter", "f", "", "Filter mode. Do not start interactive finder.")
	flags.BoolVar(&opts.PrintQuery, "print-query", opts.PrintQuery, "Print query as the first line")
	flags.BoolVar(&opts.ReadZero, "read0", opts.ReadZero, "Read input delimited by ASCII NUL characters")
	flags.BoolVar(&opts.print0, "print0", false, "Print output delimited by ASCII NUL characters")

	// Diagnostics
	flags.StringVar(&opts.LogFile, "log-file", "", "Write the log to the file")
	flags.BoolVar(&opts.Debug, "debug", false, "Log debug messages")
}

// DefaultArgs prepends the words of $SKIMMER_DEFAULT_OPTS to the arguments
func DefaultArgs(args []string) ([]string, error) {
	words, err := shellwords.Parse(os.Getenv("SKIMMER_DEFAULT_OPTS"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid SKIMMER_DEFAULT_OPTS")
	}
	return append(words, args...), nil
}

func parseTheme(str string) (*tui.ColorTheme, error) {
	switch strings.ToLower(str) {
	case "":
		return tui.EmptyTheme(), nil
	case "dark":
		theme := *tui.Dark256
		return &theme, nil
	case "light":
		theme := *tui.Light256
		return &theme, nil
	case "16":
		theme := *tui.Default16
		return &theme, nil
	case "bw", "no":
		return nil, nil
	}
	return nil, errors.Errorf("invalid color specification: %s", str)
}

func parseAlgo(str string) (Algo, error) {
	switch strings.ToLower(str) {
	case "v1":
		return AlgoV1, nil
	case "sahilm":
		return AlgoSahilm, nil
	}
	return AlgoV1, errors.Errorf("invalid algorithm (expected: v1 or sahilm): %s", str)
}

// PostProcessOptions validates the parsed flags and resolves them into
// Options
func PostProcessOptions(opts *Options, flags *pflag.FlagSet) error {
	var err error
	if opts.Tabstop < 1 {
		return errors.Errorf("tab stop must be a positive integer: %d", opts.Tabstop)
	}
	if opts.FuzzyAlgo, err = parseAlgo(opts.algo); err != nil {
		return err
	}
	if opts.Theme, err = parseTheme(opts.color); err != nil {
		return err
	}

	if opts.ignoreCase {
		opts.Case = CaseIgnore
	} else if opts.respectCase {
		opts.Case = CaseRespect
	}
	if opts.noSort {
		opts.Sort = false
	}

	if len(opts.historyPath) > 0 {
		if opts.historyMax < 1 {
			return errors.Errorf("history max must be a positive integer: %d", opts.historyMax)
		}
		if opts.History, err = NewHistory(opts.historyPath, opts.historyMax); err != nil {
			return err
		}
		historyKeymap(opts.Keymap)
	}
	for _, bind := range opts.bind {
		if err := parseKeymap(opts.Keymap, bind); err != nil {
			return errors.Wrap(err, "invalid --bind")
		}
	}

	if flags.Changed("filter") {
		filter := opts.filter
		opts.Filter = &filter
	}

	sep := "\n"
	if opts.print0 {
		sep = "\000"
	}
	output := opts.Output
	opts.Printer = func(str string) {
		io.WriteString(output, str+sep)
	}
	return nil
}

// SetupLogger installs the logger. Messages go to --log-file, or nowhere,
// so they never mix with the interface.
func SetupLogger(opts *Options) {
	filename := opts.LogFile
	if len(filename) == 0 {
		filename = os.DevNull
	}
	astilog.SetLogger(astilog.New(astilog.Configuration{
		AppName:  "skimmer",
		Filename: filename,
		Out:      "file",
		Verbose:  opts.Debug}))
}
