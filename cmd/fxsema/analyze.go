package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fxsema/internal/config"
	"fxsema/internal/diagfmt"
	"fxsema/internal/driver"
	"fxsema/internal/model"
)

var (
	analyzeProfile   string
	analyzeEntry     string
	analyzeFormat    string
	analyzeConfig    string
	analyzeDiskCache bool
	analyzeJobs      int
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProfile, "profile", "", "target shader profile, e.g. vs_5_0 (required)")
	analyzeCmd.Flags().StringVar(&analyzeEntry, "entry", "main", "entry point function name")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format (json|pretty)")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "path to fxsema.toml policy file")
	analyzeCmd.Flags().BoolVar(&analyzeDiskCache, "disk-cache", false, "cache analysis models on disk")
	analyzeCmd.Flags().IntVar(&analyzeJobs, "jobs", 0, "parallel workers for directory inputs (0 = GOMAXPROCS)")
	if err := analyzeCmd.MarkFlagRequired("profile"); err != nil {
		panic(err)
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a parsed effect document",
	Long: `Analyze runs semantic analysis over a parser output document (JSON)
and emits the typed model. Reads stdin when no path is given; a
directory path analyzes every *.json file inside it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(analyzeConfig)
		if err != nil {
			return err
		}
		opts := driver.Options{
			Profile: analyzeProfile,
			Entry:   analyzeEntry,
			Policy:  cfg.Policy(),
		}

		switch analyzeFormat {
		case "json", "pretty":
		default:
			return fmt.Errorf("unknown format: %s", analyzeFormat)
		}

		if len(args) == 1 {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				return analyzeDir(cmd, args[0], opts)
			}
			return analyzeFile(cmd, args[0], opts)
		}

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return analyzeBytes(cmd, data, opts)
	},
}

func analyzeFile(cmd *cobra.Command, path string, opts driver.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if analyzeDiskCache && analyzeFormat == "json" {
		cache, cerr := driver.OpenDiskCache("fxsema")
		if cerr == nil {
			key := driver.CacheKey(data, opts)
			if cached, ok, _ := cache.Get(key); ok {
				_, werr := os.Stdout.Write(append(cached, '\n'))
				return werr
			}
			res, aerr := driver.Analyze(data, opts)
			if aerr != nil {
				return aerr
			}
			if perr := cache.Put(key, res.Model, opts); perr != nil {
				fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", perr)
			}
			return emitResult(cmd, res)
		}
		// Cache unavailable, analyze without it.
	}

	return analyzeBytes(cmd, data, opts)
}

func analyzeBytes(cmd *cobra.Command, data []byte, opts driver.Options) error {
	res, err := driver.Analyze(data, opts)
	if err != nil {
		return err
	}
	return emitResult(cmd, res)
}

func emitResult(cmd *cobra.Command, res *driver.Result) error {
	switch analyzeFormat {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:      useColor(cmd),
			ShowSource: true,
			Max:        maxDiagnostics(cmd),
		}
		diagfmt.Pretty(os.Stdout, res.Bag, res.Source, prettyOpts)
		return nil
	default:
		return emitModelJSON(res.Model)
	}
}

func analyzeDir(cmd *cobra.Command, dir string, opts driver.Options) error {
	results, err := driver.AnalyzeDir(cmd.Context(), dir, opts, analyzeJobs)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	for _, r := range results {
		if !quiet {
			fmt.Fprintf(os.Stderr, "%s: %d diagnostics\n", r.Path, r.Bag.Len())
		}
		switch analyzeFormat {
		case "pretty":
			fmt.Fprintf(os.Stdout, "== %s\n", r.Path)
			diagfmt.Pretty(os.Stdout, r.Bag, r.Source, diagfmt.PrettyOpts{
				Color:      useColor(cmd),
				ShowSource: true,
				Max:        maxDiagnostics(cmd),
			})
		default:
			if err := emitModelJSON(r.Model); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitModelJSON(m *model.Model) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0
	}
	return n
}
