package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/config"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
	"github.com/jcraft-dev/jcraft/internal/emitter"
	"github.com/jcraft-dev/jcraft/internal/miner"
	"github.com/jcraft-dev/jcraft/internal/solver"
)

var (
	constructManifest   string
	constructSrc        string
	constructJars       []string
	constructJarURLs    []string
	constructOut        string
	constructPackage    string
	constructClass      string
	constructTrials     int
	constructCostLimit  int
	constructDepthLimit int
	constructMinCost    int
	constructSeed       int64
	constructNoCache    bool
)

var constructCmd = &cobra.Command{
	Use:   "construct <fully-qualified-class-name>",
	Short: "Search for a construction plan and emit Main.java",
	Long: `construct mines the given view for ways to build an instance of
the named class, searches for a low-cost plan with the Monte Carlo
solver, and emits a Main.java realizing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runConstruct,
}

func init() {
	constructCmd.Flags().StringVar(&constructManifest, "manifest", "", "path to a JSON class manifest view")
	constructCmd.Flags().StringVar(&constructSrc, "src", "", "directory of .java sources to parse as a view")
	constructCmd.Flags().StringSliceVar(&constructJars, "jars", nil, "local jar paths folded into the view cache key and combined with --jar-urls")
	constructCmd.Flags().StringSliceVar(&constructJarURLs, "jar-urls", nil, "jar URLs to download and fold in alongside --jars")
	constructCmd.Flags().StringVar(&constructOut, "out", "", "output file (default: stdout)")
	constructCmd.Flags().StringVar(&constructPackage, "package", "", "emitted package name (default from config)")
	constructCmd.Flags().StringVar(&constructClass, "class", "", "emitted class name (default from config)")
	constructCmd.Flags().IntVar(&constructTrials, "trials", 0, "solver trial count (default from config)")
	constructCmd.Flags().IntVar(&constructCostLimit, "cost-limit", 0, "solver cost limit (default from config)")
	constructCmd.Flags().IntVar(&constructDepthLimit, "depth-limit", 0, "solver depth limit (default from config)")
	constructCmd.Flags().IntVar(&constructMinCost, "min-cost", -1, "solver minimum accepted cost (default from config)")
	constructCmd.Flags().Int64Var(&constructSeed, "seed", 0, "solver RNG seed (default from config)")
	constructCmd.Flags().BoolVar(&constructNoCache, "no-cache", false, "bypass the view cache")
	rootCmd.AddCommand(constructCmd)
}

func runConstruct(cmd *cobra.Command, args []string) error {
	className := args[0]

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jars := constructJars
	if len(jars) == 0 {
		jars = cfg.Scan.Jars
	}
	jarURLs := constructJarURLs
	if len(jarURLs) == 0 {
		jarURLs = cfg.Scan.JarURLs
	}
	srcDir := constructSrc
	if srcDir == "" && len(cfg.Scan.SourceRoots) > 0 {
		srcDir = cfg.Scan.SourceRoots[0]
	}

	cacheDir := ""
	if cfg.Cache.Enabled && !constructNoCache {
		cacheDir, err = config.EnsureConfigDir(".")
		if err != nil {
			return fmt.Errorf("ensure cache dir: %w", err)
		}
	}

	view, err := loadView(loadViewOpts{
		manifestPath: constructManifest,
		srcDir:       srcDir,
		jars:         jars,
		jarURLs:      jarURLs,
		cacheDir:     cacheDir,
	})
	if err != nil {
		return err
	}

	m := miner.New(view)

	solverCfg := solver.Config{
		NumberOfTrials: firstNonZero(constructTrials, cfg.Solver.NumberOfTrials),
		CostLimit:      firstNonZero(constructCostLimit, cfg.Solver.CostLimit),
		DepthLimit:     firstNonZero(constructDepthLimit, cfg.Solver.DepthLimit),
		MinCost:        cfg.Solver.MinCost,
		Rand:           rand.New(rand.NewSource(firstNonZeroInt64(constructSeed, cfg.Solver.Seed))),
	}
	if constructMinCost >= 0 {
		solverCfg.MinCost = constructMinCost
	}

	root := depgraph.ClassNode(bcview.ParseTypeName(className).Class)
	s := solver.New(m, solverCfg)

	plan, ok := s.Solve(root)
	if !ok {
		return fmt.Errorf("no construction plan found for %s within budget", className)
	}

	emitOpts := emitter.Options{
		Package:   firstNonEmpty(constructPackage, cfg.Output.PackageName),
		ClassName: firstNonEmpty(constructClass, cfg.Output.ClassName),
	}
	source, err := emitter.Emit(plan, emitOpts)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	if constructOut == "" {
		fmt.Print(source)
		return nil
	}
	return os.WriteFile(constructOut, []byte(source), 0644)
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroInt64(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
