package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ken/instance_selection/internal/config"
	"github.com/ken/instance_selection/pkg/dataio"
	"github.com/ken/instance_selection/pkg/selection"
)

const (
	appName    = "iselect"
	appVersion = "0.1.0"
)

func main() {
	// Define command-line flags
	var (
		showVersion = flag.Bool("version", false, "Display version information")
		configFile  = flag.String("config", "config.yaml", "Path to configuration file")
		algName     = flag.String("algorithm", "", "Selection algorithm (enn, ennth, ennreg, mi)")
		kFlag       = flag.Int("k", 0, "Number of nearest neighbors")
		muFlag      = flag.Float64("mu", 0, "Posterior threshold for ennth")
		alphaFlag   = flag.Float64("alpha", -1, "Alpha for ennreg and mi")
		classIndex  = flag.Int("class-index", -1, "Zero-based class column (-1 = last)")
		outputFile  = flag.String("output", "selected.csv", "Path for the reduced dataset")
		indexFile   = flag.String("index-out", "", "Optional path for the origin-index file")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration, then let explicit flags override it.
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *algName != "" {
		cfg.Selection.Algorithm = *algName
	}
	if *kFlag > 0 {
		cfg.Selection.K = *kFlag
	}
	if *muFlag > 0 {
		cfg.Selection.Mu = *muFlag
	}
	if *alphaFlag >= 0 {
		cfg.Selection.Alpha = *alphaFlag
	}
	if *classIndex >= 0 {
		cfg.Dataset.ClassIndex = *classIndex
	}

	inputPath := args[0]

	train, err := dataio.Load(inputPath, cfg.Dataset.ClassIndex)
	if err != nil {
		logger.Fatal("failed to load dataset", zap.String("path", inputPath), zap.Error(err))
	}

	logger.Info("dataset loaded",
		zap.String("path", inputPath),
		zap.Int("rows", train.Len()),
		zap.Int("attributes", train.NumAttributes()),
		zap.Int("class_index", train.ClassIndex()))

	alg, err := buildAlgorithm(cfg.Selection)
	if err != nil {
		logger.Fatal("failed to configure algorithm", zap.Error(err))
	}

	if err := alg.Reset(train); err != nil {
		logger.Fatal("failed to start selection", zap.Error(err))
	}

	if err := selection.AllSteps(alg); err != nil {
		logger.Fatal("selection failed", zap.Error(err))
	}

	solution := alg.SolutionSet()
	logger.Info("selection complete",
		zap.String("algorithm", cfg.Selection.Algorithm),
		zap.Int("selected", solution.Len()),
		zap.Int("removed", train.Len()-solution.Len()))

	if err := dataio.Write(*outputFile, solution); err != nil {
		logger.Fatal("failed to write reduced dataset", zap.Error(err))
	}

	if *indexFile != "" {
		if err := dataio.WriteIndex(*indexFile, alg.OutputIndex()); err != nil {
			logger.Fatal("failed to write index file", zap.Error(err))
		}
	}
}

// buildAlgorithm creates the configured algorithm and applies its
// parameters. Setter errors surface here, before any data is touched.
func buildAlgorithm(cfg config.SelectionConfig) (selection.Algorithm, error) {
	alg, err := selection.New(selection.AlgorithmType(cfg.Algorithm))
	if err != nil {
		return nil, err
	}

	switch a := alg.(type) {
	case *selection.ENNAlgorithm:
		err = a.SetK(cfg.K)
	case *selection.ENNThAlgorithm:
		if err = a.SetK(cfg.K); err == nil {
			err = a.SetMu(cfg.Mu)
		}
	case *selection.ENNRegAlgorithm:
		if err = a.SetK(cfg.K); err == nil {
			err = a.SetAlpha(cfg.Alpha)
		}
	case *selection.MIAlgorithm:
		if err = a.SetK(cfg.K); err == nil {
			err = a.SetAlpha(cfg.Alpha)
		}
	}
	if err != nil {
		return nil, err
	}

	return alg, nil
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func printUsage() {
	fmt.Printf("%s - instance selection for k-NN learners\n\n", appName)
	fmt.Println("Usage:")
	fmt.Printf("  %s [flags] <dataset.csv>\n\n", appName)
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
