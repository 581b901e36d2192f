// routeflow command-line entry point.
//
// Usage:
//
//	routeflow run --strategy delegated --workers solver --task "2+2"
//	routeflow run --strategy parallel --workers a,b --task "research"
//	routeflow run --strategy sequential --workers reader,writer --task "report" --handoffs
//	routeflow version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/routeflow/config"
	"github.com/BaSui01/routeflow/engine"
	"github.com/BaSui01/routeflow/handoff"
	"github.com/BaSui01/routeflow/internal/metrics"
	"github.com/BaSui01/routeflow/internal/telemetry"
	"github.com/BaSui01/routeflow/route"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runExecute(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runExecute(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	strategy := fs.String("strategy", engine.StrategyDelegated, "Execution strategy: delegated, parallel or sequential")
	workerList := fs.String("workers", "", "Comma-separated worker names")
	task := fs.String("task", "", "Task to execute")
	handoffs := fs.Bool("handoffs", false, "Chain sequential stages through hand-off packets")
	fs.Parse(args)

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting routeflow",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithEventBufferSize(cfg.Engine.EventBufferSize),
		engine.WithMaxParallelWorkers(cfg.Engine.MaxParallelWorkers),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, engine.WithMetrics(metrics.NewCollector(cfg.Metrics.Namespace, logger)))
	}
	eng := engine.New(opts...)

	names := splitNames(*workerList)
	reg := demoRegistry(names)

	if err := execute(context.Background(), eng, reg, *strategy, names, *task, *handoffs, logger); err != nil {
		logger.Error("execution failed", zap.Error(err))
		os.Exit(1)
	}
}

// execute dispatches to the requested strategy and prints streamed events.
func execute(ctx context.Context, eng *engine.Engine, reg engine.Registry, strategy string, names []string, task string, handoffs bool, logger *zap.Logger) error {
	progress := func(msg string, current, total int) {
		fmt.Printf("[%d/%d] %s\n", current, total, msg)
	}

	var events <-chan engine.Event
	var err error

	switch route.Normalize(strategy) {
	case route.Direct, engine.StrategyDelegated:
		if len(names) != 1 {
			return fmt.Errorf("delegated strategy needs exactly one worker, got %d", len(names))
		}
		events, err = eng.StreamDelegated(ctx, reg, names[0], task, progress)
	case route.Simple, engine.StrategyParallel:
		subtasks := make([]string, len(names))
		for i := range subtasks {
			subtasks[i] = task
		}
		events, err = eng.StreamParallel(ctx, reg, names, subtasks, progress)
	case route.Complex, engine.StrategySequential:
		opts := engine.SequentialOptions{EnableHandoffs: handoffs}
		if handoffs {
			opts.Coordinator = handoff.NewCoordinator(demoPlanner(), logger)
		}
		events, err = eng.StreamSequential(ctx, reg, names, task, opts)
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}
	if err != nil {
		return err
	}

	for ev := range events {
		switch ev.Type {
		case engine.EventAgentStart:
			fmt.Printf("-> %s started\n", ev.Worker)
		case engine.EventAgentMessage:
			fmt.Printf("<- %s: %s\n", ev.Worker, ev.Text)
		case engine.EventWorkflowOutput:
			fmt.Printf("\n=== result ===\n%s\n", ev.Text)
		case engine.EventError:
			return ev.Err
		}
	}
	return nil
}

// demoRegistry builds echo workers for every requested name so the CLI can
// exercise strategies without any model backend.
func demoRegistry(names []string) engine.Registry {
	reg := make(engine.Registry, len(names))
	for _, name := range names {
		n := name
		reg[n] = engine.NewFuncWorker(n, "demo echo worker", func(ctx context.Context, prompt string) (string, error) {
			return fmt.Sprintf("[%s] %s", n, prompt), nil
		})
	}
	return reg
}

// demoPlanner produces a minimal hand-off packet carrying the accumulated
// work forward.
func demoPlanner() handoff.PlannerFunc {
	return func(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*handoff.Context, error) {
		return &handoff.Context{
			FromWorker:          from,
			ToWorker:            to,
			Task:                task,
			WorkCompleted:       workCompleted,
			Artifacts:           artifacts,
			RemainingObjectives: []string{"continue the task: " + task},
			SuccessCriteria:     []string{"output addresses the task"},
		}, nil
	}
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func printVersion() {
	fmt.Printf("routeflow %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`routeflow - task routing and execution strategies

Usage:
  routeflow <command> [options]

Commands:
  run       Execute a task with a strategy over demo workers
  version   Show version information
  help      Show this help message

Options for 'run':
  --config <path>     Path to configuration file (YAML)
  --strategy <name>   delegated, parallel or sequential (route labels accepted)
  --workers <names>   Comma-separated worker names
  --task <text>       Task to execute
  --handoffs          Chain sequential stages through hand-off packets

Examples:
  routeflow run --strategy delegated --workers solver --task "2+2"
  routeflow run --strategy parallel --workers a,b,c --task "research topic"
  routeflow run --strategy sequential --workers reader,writer --task "report" --handoffs`)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg.Format != "console" {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
