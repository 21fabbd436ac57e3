package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-tracker/internal/config"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
)

// daemonAnnotation marks long-running commands that log at the configured level.
const daemonAnnotation = "daemon"

// app holds everything a command needs once the store is open.
type app struct {
	configPath string
	verbose    bool

	cfg        config.Config
	logger     *zap.Logger
	repo       repository.Repository
	store      *store.Store
	loaded     store.LoadResult
	persist    *service.Persister
	tasks      *service.TaskService
	categories *service.CategoryService
	reminders  *service.ReminderService
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tasktracker",
		Short: "Personal task tracker with categories, priorities and reminders",
		Long: `tasktracker keeps tasks, categories, priorities and reminders in a local
snapshot (JSON files or SQLite) and can run as a daemon that delivers reminders
over Telegram and serves a JSON API.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (or set TASKTRACKER_CONFIG)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newTaskCmd(a),
		newCategoryCmd(a),
		newPriorityCmd(a),
		newReminderCmd(a),
		newStatsCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if cmd.Annotations[daemonAnnotation] == "" {
		level = "warn"
	}
	if a.verbose {
		level = "debug"
	}
	a.logger, err = logging.New(level, a.verbose)
	if err != nil {
		return err
	}

	a.repo, err = repository.Open(cfg.Storage, cfg.DataDir, cfg.DatabaseURL, a.logger)
	if err != nil {
		return err
	}
	a.store, a.loaded, err = service.OpenStore(cmd.Context(), a.repo, a.logger)
	if err != nil {
		return err
	}

	a.persist = service.NewPersister(a.store, a.repo, a.logger)
	a.tasks = service.NewTaskService(a.store, a.persist, a.logger)
	a.categories = service.NewCategoryService(a.store, a.persist, a.logger)
	a.reminders = service.NewReminderService(a.store, a.persist, cfg.SnoozeDuration, a.logger)
	return nil
}

func (a *app) close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
