package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	infraconfig "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/config"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/bootstrap"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var cfgFile string

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := serveCommand()

	root := &cobra.Command{
		Use:           "complaint-priority",
		Short:         "Assigns low, medium or high priority to citizen complaints",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", infraconfig.GetConfigPath("config.yml"), "path to configuration file")

	root.AddCommand(serve, classifyCommand(), migrateCommand(), versionCommand())
	return root
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap.Start(cmd.Context(), cfgFile, version)
		},
	}
}

func classifyCommand() *cobra.Command {
	var text, category, source, attachment string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one complaint with the configured model and print the decision",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			// Logs go to stderr so stdout carries only the decision.
			cfg.Logging.OutputPaths = []string{"stderr"}

			log, err := bootstrap.CreateLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			classifier := bootstrap.NewClassifier(cfg, bootstrap.SetupModel(cfg, log), log, nil)
			res := classifier.Classify(cmd.Context(), domain.ClassificationInput{
				Text:           text,
				Category:       category,
				AttachmentText: attachment,
				SourceKind:     domain.SourceKind(strings.ToLower(source)),
			})

			renderResult(cmd, res)
			if res.Err != nil {
				log.Warn("Classification fell back to medium", infralogger.Error(res.Err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "complaint text")
	cmd.Flags().StringVar(&category, "category", "", "complaint category (water, energy, ...)")
	cmd.Flags().StringVar(&source, "source", "", "attachment source kind (voice, image)")
	cmd.Flags().StringVar(&attachment, "attachment", "", "text extracted from the attachment")
	return cmd
}

func renderResult(cmd *cobra.Command, res priority.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	t.AppendRow(table.Row{"Priority", res.Priority})
	t.AppendRow(table.Row{"Stage", res.Stage})
	t.AppendRow(table.Row{"Score", res.Score})
	if res.MatchedPattern != "" {
		t.AppendRow(table.Row{"Pattern", res.MatchedPattern})
	}
	if len(res.Keywords) > 0 {
		t.AppendRow(table.Row{"Keywords", strings.Join(res.Keywords, ", ")})
	}
	if res.ModelConsulted {
		t.AppendRow(table.Row{"Model answer", res.ModelPriority})
	}
	if res.Override != "" {
		t.AppendRow(table.Row{"Override", res.Override})
	}
	t.Render()
}

func migrateCommand() *cobra.Command {
	var dir string
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			log, err := bootstrap.CreateLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if args[0] == "down" {
				return database.MigrateDown(cfg.Database, dir, steps, log)
			}
			return database.RunMigrations(cfg.Database, dir, log)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", database.DefaultMigrationsPath, "migrations directory")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back with down")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "complaint-priority %s\n", version)
		},
	}
}
