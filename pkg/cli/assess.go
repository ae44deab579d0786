package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aegis-sec/aegis/pkg/cli/config"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/repository/memory"
	"github.com/aegis-sec/aegis/pkg/usecase"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
	"github.com/aegis-sec/aegis/pkg/utils/safe"
)

// loadAnswerFile reads an interview answer set from a JSON file. The file
// maps question IDs to answers in either the bare-scalar or the structured
// record shape.
func loadAnswerFile(path string) (model.AnswerSet, error) {
	// #nosec G304 - path is provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read answer file", goerr.V("path", path))
	}

	var answers model.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, goerr.Wrap(err, "failed to parse answer file", goerr.V("path", path))
	}

	return answers, nil
}

func cmdAssess() *cli.Command {
	var template string
	var title string
	var subject string
	var answerPath string
	var outputPath string
	var catalogCfg config.Catalog
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "template",
			Usage:       "Assessment template ID",
			Value:       string(types.TemplateExecutiveProtection),
			Sources:     cli.EnvVars("AEGIS_TEMPLATE"),
			Destination: &template,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Assessment title",
			Value:       "Ad-hoc assessment",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "subject",
			Usage:       "Name of the subject under review",
			Destination: &subject,
		},
		&cli.StringFlag{
			Name:        "answers",
			Usage:       "Path to the interview answers JSON file",
			Required:    true,
			Destination: &answerPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the dashboard JSON to this file instead of stdout",
			Destination: &outputPath,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run a one-shot assessment from an answers file and print the dashboard",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalogs")
			}

			answers, err := loadAnswerFile(answerPath)
			if err != nil {
				return err
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			ucOpts := []usecase.Option{usecase.WithCatalogRegistry(registry)}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLMClient(llmClient))
			}

			repo := memory.New()
			uc := usecase.New(repo, ucOpts...)

			assessment, err := uc.Assessment.Create(ctx, &model.Assessment{
				Title:       title,
				SubjectName: subject,
				TemplateID:  types.TemplateID(template),
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create assessment")
			}

			if _, _, err := uc.Assessment.RecordAnswers(ctx, assessment.ID, answers); err != nil {
				return goerr.Wrap(err, "failed to record answers")
			}

			run, err := uc.Scoring.Score(ctx, assessment.ID, usecase.RunOptions{
				UseAssisted: llmClient != nil,
			})
			if err != nil {
				return goerr.Wrap(err, "scoring run failed")
			}
			logging.Default().Info("Scoring run completed",
				"run_id", run.RunID,
				"mode", run.Mode,
				"confidence", run.Confidence,
			)

			dashboard, err := uc.Scoring.Dashboard(ctx, assessment.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to build dashboard")
			}

			out := os.Stdout
			if outputPath != "" {
				// #nosec G304 - path is provided by CLI argument
				f, err := os.Create(outputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", outputPath))
				}
				defer safe.Close(ctx, f)
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(dashboard); err != nil {
				return goerr.Wrap(err, "failed to encode dashboard")
			}

			return nil
		},
	}
}
