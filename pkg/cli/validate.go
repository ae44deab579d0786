package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aegis-sec/aegis/pkg/cli/config"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/interview"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var template string
	var answerPath string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "template",
			Usage:       "Assessment template ID",
			Value:       string(types.TemplateExecutiveProtection),
			Sources:     cli.EnvVars("AEGIS_TEMPLATE"),
			Destination: &template,
		},
		&cli.StringFlag{
			Name:        "answers",
			Usage:       "Interview answers JSON file to check for completion",
			Destination: &answerPath,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate catalog files and optionally report interview completion",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			logger := logging.Default()
			for _, cat := range registry.List() {
				logger.Info("Catalog validated",
					"template", cat.Template,
					"version", cat.Version,
					"threats", len(cat.Threats),
					"questions", cat.TotalExpected(),
				)
			}

			if answerPath == "" {
				return nil
			}

			cat, err := registry.Get(types.TemplateID(template))
			if err != nil {
				return goerr.Wrap(err, "unknown template", goerr.V("template", template))
			}

			answers, err := loadAnswerFile(answerPath)
			if err != nil {
				return err
			}

			status := interview.ValidateCompletion(answers, cat)
			printCompletionReport(os.Stdout, cat, answers, status)

			if !status.IsComplete {
				return goerr.New("interview is not complete",
					goerr.V("completion", status.CompletionPercentage),
					goerr.V("missing_required", status.MissingRequired),
				)
			}
			return nil
		},
	}
}

// printCompletionReport renders a colored per-section answer checklist.
// A question counts as answered exactly when the completion validator
// counts it, so the checklist and the summary line always agree.
func printCompletionReport(w io.Writer, cat *catalog.Catalog, answers model.AnswerSet, status *model.CompletionStatus) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	required := make(map[types.QuestionID]bool, len(cat.Required))
	for _, q := range cat.Required {
		required[q] = true
	}

	fmt.Fprintf(w, "%s (%s)\n", bold(cat.Template), cat.Version)
	for _, section := range cat.Sections {
		fmt.Fprintf(w, "\n  %s\n", bold(section.Name))
		for _, q := range section.Questions {
			_, answered := interview.NormalizeValue(answers.Get(q))
			switch {
			case answered:
				fmt.Fprintf(w, "    %s %s\n", green("✓"), q)
			case required[q]:
				fmt.Fprintf(w, "    %s %s %s\n", red("✗"), q, red("(required)"))
			default:
				fmt.Fprintf(w, "    %s %s\n", yellow("-"), q)
			}
		}
	}

	fmt.Fprintln(w)
	for _, warning := range status.Warnings {
		fmt.Fprintf(w, "  %s %s\n", yellow("!"), warning)
	}

	summary := fmt.Sprintf("%d/%d answered (%d%%)",
		status.AnsweredCount, status.TotalExpected, status.CompletionPercentage)
	if status.IsComplete {
		fmt.Fprintf(w, "  %s %s\n", green("✓"), summary)
	} else {
		fmt.Fprintf(w, "  %s %s\n", red("✗"), summary)
	}
}
