package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/export"
	"github.com/nethesap/nethesap/internal/report"
	"github.com/nethesap/nethesap/internal/score"
	"github.com/nethesap/nethesap/internal/sheet"
)

// ErrBadAssignment is returned for a --set value not of the form id=C[/I].
var ErrBadAssignment = errors.New("bad assignment")

// noInputNotice is printed when every count is zero.
const noInputNotice = "Hesaplamak için en az bir doğru ya da yanlış sayısı girin."

type calcOptions struct {
	sets   []string
	format string
	export bool
	label  string
	out    string
	now    func() time.Time
}

func newCalcCmd(rt *runtime) *cobra.Command {
	opts := &calcOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute nets from the command line",
		Example: `  nethesap calc --exam tyt --set turkish=30/5 --set math=20/4
  nethesap calc --exam ayt --set math=30/8 --format json
  nethesap calc --set math=25 --set math.yanlis=4 --export --label "Deneme 3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, rt, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "Subject counts as id=correct/incorrect or id.field=n (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, markdown, json, yaml")
	cmd.Flags().BoolVar(&opts.export, "export", false, "Also write a PNG result card")
	cmd.Flags().StringVar(&opts.label, "label", "", "Label printed on the PNG card")
	cmd.Flags().StringVar(&opts.out, "out", "", "Directory for the PNG card (overrides config)")
	return cmd
}

func runCalc(cmd *cobra.Command, rt *runtime, opts *calcOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	id, err := rt.examID()
	if err != nil {
		return err
	}
	v := exam.MustLoad(id)

	sh := sheet.New(v, sheet.WithLogger(rt.logger.Named("sheet")))
	for _, raw := range opts.sets {
		a, err := parseAssignment(raw)
		if err != nil {
			return err
		}
		for _, e := range a.edits {
			if _, err := sh.Edit(a.subject, e.field, e.raw); err != nil {
				return fmt.Errorf("apply %q: %w", raw, err)
			}
		}
	}

	if !sh.Compute() {
		fmt.Fprintln(cmd.OutOrStdout(), noInputNotice)
		return nil
	}
	if err := report.Write(cmd.OutOrStdout(), format, v, sh.Result()); err != nil {
		return err
	}

	if !opts.export {
		return nil
	}
	dir := opts.out
	if dir == "" {
		dir = rt.cfg.Export.Dir
	}
	exporter := export.New(dir, export.WithLogger(rt.logger.Named("export")))
	path, err := exporter.Export(v, sh.Result(), opts.label, opts.now())
	if err != nil {
		return fmt.Errorf("export card: %w", err)
	}
	rt.logger.Info("card written", zap.String("path", path))
	fmt.Fprintln(cmd.ErrOrStderr(), "Kaydedildi:", path)
	return nil
}

type fieldEdit struct {
	field score.Field
	raw   string
}

type assignment struct {
	subject string
	edits   []fieldEdit
}

// parseAssignment parses "id=C/I", "id=C" or "id.field=N". The pair forms
// set correct then incorrect, an omitted incorrect meaning zero; the field
// form edits one side only. Counts stay raw so they get the same
// normalisation as typed input.
func parseAssignment(s string) (assignment, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	lhs = strings.TrimSpace(lhs)
	if !ok || lhs == "" {
		return assignment{}, fmt.Errorf("%w %q: want id=correct/incorrect", ErrBadAssignment, s)
	}

	if subject, name, found := strings.Cut(lhs, "."); found {
		field, err := score.ParseField(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return assignment{}, fmt.Errorf("%w %q: %v", ErrBadAssignment, s, err)
		}
		return assignment{
			subject: strings.TrimSpace(subject),
			edits:   []fieldEdit{{field: field, raw: strings.TrimSpace(rhs)}},
		}, nil
	}

	correct, incorrect, _ := strings.Cut(rhs, "/")
	return assignment{
		subject: lhs,
		edits: []fieldEdit{
			{field: score.Correct, raw: strings.TrimSpace(correct)},
			{field: score.Incorrect, raw: strings.TrimSpace(incorrect)},
		},
	}, nil
}
