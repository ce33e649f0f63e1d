package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Checker string // Filter by checker name
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are grouped by checker. A rule can be looked up by message ID
(E9994) or by symbol (notebooks-percent-run).

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  nblint rules

  # Show details for a specific rule
  nblint rules E9996
  nblint rules notebooks-percent-run

  # Show full documentation
  nblint rules -V

  # Output as JSON
  nblint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Checker, "checker", "c", "", "Filter by checker name")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rules := cmdCtx.Registry.Rules()
	if opts.Checker != "" {
		if _, err := cmdCtx.Registry.Get(opts.Checker); err != nil {
			return err
		}
		rules = filterRulesByChecker(rules, opts.Checker)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeSARIF:
		return listRulesJSON(r, cmdCtx.Registry, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func filterRulesByChecker(rules []lint.RuleInfo, checker string) []lint.RuleInfo {
	var filtered []lint.RuleInfo
	for _, ri := range rules {
		if ri.Checker == checker {
			filtered = append(filtered, ri)
		}
	}
	return filtered
}

// groupRules splits rules by checker, keeping first-seen checker order.
func groupRules(rules []lint.RuleInfo) (order []string, groups map[string][]lint.RuleInfo) {
	groups = make(map[string][]lint.RuleInfo)
	for _, ri := range rules {
		if _, ok := groups[ri.Checker]; !ok {
			order = append(order, ri.Checker)
		}
		groups[ri.Checker] = append(groups[ri.Checker], ri)
	}
	return order, groups
}

// checkerTitle turns "databricks-notebooks" into "Databricks Notebooks".
func checkerTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

func rulesTable(rules []lint.RuleInfo, verbose bool) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if verbose {
		t.AppendHeader(table.Row{"ID", "Symbol", "Severity", "Description", "Rationale"})
	} else {
		t.AppendHeader(table.Row{"ID", "Symbol", "Severity", "Description"})
	}
	for _, ri := range rules {
		row := table.Row{ri.ID, ri.Symbol, ri.Severity.String(), ri.Description}
		if verbose {
			row = append(row, ri.Rationale)
		}
		t.AppendRow(row)
	}
	return t
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	styles := r.Styles()
	order, groups := groupRules(rules)

	r.Println("")
	r.Println(styles.Header.Render(fmt.Sprintf("Lint Rules (%d rules, %d checkers)", len(rules), len(order))))
	r.Println("")

	for _, checker := range order {
		r.Println(styles.Bold.Render(checkerTitle(checker)) + " " + styles.Muted.Render("("+checker+")"))
		r.Println(rulesTable(groups[checker], verbose).Render())
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'nblint rules <rule-id>' for detailed documentation"))
	r.Println("")
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	order, groups := groupRules(rules)

	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")

	for _, checker := range order {
		r.Println(output.FormatHeader(2, fmt.Sprintf("%s (`%s`)", checkerTitle(checker), checker)))
		r.Println("")
		r.Println(rulesTable(groups[checker], verbose).RenderMarkdown())
		r.Println("")
	}
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules    []lint.RuleInfo `json:"rules"`
	Checkers []CheckerJSON   `json:"checkers"`
	Count    int             `json:"count"`
}

// CheckerJSON describes a checker in JSON output.
type CheckerJSON struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Options     []lint.OptionDef `json:"options"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, registry *lint.Registry, rules []lint.RuleInfo) error {
	out := RulesJSONOutput{Rules: rules, Count: len(rules)}
	if out.Rules == nil {
		out.Rules = []lint.RuleInfo{}
	}

	order, _ := groupRules(rules)
	for _, name := range order {
		c, err := registry.Get(name)
		if err != nil {
			return err
		}
		out.Checkers = append(out.Checkers, CheckerJSON{
			Name:        c.Name(),
			Description: c.Description(),
			Options:     c.Options(),
		})
	}
	return r.JSON(out)
}

func showRule(cmd *cobra.Command, key string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rule, ok := cmdCtx.Registry.LookupRule(key)
	if !ok {
		return fmt.Errorf("rule %q not found", key)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeSARIF:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule lint.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Symbol)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Checker"), rule.Checker)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), getSeverityStyle(styles, rule.Severity).Render(rule.Severity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Message"), rule.Template)
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if len(rule.Options) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		for _, opt := range rule.Options {
			r.Printf("  %s (%s, default %v): %s\n", opt.Name, opt.Type, opt.Default, opt.Help)
		}
		r.Println("")
	}

	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), rule.DocURL)
	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule lint.RuleInfo) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("%s - %s", rule.ID, rule.Symbol)))
	r.Println("")
	r.Printf("**Checker:** `%s` | **Severity:** `%s`\n\n", rule.Checker, rule.Severity.String())
	r.Println(rule.Description)
	r.Println("")
	r.Println(output.FormatKeyValue("Message", rule.Template))
	r.Println(output.FormatKeyValue("Docs", rule.DocURL))
	r.Println("")

	if rule.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(output.FormatHeader(2, "Bad Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("python", rule.BadExample))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(output.FormatHeader(2, "Good Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("python", rule.GoodExample))
		r.Println("")
	}

	if len(rule.Options) > 0 {
		r.Println(output.FormatHeader(2, "Configuration"))
		r.Println("")
		for _, opt := range rule.Options {
			r.Printf("- `%s` (%s, default `%v`): %s\n", opt.Name, opt.Type, opt.Default, opt.Help)
		}
		r.Println("")
	}

	return nil
}

func getSeverityStyle(styles output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
