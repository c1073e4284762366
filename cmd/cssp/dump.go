package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssp/config"
	"cssp/css"
	"cssp/state"
)

func parseStylesheets(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("a stylesheet file is required")
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many files", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	rootPath := cmd.String("root")
	if len(rootPath) == 0 {
		rootPath = env.Cfg.Stylesheet.RootPath
	}

	// configuration lists come first, command line adds to them
	prepend := append(append([]string{}, env.Cfg.Stylesheet.Prepend...), cmd.StringSlice("prepend")...)
	appendFiles := append(append([]string{}, env.Cfg.Stylesheet.Append...), cmd.StringSlice("append")...)

	sheet := css.NewStyleSheet(env.Log)
	sheet.SetRootPath(rootPath)

	definitions := cmd.String("definitions")
	if len(definitions) == 0 {
		definitions = env.Cfg.Stylesheet.Definitions
	}
	if len(definitions) > 0 {
		if err := sheet.Registry().LoadFile(definitions); err != nil {
			return fmt.Errorf("unable to load property definitions: %w", err)
		}
		env.Log.Debug("Loaded property definitions", zap.String("file", definitions), zap.Strings("names", sheet.Registry().Names()))
	}

	for _, name := range prepend {
		sheet.ParseFile(name)
	}
	sheet.ParseFile(cmd.Args().Get(0))
	for _, name := range appendFiles {
		sheet.ParseFile(name)
	}

	rules := sheet.Rules()
	errors := sheet.Errors()

	fmt.Printf("%d results:\n", len(rules))
	if !cmd.Bool("quiet") {
		dumpRules(rules)
	}

	if tmpl := env.Cfg.Stylesheet.SummaryTemplate; len(tmpl) > 0 {
		values := buildSummaryValues(config.SummaryTemplateFieldName, cmd.Args().Get(0), sheet)
		summary, err := expandSummary(config.SummaryTemplateFieldName, tmpl, values)
		if err != nil {
			env.Log.Warn("Unable to expand summary template", zap.Error(err))
		} else {
			fmt.Println(summary)
		}
	}

	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "%d problems:\n", len(errors))
		for _, e := range errors {
			fmt.Fprintln(os.Stderr, e.String())
		}
		return fmt.Errorf("%d problem(s) found while parsing", len(errors))
	}
	return nil
}

func dumpRules(rules []css.Rule) {
	for _, rule := range rules {
		fmt.Println("Selector(")
		for _, part := range rule.Selector.Parts {
			fmt.Printf("  %s\n", part)
		}
		fmt.Println(")")
		for _, prop := range rule.Properties {
			fmt.Println("Property(")
			fmt.Printf("  name: %s\n", prop.Name)
			for _, value := range prop.Values {
				fmt.Printf("  value: %s\n", value)
			}
			fmt.Println(")")
		}
	}
}
