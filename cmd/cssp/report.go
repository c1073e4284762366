package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssp/config"
	"cssp/css"
)

// SummaryValues is a struct that holds variables we make available for
// summary template expansion
type SummaryValues struct {
	Context     string
	SourceFile  string
	Rules       int
	Properties  int
	Problems    int
	Definitions []string
}

func buildSummaryValues(name config.TemplateFieldName, srcName string, sheet *css.StyleSheet) SummaryValues {
	properties := 0
	rules := sheet.Rules()
	for _, rule := range rules {
		properties += len(rule.Properties)
	}
	return SummaryValues{
		Context:     string(name),
		SourceFile:  strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName)),
		Rules:       len(rules),
		Properties:  properties,
		Problems:    len(sheet.Errors()),
		Definitions: sheet.Registry().Names(),
	}
}

func expandSummary(name config.TemplateFieldName, field string, values SummaryValues) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
