package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/pautahq/pauta/internal/i18n"
	"github.com/pautahq/pauta/internal/intent"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeStructured prints v as JSON or YAML. It reports false for text output.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

func writeFormats(w io.Writer, format string, options []intent.FormatOption) error {
	if done, err := writeStructured(w, format, options); done || err != nil {
		return err
	}
	for _, opt := range options {
		if _, err := fmt.Fprintf(w, "%-15s %-22s %s\n", opt.Key, opt.Label, opt.Platform); err != nil {
			return err
		}
	}
	return nil
}

func writeResolution(w io.Writer, format string, res intent.Resolution) error {
	if done, err := writeStructured(w, format, res); done || err != nil {
		return err
	}

	var sb strings.Builder
	if res.Format != nil {
		fmt.Fprintf(&sb, "format:       %s (%s, %s)\n", res.Format.FormatLabel, res.Format.FormatKey, res.Format.Platform)
		keys := lo.Map(res.Alternatives, func(opt intent.FormatOption, _ int) string { return opt.Key })
		fmt.Fprintf(&sb, "alternatives: %s\n", strings.Join(keys, ", "))
	} else {
		sb.WriteString("format:       -\n")
	}
	if res.Reference.HasReference {
		fmt.Fprintf(&sb, "reference:    %s\n", res.Reference.ReferenceType)
		if res.Reference.Item != "" {
			fmt.Fprintf(&sb, "item:         %s\n", res.Reference.Item)
		}
	} else {
		sb.WriteString("reference:    -\n")
	}
	switch {
	case res.Image.IsImageRequest && res.Image.IsContextual:
		sb.WriteString("image:        yes (contextual)\n")
	case res.Image.IsImageRequest:
		sb.WriteString("image:        yes\n")
	default:
		sb.WriteString("image:        -\n")
	}
	fmt.Fprintf(&sb, "\n%s\n", res.Prompt())

	_, err := io.WriteString(w, sb.String())
	return err
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf(i18n.T("cli_error_copy_clipboard"), err)
	}
	return nil
}
