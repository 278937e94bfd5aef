package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/i18n"
	"github.com/pautahq/pauta/internal/util"
)

//go:embed schemas/history.json
var historySchema string

// validateWithSchema checks a JSON document against a JSON schema.
func validateWithSchema(document, schemaContent string) error {
	if schemaContent == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf(i18n.T("cli_error_schema_validation"), err)
	}

	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString(i18n.T("cli_error_schema_invalid"))
		for _, desc := range result.Errors() {
			fmt.Fprintf(&sb, "\n- %s", desc)
		}
		return fmt.Errorf("%s", sb.String())
	}

	return nil
}

// parseHistory validates and decodes a JSON array of messages.
func parseHistory(content string) ([]chat.Message, error) {
	if err := validateWithSchema(content, historySchema); err != nil {
		return nil, err
	}
	var messages []chat.Message
	if err := json.Unmarshal([]byte(content), &messages); err != nil {
		return nil, fmt.Errorf(i18n.T("cli_error_history_decode"), err)
	}
	return messages, nil
}

// loadHistoryFile reads a history file from disk.
func loadHistoryFile(path string) ([]chat.Message, error) {
	absPath, err := util.GetAbsolutePath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("cli_error_history_read"), path, err)
	}
	return parseHistory(string(content))
}
