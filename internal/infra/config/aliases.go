package config

import (
	"fmt"
	"os"

	"expiry_reminder_bot/internal/domain/registry"

	"gopkg.in/yaml.v3"
)

// LoadAliases returns the default header aliases, extended with the labels in
// the YAML file at path when path is non-empty. The file maps field keys
// (email, expire, gpt_id, gpt_name, sent_5d, sent_1d) to lists of labels:
//
//	expire:
//	  - expiry date
//	  - valid until
func LoadAliases(path string) (registry.AliasTable, error) {
	aliases := registry.DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read header aliases file: %w", err)
	}

	var extra map[string][]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse header aliases file %s: %w", path, err)
	}

	for key, labels := range extra {
		field, ok := registry.FieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown field %q in header aliases file %s", key, path)
		}
		aliases[field] = append(aliases[field], labels...)
	}
	return aliases, nil
}
