package brackets

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseTeams decodes a teams payload whose entries may come in several
// shapes: a plain string, an object with a "name" or "team_name" field, or a
// positional array whose first element is the name. Unrecognized entries get
// a synthetic placeholder name so the bracket never renders an empty label.
func ParseTeams(data []byte) ([]Team, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("teams payload is not a JSON array: %w", err)
	}

	teams := make([]Team, 0, len(entries))
	for i, entry := range entries {
		teams = append(teams, normalizeEntry(entry, i))
	}
	return teams, nil
}

func normalizeEntry(raw json.RawMessage, index int) Team {
	team := Team{ID: fmt.Sprintf("team-%d", index+1)}

	var name string
	var asString string
	var asObject map[string]json.RawMessage
	var asArray []json.RawMessage

	switch {
	case json.Unmarshal(raw, &asString) == nil:
		name = asString
	case json.Unmarshal(raw, &asObject) == nil:
		name = stringField(asObject, "name")
		if name == "" {
			name = stringField(asObject, "team_name")
		}
		if id := stringField(asObject, "id"); id != "" {
			team.ID = id
		} else if idNum, ok := numberField(asObject, "id"); ok {
			team.ID = fmt.Sprintf("team-%d", idNum)
		}
	case json.Unmarshal(raw, &asArray) == nil && len(asArray) > 0:
		var first string
		if json.Unmarshal(asArray[0], &first) == nil {
			name = first
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Team %d", index+1)
	}

	team.Name = name
	team.IsBye = name == ByeName
	return team
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func numberField(obj map[string]json.RawMessage, key string) (int64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}
