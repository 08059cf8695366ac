package domain

import (
	"encoding/json"
	"strings"
)

// NormalizeRoles converts the stored roles column into a role set.
// Pre-migration rows hold a bare scalar ("student"); migrated rows hold a
// JSON array (["student","instructor"]). Callers never see the scalar form.
func NormalizeRoles(raw string) []Role {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil
		}
		roles := make([]Role, 0, len(parsed))
		for _, r := range parsed {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, Role(r))
			}
		}
		return dedupeRoles(roles)
	}

	return []Role{Role(raw)}
}

// DenormalizeRoles renders a role set for storage. Writes always use the
// array form; the scalar form is read-compatibility only.
func DenormalizeRoles(roles []Role) string {
	roles = dedupeRoles(roles)
	if len(roles) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// UnionRoles adds extra roles to a set, preserving existing order.
func UnionRoles(roles []Role, extra ...Role) []Role {
	out := dedupeRoles(roles)
	for _, r := range extra {
		found := false
		for _, have := range out {
			if have == r {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}

func dedupeRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
