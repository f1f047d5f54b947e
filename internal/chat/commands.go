package chat

import "strings"

// Command is a recognized inline AI query embedded in a chat message.
type Command struct {
	Prefix string
	Query  string
}

// commandTable is scanned first-occurrence-in-string wins, not table
// order. Table order only breaks position ties, which is what makes
// "@negotiate" win over its own prefix "@nego" at the same index.
var commandTable = []string{"@gemini", "@negotiate", "@nego"}

// ParseCommand finds the earliest command prefix anywhere in the body
// (case-sensitive, not anchored to message start). Everything after the
// prefix token is trimmed and treated as the query; an empty query is
// still a recognized command and the caller answers it with canned
// guidance instead of calling the AI gateway.
func ParseCommand(body string) (Command, bool) {
	best := -1
	var prefix string
	for _, p := range commandTable {
		if idx := strings.Index(body, p); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			prefix = p
		}
	}
	if best < 0 {
		return Command{}, false
	}

	query := strings.TrimSpace(body[best+len(prefix):])
	return Command{Prefix: prefix, Query: query}, true
}
