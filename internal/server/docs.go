package server

import (
	"fmt"
	"strings"

	"github.com/eternalApril/starlight/internal/resp"
)

func serverCommands() []Registration {
	return []Registration{
		{Name: "COMMAND", Handler: HandlerFunc(commandInfo)},
	}
}

type commandMetadata struct {
	arity    int      // Arity includes the command name itself
	flags    []string // read, write, fast, denyoom, etc
	firstKey int      // 1-based index of the first key
	lastKey  int      // 1-based index of the last key
	step     int      // Step count for finding keys
}

var commandMetadataTable = map[string]commandMetadata{
	"PING":     {-1, []string{"fast", "stale"}, 0, 0, 0},
	"QUIT":     {1, []string{"fast", "stale"}, 0, 0, 0},
	"GET":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"SET":      {-3, []string{"write", "denyoom"}, 1, 1, 1},
	"GETSET":   {3, []string{"write", "denyoom"}, 1, 1, 1},
	"GETRANGE": {4, []string{"readonly"}, 1, 1, 1},
	"DEL":      {-2, []string{"write"}, 1, -1, 1},
	"TTL":      {2, []string{"readonly", "fast"}, 1, 1, 1},
	"PTTL":     {2, []string{"readonly", "fast"}, 1, 1, 1},
	"PERSIST":  {2, []string{"write", "fast"}, 1, 1, 1},
	"COMMAND":  {-1, []string{"random", "loading", "stale"}, 0, 0, 0},
}

// commandDoc stores a description for the command
type commandDoc struct {
	summary    string
	complexity string
	group      string
	since      string
}

// commandDocsTable documentation registry
var commandDocsTable = map[string]commandDoc{
	"PING": {
		summary:    "Ping the server.",
		complexity: "O(1)",
		group:      "connection",
		since:      "1.0.0",
	},
	"QUIT": {
		summary:    "Close the connection.",
		complexity: "O(1)",
		group:      "connection",
		since:      "1.0.0",
	},
	"GET": {
		summary:    "Get the value of a key.",
		complexity: "O(1)",
		group:      "string",
		since:      "1.0.0",
	},
	"SET": {
		summary:    "Set the string value of a key.",
		complexity: "O(1)",
		group:      "string",
		since:      "1.0.0",
	},
	"GETSET": {
		summary:    "Set the string value of a key and return its old value.",
		complexity: "O(1)",
		group:      "string",
		since:      "1.0.0",
	},
	"GETRANGE": {
		summary:    "Get a substring of the string stored at a key.",
		complexity: "O(N) where N is the length of the returned string.",
		group:      "string",
		since:      "1.0.0",
	},
	"DEL": {
		summary:    "Delete a key.",
		complexity: "O(N) where N is the number of keys that will be removed.",
		group:      "generic",
		since:      "1.0.0",
	},
	"TTL": {
		summary:    "Get the time to live for a key in seconds.",
		complexity: "O(1)",
		group:      "generic",
		since:      "1.0.0",
	},
	"PTTL": {
		summary:    "Get the time to live for a key in milliseconds.",
		complexity: "O(1)",
		group:      "generic",
		since:      "1.0.0",
	},
	"PERSIST": {
		summary:    "Remove the expiration from a key.",
		complexity: "O(1)",
		group:      "generic",
		since:      "1.0.0",
	},
	"COMMAND": {
		summary:    "Get array of command details.",
		complexity: "O(N) where N is the number of commands to look up.",
		group:      "server",
		since:      "1.0.0",
	},
}

func commandInfo(_ *Context, args *Parser) (resp.Value, error) {
	if !args.More() {
		return allCommandsReply(), nil
	}

	sub, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}

	switch strings.ToUpper(sub) {
	case "COUNT":
		return resp.MakeInteger(int64(len(commandMetadataTable))), nil
	case "DOCS":
		var targets []string
		for args.More() {
			name, err := args.NextString()
			if err != nil {
				return resp.Value{}, err
			}
			targets = append(targets, strings.ToUpper(name))
		}
		return commandDocsReply(targets), nil
	case "INFO":
		var details []resp.Value
		for args.More() {
			name, err := args.NextString()
			if err != nil {
				return resp.Value{}, err
			}
			name = strings.ToUpper(name)
			if _, ok := commandMetadataTable[name]; !ok {
				details = append(details, resp.MakeNilArray())
				continue
			}
			details = append(details, resp.MakeArray(makeInfoCmdArray(name)))
		}
		return resp.MakeArray(details), nil
	}
	return resp.Value{}, fmt.Errorf("%w: unknown COMMAND subcommand '%s'", ErrSyntax, sub)
}

func makeFlagsArray(flags []string) resp.Value {
	vals := make([]resp.Value, len(flags))
	for i, f := range flags {
		vals[i] = resp.MakeSimpleString(f)
	}
	return resp.MakeArray(vals)
}

func makeInfoCmdArray(name string) []resp.Value {
	meta := commandMetadataTable[name]
	return []resp.Value{
		resp.MakeBulkString(name),
		resp.MakeInteger(int64(meta.arity)),
		makeFlagsArray(meta.flags),
		resp.MakeInteger(int64(meta.firstKey)),
		resp.MakeInteger(int64(meta.lastKey)),
		resp.MakeInteger(int64(meta.step)),
	}
}

func allCommandsReply() resp.Value {
	cmdArray := make([]resp.Value, 0, len(commandMetadataTable))
	for name := range commandMetadataTable {
		cmdArray = append(cmdArray, resp.MakeArray(makeInfoCmdArray(name)))
	}
	return resp.MakeArray(cmdArray)
}

// commandDocsReply returns documentation for specified commands or all commands
// Format: [Name, [Summary, val, Since, val...], Name, [...]]
func commandDocsReply(targets []string) resp.Value {
	if len(targets) == 0 {
		targets = make([]string, 0, len(commandDocsTable))
		for name := range commandDocsTable {
			targets = append(targets, name)
		}
	}

	result := make([]resp.Value, 0, len(targets)*2)
	for _, name := range targets {
		doc, ok := commandDocsTable[name]
		if !ok {
			continue
		}

		result = append(result, resp.MakeBulkString(name))
		props := []resp.Value{
			resp.MakeBulkString("summary"),
			resp.MakeBulkString(doc.summary),
			resp.MakeBulkString("since"),
			resp.MakeBulkString(doc.since),
			resp.MakeBulkString("group"),
			resp.MakeBulkString(doc.group),
			resp.MakeBulkString("complexity"),
			resp.MakeBulkString(doc.complexity),
		}
		result = append(result, resp.MakeArray(props))
	}

	return resp.MakeArray(result)
}
