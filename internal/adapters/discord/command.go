package discord

import (
	"strings"

	pkgdiscord "eventbot/pkg/discord"
)

const (
	cmdCreate  = "create"
	cmdClose   = "close"
	cmdActive  = "active"
	cmdSignup  = "signup"
	cmdUnsign  = "unsign"
	cmdSignups = "signups"
	cmdBulkAdd = "bulkadd"
	cmdRemove  = "remove"
	cmdConfirm = "confirm"
	cmdHelp    = "help"
)

var commandGroups = map[string]bool{"event": true, "events": true}

var commandAliases = map[string]string{
	"create":       cmdCreate,
	"add":          cmdCreate,
	"close":        cmdClose,
	"delete":       cmdClose,
	"active":       cmdActive,
	"current":      cmdActive,
	"open":         cmdActive,
	"signup":       cmdSignup,
	"sign":         cmdSignup,
	"join":         cmdSignup,
	"unsign":       cmdUnsign,
	"unsignup":     cmdUnsign,
	"signups":      cmdSignups,
	"participants": cmdSignups,
	"bulkadd":      cmdBulkAdd,
	"bulksign":     cmdBulkAdd,
	"remove":       cmdRemove,
	"confirm":      cmdConfirm,
	"help":         cmdHelp,
}

var commandUsage = map[string]string{
	cmdCreate:  "create <name> <short name> [capacity]",
	cmdClose:   "close <name>",
	cmdSignup:  "signup <name>",
	cmdUnsign:  "unsign <name>",
	cmdSignups: "signups <name>",
	cmdBulkAdd: "bulkadd <name> @user…",
	cmdRemove:  "remove <name> @user…",
	cmdConfirm: "confirm <name>",
}

// Command is a parsed event command. Name is empty for an unknown subcommand.
type Command struct {
	Name string
	Args []string
}

// ParseCommand reports whether content is an event command and parses it.
// A bare group ("!event") asks for help.
func ParseCommand(prefix, content string) (Command, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return Command{}, false
	}
	args := pkgdiscord.SplitArgs(strings.TrimPrefix(content, prefix))
	if len(args) == 0 || !commandGroups[strings.ToLower(args[0])] {
		return Command{}, false
	}
	if len(args) == 1 {
		return Command{Name: cmdHelp}, true
	}
	return Command{Name: commandAliases[strings.ToLower(args[1])], Args: args[2:]}, true
}

// joinedName rebuilds a multi-word event name from unquoted arguments.
func joinedName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
