// Package command parses shell input into page actions.
package command

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Kind identifies a shell command.
type Kind string

const (
	Unknown        Kind = "unknown"
	Search         Kind = "search"
	Open           Kind = "open"
	Next           Kind = "next"
	Prev           Kind = "prev"
	Page           Kind = "page"
	Servings       Kind = "servings"
	Bookmark       Kind = "bookmark"
	Bookmarks      Kind = "bookmarks"
	ClearBookmarks Kind = "bookmarks-clear"
	Shop           Kind = "shop"
	ShopAdd        Kind = "shop-add"
	ShopRemove     Kind = "shop-rm"
	ShopClear      Kind = "shop-clear"
	Export         Kind = "export"
	Upload         Kind = "upload"
	Show           Kind = "show"
	Help           Kind = "help"
	Quit           Kind = "quit"
)

// Command is one parsed line. Arg holds the rule's capture, if any.
type Command struct {
	Kind Kind
	Arg  string
}

// Parser matches input lines against an ordered rule table.
type Parser struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	regex *regexp.Regexp
	kind  Kind
}

// NewParser creates a parser with the shell's command table.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	// Order matters: "bookmarks clear" before "bookmarks", "shop add" before "shop".
	p.rules = []rule{
		{regexp.MustCompile(`(?i)^(?:search|find|s)\s+(.+)$`), Search},
		{regexp.MustCompile(`(?i)^(?:open|select|pick|o)\s+(\S+)$`), Open},
		{regexp.MustCompile(`^(\d{1,2})$`), Open},
		{regexp.MustCompile(`(?i)^(?:next|n)$`), Next},
		{regexp.MustCompile(`(?i)^(?:prev|previous|p)$`), Prev},
		{regexp.MustCompile(`(?i)^page\s+(\d+)$`), Page},
		{regexp.MustCompile(`(?i)^(?:servings|serve)\s+(\d+|\+|-)$`), Servings},
		{regexp.MustCompile(`(?i)^(?:bookmark|bm|fav)$`), Bookmark},
		{regexp.MustCompile(`(?i)^(?:bookmarks|bms)\s+clear$`), ClearBookmarks},
		{regexp.MustCompile(`(?i)^(?:bookmarks|bms)$`), Bookmarks},
		{regexp.MustCompile(`(?i)^(?:shop|list)\s+add$`), ShopAdd},
		{regexp.MustCompile(`(?i)^(?:shop|list)\s+(?:rm|remove|del)\s+(\d+)$`), ShopRemove},
		{regexp.MustCompile(`(?i)^(?:shop|list)\s+clear$`), ShopClear},
		{regexp.MustCompile(`(?i)^(?:shop|list)$`), Shop},
		{regexp.MustCompile(`(?i)^export\s+(\S+)$`), Export},
		{regexp.MustCompile(`(?i)^upload\s+(\S+)$`), Upload},
		{regexp.MustCompile(`(?i)^(?:show|recipe|r)$`), Show},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), Help},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), Quit},
	}
	return p
}

// Parse converts one input line into a command. Unmatched input comes back
// as Unknown with the trimmed line as its argument.
func (p *Parser) Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Kind: Unknown}
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := Command{Kind: r.kind}
		if len(m) > 1 {
			cmd.Arg = strings.TrimSpace(m[1])
		}
		p.log.Debug("matched command: %s %q", cmd.Kind, cmd.Arg)
		return cmd
	}

	p.log.Debug("no match, returning unknown command")
	return Command{Kind: Unknown, Arg: trimmed}
}

// Usage lists the commands for the help screen.
var Usage = [][2]string{
	{"search <query>", "search recipes"},
	{"open <n|id>", "open result n of the current page, or a recipe id"},
	{"next / prev", "move between result pages"},
	{"page <n>", "jump to a result page"},
	{"servings <n|+|->", "rescale the open recipe"},
	{"bookmark", "toggle the open recipe's bookmark"},
	{"bookmarks [clear]", "list or clear bookmarks"},
	{"shop [add|rm <n>|clear]", "show or edit the shopping list"},
	{"export <file>", "write the shopping list to .xlsx or .csv"},
	{"upload <file.yaml>", "submit a recipe from a YAML file"},
	{"show", "show the open recipe"},
	{"help / quit", ""},
}
