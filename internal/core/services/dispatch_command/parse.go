package dispatchcommand

import (
	"strings"
	"unicode"
)

const addFormatHint = "Format: /add <name>,dd-mm-yyyy,<service>,<handle>"

// usageError carries the full reply for a command whose argument shape
// is wrong. It is resolved at parse time, before any handler runs.
type usageError struct {
	reply string
}

func (e *usageError) Error() string {
	return e.reply
}

type command interface {
	isCommand()
}

type helpCommand struct{}

type addCommand struct {
	Name    string
	Date    string
	Service string
	Handle  string
}

type removeCommand struct {
	Name string
}

type getCommand struct {
	Names []string
}

type todayCommand struct{}

type unknownCommand struct {
	Token string
}

func (helpCommand) isCommand()    {}
func (addCommand) isCommand()     {}
func (removeCommand) isCommand()  {}
func (getCommand) isCommand()     {}
func (todayCommand) isCommand()   {}
func (unknownCommand) isCommand() {}

// parseCommand resolves raw text into a typed command. The token up to
// the first whitespace names the command, the remainder is split on
// commas with every piece trimmed. An empty remainder yields no
// arguments.
func parseCommand(text string) (command, error) {
	token := text
	blob := ""
	if ix := strings.IndexFunc(text, unicode.IsSpace); ix >= 0 {
		token = text[:ix]
		blob = text[ix:]
	}

	var arguments []string
	blob = strings.TrimSpace(blob)
	if blob != "" {
		arguments = strings.Split(blob, ",")
		for ix := range arguments {
			arguments[ix] = strings.TrimSpace(arguments[ix])
		}
	}

	switch token {
	case "/start", "/help":
		return helpCommand{}, nil
	case "/add":
		return parseAdd(arguments)
	case "/remove":
		if len(arguments) != 1 {
			return nil, &usageError{reply: "Incorrect usage"}
		}
		return removeCommand{Name: arguments[0]}, nil
	case "/get", "/list":
		return getCommand{Names: arguments}, nil
	case "/today":
		return todayCommand{}, nil
	}
	return unknownCommand{Token: token}, nil
}

func parseAdd(arguments []string) (command, error) {
	switch len(arguments) {
	case 2:
		return addCommand{Name: arguments[0], Date: arguments[1]}, nil
	case 4:
		return addCommand{
			Name:    arguments[0],
			Date:    arguments[1],
			Service: arguments[2],
			Handle:  arguments[3],
		}, nil
	}
	return nil, &usageError{reply: "Incorrect number of arguments.\n" + addFormatHint}
}
