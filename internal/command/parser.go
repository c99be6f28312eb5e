package command

import "strings"

// Sentinel — символ, отличающий команду от обычного поста
const Sentinel = "/"

// ParsedCommand — разобранный текст команды.
// ArgsRaw хранит остаток строки дословно: некоторые команды (topic, add)
// используют его целиком, остальные работают с токенами Args.
type ParsedCommand struct {
	Name    string
	Args    []string
	ArgsRaw string
}

// Parse разбирает сырой текст команды.
// Имя команды нормализуется к нижнему регистру, кроме пары NG/OK:
// эти два токена чувствительны к регистру и различаются между собой.
func Parse(text string) (ParsedCommand, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, Sentinel) {
		return ParsedCommand{}, ErrMalformedCommand
	}

	rest := text[len(Sentinel):]
	name := rest
	argsRaw := ""
	if idx := strings.Index(rest, " "); idx >= 0 {
		name = rest[:idx]
		argsRaw = rest[idx+1:]
	}

	if name != "NG" && name != "OK" {
		name = strings.ToLower(name)
	}

	var args []string
	if argsRaw != "" {
		args = strings.Split(argsRaw, " ")
	}

	return ParsedCommand{Name: name, Args: args, ArgsRaw: argsRaw}, nil
}
