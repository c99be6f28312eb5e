package command

import "errors"

var (
	// ErrMalformedCommand — текст не начинается с '/'
	ErrMalformedCommand = errors.New("command must start with the '/' sentinel")

	// ErrUnknownCommand — имя команды не зарегистрировано
	ErrUnknownCommand = errors.New("unknown command")

	// ErrConsoleOnly — команда зарезервирована за консолью оператора
	ErrConsoleOnly = errors.New("command is only available from the admin console")
)
