package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// Interpreter выполняет конвейер команды:
// разбор -> разрешение в реестре -> проверка привилегий -> одна транзакция
// -> ровно один обработчик -> фиксация или откат.
// После инициализации интерпретатор неизменяем: все мутации уходят в Store.
type Interpreter struct {
	registry *Registry
	store    TxRunner
	named    map[string]handlerFunc
}

// invocation — контекст одного вызова команды, передаваемый обработчику
// внутри открытой транзакции
type invocation struct {
	caller model.User
	spec   Spec
	cmd    ParsedCommand
	store  Store
	res    *Result
}

type handlerFunc func(ctx context.Context, inv *invocation) error

// New создает интерпретатор поверх транзакционного хранилища
func New(store TxRunner) *Interpreter {
	in := &Interpreter{
		registry: NewRegistry(),
		store:    store,
	}
	in.named = map[string]handlerFunc{
		"del":     in.handleDelete,
		"destroy": in.handleDestroy,
		"clear":   in.handleClear,
		"disself": in.handleSelfDemote,
		"kill":    in.handleKill,
		"revive":  in.handleRevive,
		"ban":     in.handleBan,
		"color":   in.handleRecolor,

		// Еще не реализованные семейства: аргументы проверяются так же,
		// как будет проверять будущий обработчик, мутаций нет
		"NG":        in.handleWordFilter,
		"OK":        in.handleWordFilter,
		"prevent":   in.handleRestriction,
		"permit":    in.handleRestriction,
		"restrict":  in.handleRestriction,
		"stop":      in.handleRestriction,
		"prohibit":  in.handleRestriction,
		"release":   in.handleRestriction,
		"reduce":    in.handleReduce,
		"topic":     in.handleTopic,
		"add":       in.handleNameSuffix,
		"instances": in.handleBoardControl,
		"max":       in.handleBoardControl,
		"range":     in.handleBoardControl,
	}
	return in
}

// Execute выполняет одну команду от имени вызывающего.
// Вызывающий передается явно: интерпретатор не читает идентичность из
// неявного контекста запроса. Все исходы, включая сбой хранилища,
// возвращаются упорядоченным списком сообщений.
func (in *Interpreter) Execute(ctx context.Context, caller model.User, text string) Result {
	var res Result

	if !caller.IsActive {
		res.error("Your account is disabled.")
		return res
	}

	cmd, err := Parse(text)
	if err != nil {
		res.error("Commands must start with '/'.")
		return res
	}

	spec, err := in.registry.Resolve(cmd.Name)
	switch {
	case errors.Is(err, ErrConsoleOnly):
		res.error(fmt.Sprintf("Command '%s' cannot be executed from the web UI. Use the admin console.", cmd.Name))
		return res
	case errors.Is(err, ErrUnknownCommand):
		res.error(fmt.Sprintf("Unknown command: %s", cmd.Name))
		return res
	case err != nil:
		log.Error().Err(err).Str("command", cmd.Name).Msg("command registry lookup failed")
		res.error("Unexpected error while resolving the command.")
		return res
	}

	if !privilege.Satisfies(caller.Level, spec.Required) {
		res.error(fmt.Sprintf("Executing '%s' requires %s or higher.", cmd.Name, spec.Required))
		return res
	}

	err = in.store.WithinTx(ctx, func(s Store) error {
		inv := &invocation{caller: caller, spec: spec, cmd: cmd, store: s, res: &res}
		return in.dispatch(ctx, inv)
	})
	if err != nil {
		// Единственный путь отката: обработчик столкнулся с неожиданным
		// сбоем. Накопленные сообщения отброшены вместе с мутациями.
		log.Error().Err(err).
			Str("command", cmd.Name).
			Str("caller", caller.Username).
			Msg("command rolled back")
		res = Result{}
		res.error(fmt.Sprintf("Unexpected error while executing '%s'.", cmd.Name))
		return res
	}

	return res
}

// dispatch выбирает ровно один обработчик для разрешенной команды
func (in *Interpreter) dispatch(ctx context.Context, inv *invocation) error {
	switch inv.spec.Kind {
	case KindGrant:
		return in.handleGrant(ctx, inv)
	case KindDemote:
		return in.handleDemote(ctx, inv)
	default:
		h, ok := in.named[inv.spec.Name]
		if !ok {
			return fmt.Errorf("no handler registered for command %q", inv.spec.Name)
		}
		return h(ctx, inv)
	}
}
