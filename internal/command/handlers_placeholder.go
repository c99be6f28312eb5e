package command

import (
	"context"
	"fmt"
	"strings"
)

// Обработчики-заглушки. Семейства ниже намеренно еще не реализованы:
// аргументы проверяются ровно так, как их будет проверять настоящий
// обработчик, чтобы сообщения об ошибках не изменились при достройке,
// но единственный исход — информационное сообщение без мутаций.

// handleWordFilter — /NG и /OK, будущий фильтр слов
func (in *Interpreter) handleWordFilter(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error(fmt.Sprintf("/%s requires a word.", inv.spec.Name))
		return nil
	}
	inv.res.info(fmt.Sprintf("Word filter command '%s' is not yet available.", inv.spec.Name))
	return nil
}

// handleRestriction — группа команд ограничения постинга
// (prevent, permit, restrict, stop, prohibit, release)
func (in *Interpreter) handleRestriction(ctx context.Context, inv *invocation) error {
	inv.res.info(fmt.Sprintf("Restriction command '%s' is not yet available.", inv.spec.Name))
	return nil
}

// handleReduce — будущее процентное сокращение привилегий
func (in *Interpreter) handleReduce(ctx context.Context, inv *invocation) error {
	inv.res.info("/reduce is not yet available.")
	return nil
}

// handleTopic — будущий баннер темы доски
func (in *Interpreter) handleTopic(ctx context.Context, inv *invocation) error {
	if inv.cmd.ArgsRaw == "" {
		inv.res.error("/topic requires the topic text.")
		return nil
	}
	inv.res.info(fmt.Sprintf("Topic change to '%s' is not yet available.", inv.cmd.ArgsRaw))
	return nil
}

// handleNameSuffix — будущий суффикс к имени: /add <user> <текст>.
// Цель ищется уже сейчас, чтобы ошибка "не найдено" совпадала с будущей.
func (in *Interpreter) handleNameSuffix(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) < 2 {
		inv.res.error("/add requires a username and the text to append.")
		return nil
	}
	username := inv.cmd.Args[0]
	// Суффикс — весь остаток после имени, включая пробелы
	suffix := strings.SplitN(inv.cmd.ArgsRaw, " ", 2)[1]

	if user, err := in.fetchUser(ctx, inv, username); err != nil || user == nil {
		return err
	}

	inv.res.info(fmt.Sprintf("Name suffix '%s' for user '%s' is not yet available.", suffix, username))
	return nil
}

// handleBoardControl — instances, max, range
func (in *Interpreter) handleBoardControl(ctx context.Context, inv *invocation) error {
	inv.res.info(fmt.Sprintf("Command '%s' is not yet available.", inv.spec.Name))
	return nil
}
