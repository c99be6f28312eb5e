package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"bbs-server/internal/model"
)

// ipv4Pattern — грубая форма IPv4-адреса; аргумент, не похожий на IP,
// трактуется как номер поста
var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// colorCodePattern — цветовой код формата #RRGGBB
var colorCodePattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// handleBan банит IP-адрес напрямую или по номеру поста.
// Повторный бан уже заблокированного адреса идемпотентен: строка не
// дублируется, команда считается успешной.
func (in *Interpreter) handleBan(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error("/ban requires an IP address or a post number.")
		return nil
	}
	target := inv.cmd.Args[0]

	if ipv4Pattern.MatchString(target) {
		reason := fmt.Sprintf("Banned by command from %s", inv.caller.Username)
		if _, err := inv.store.BanIP(ctx, target, reason); err != nil {
			return fmt.Errorf("ban ip %s: %w", target, err)
		}
		inv.res.success(fmt.Sprintf("IP address '%s' has been banned.", target))
		return nil
	}

	postID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		inv.res.error("Invalid IP address or post number.")
		return nil
	}

	ip, err := inv.store.GetPostIP(ctx, postID)
	if errors.Is(err, model.ErrPostNotFound) {
		inv.res.error(fmt.Sprintf("Post %d was not found.", postID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup post %d ip: %w", postID, err)
	}
	if ip == "" {
		inv.res.error(fmt.Sprintf("Post %d has no recorded IP address.", postID))
		return nil
	}

	reason := fmt.Sprintf("Banned via post %d by %s", postID, inv.caller.Username)
	if _, err := inv.store.BanIP(ctx, ip, reason); err != nil {
		return fmt.Errorf("ban ip %s from post %d: %w", ip, postID, err)
	}
	inv.res.success(fmt.Sprintf("Banned IP address '%s' from post %d.", ip, postID))
	return nil
}

// handleRecolor задает пользователю явный цвет ID в обход цвета,
// выводимого из уровня привилегий. Код проверяется до обращения к хранилищу.
func (in *Interpreter) handleRecolor(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) < 2 {
		inv.res.error("/color requires a color code and a username.")
		return nil
	}
	code := inv.cmd.Args[0]
	username := inv.cmd.Args[1]

	if !colorCodePattern.MatchString(code) {
		inv.res.error("Invalid color code. Use the #FFFFFF format.")
		return nil
	}

	if user, err := in.fetchUser(ctx, inv, username); err != nil || user == nil {
		return err
	}

	if err := inv.store.UpdateUserColor(ctx, username, code); err != nil {
		return fmt.Errorf("recolor %s: %w", username, err)
	}
	inv.res.success(fmt.Sprintf("Changed %s's name color to %s.", username, code))
	return nil
}
