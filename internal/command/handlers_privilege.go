package command

import (
	"context"
	"errors"
	"fmt"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// handleGrant повышает пользователя до уровня, совпадающего с именем
// команды: /speaker <user>, /manager <user> и так далее. Цвет ID
// пересчитывается по каноничной карте при каждой смене уровня.
func (in *Interpreter) handleGrant(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error(fmt.Sprintf("/%s requires a username.", inv.spec.Name))
		return nil
	}
	username := inv.cmd.Args[0]

	if user, err := in.fetchUser(ctx, inv, username); err != nil || user == nil {
		return err
	}

	level := inv.spec.Level
	if err := inv.store.UpdateUserLevel(ctx, username, level, level.Color()); err != nil {
		return fmt.Errorf("grant %s to %s: %w", level, username, err)
	}
	inv.res.success(fmt.Sprintf("Promoted %s to %s.", username, level))
	return nil
}

// handleDemote понижает пользователя до уровня из имени команды:
// /dismanager <user> понижает до manager. Понижение возможно только
// строго вниз; понижение до speaker особым случаем приводит к blue_id.
func (in *Interpreter) handleDemote(ctx context.Context, inv *invocation) error {
	target := inv.spec.Level
	if !target.Valid() {
		inv.res.error(fmt.Sprintf("Invalid demotion target: %s", target))
		return nil
	}
	if len(inv.cmd.Args) == 0 {
		inv.res.error(fmt.Sprintf("/%s requires a username.", inv.spec.Name))
		return nil
	}
	username := inv.cmd.Args[0]

	user, err := in.fetchUser(ctx, inv, username)
	if err != nil || user == nil {
		return err
	}

	if user.Level.Index() <= target.Index() {
		inv.res.error(fmt.Sprintf("Cannot demote %s to %s.", username, target))
		return nil
	}

	// Семантика буквальной цели: пользователь получает именно названный
	// уровень, а не "на один ниже текущего"
	newLevel := target
	if target == privilege.Speaker {
		newLevel = privilege.BlueID
	}

	if err := inv.store.UpdateUserLevel(ctx, username, newLevel, newLevel.Color()); err != nil {
		return fmt.Errorf("demote %s to %s: %w", username, newLevel, err)
	}
	inv.res.success(fmt.Sprintf("Demoted %s to %s.", username, newLevel))
	return nil
}

// handleSelfDemote безусловно сбрасывает уровень вызывающего до blue_id
// и сигналит поверхности доставки о необходимости повторного входа
func (in *Interpreter) handleSelfDemote(ctx context.Context, inv *invocation) error {
	level := privilege.BlueID
	if err := inv.store.UpdateUserLevel(ctx, inv.caller.Username, level, level.Color()); err != nil {
		return fmt.Errorf("self-demote %s: %w", inv.caller.Username, err)
	}
	inv.res.success("Your privilege level has been reset to blue_id.")
	inv.res.ForceReauth = true
	return nil
}

// handleKill мягко отключает аккаунт: данные не удаляются,
// пользователь лишь теряет возможность входа и постинга
func (in *Interpreter) handleKill(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error("/kill requires a username.")
		return nil
	}
	username := inv.cmd.Args[0]

	if user, err := in.fetchUser(ctx, inv, username); err != nil || user == nil {
		return err
	}

	if err := inv.store.SetUserActive(ctx, username, false); err != nil {
		return fmt.Errorf("kill %s: %w", username, err)
	}
	inv.res.success(fmt.Sprintf("User '%s' has been disabled.", username))
	return nil
}

// handleRevive глобально снимает эффекты /kill и /ban: все отключенные
// аккаунты реактивируются, все забаненные IP помечаются одобренными.
// Повторный запуск безопасен.
func (in *Interpreter) handleRevive(ctx context.Context, inv *invocation) error {
	if _, err := inv.store.ReviveUsers(ctx); err != nil {
		return fmt.Errorf("revive users: %w", err)
	}
	if _, err := inv.store.ApproveAllBans(ctx); err != nil {
		return fmt.Errorf("approve bans: %w", err)
	}
	inv.res.success("All kill and ban effects have been lifted.")
	return nil
}

// fetchUser загружает целевого пользователя; "не найдено" оформляется
// как исход-ошибка (команда фиксируется), прочие ошибки откатывают команду
func (in *Interpreter) fetchUser(ctx context.Context, inv *invocation, username string) (*model.User, error) {
	user, err := inv.store.GetUserByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		inv.res.error(fmt.Sprintf("User '%s' was not found.", username))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", username, err)
	}
	return &user, nil
}
