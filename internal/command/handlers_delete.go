package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// handleDelete — пакетное удаление постов по номерам: /del 1 2 3
// Ошибки отдельных аргументов накапливаются как предупреждения и не
// прерывают обработку остальных.
func (in *Interpreter) handleDelete(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error("/del requires at least one post number.")
		return nil
	}

	deleted := 0
	for _, arg := range inv.cmd.Args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			inv.res.warning(fmt.Sprintf("Invalid post number: %s, skipped.", arg))
			continue
		}
		err = inv.store.DeletePost(ctx, id)
		if errors.Is(err, model.ErrPostNotFound) {
			inv.res.warning(fmt.Sprintf("Post %s was not found.", arg))
			continue
		}
		if err != nil {
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		deleted++
	}

	if deleted > 0 {
		inv.res.success(fmt.Sprintf("Deleted %d post(s).", deleted))
	} else {
		inv.res.info("No matching posts were found.")
	}
	return nil
}

// handleDestroy — массовое удаление по условию: /destroy color <цвет>
// удаляет посты всех авторов уровня, соответствующего цвету, иначе
// аргумент трактуется как подстрока в заголовке, тексте или номере поста.
func (in *Interpreter) handleDestroy(ctx context.Context, inv *invocation) error {
	if len(inv.cmd.Args) == 0 {
		inv.res.error("/destroy requires a match string or a 'color' selector.")
		return nil
	}

	condition := inv.cmd.Args[0]
	if strings.ToLower(condition) == "color" {
		if len(inv.cmd.Args) < 2 {
			inv.res.error("/destroy color requires a color name.")
			return nil
		}
		color := strings.ToLower(inv.cmd.Args[1])
		// Обратный поиск цвет -> уровень идет по каноничной карте,
		// а не по копии на стороне вызывающего
		level, ok := privilege.LevelForColor(color)
		if !ok {
			inv.res.error(fmt.Sprintf("Unknown color: %s", color))
			return nil
		}
		count, err := inv.store.DeletePostsByAuthorLevel(ctx, level)
		if err != nil {
			return fmt.Errorf("destroy by color %s: %w", color, err)
		}
		inv.res.success(fmt.Sprintf("Deleted %d post(s) by %s (%s) authors.", count, color, level))
		return nil
	}

	count, err := inv.store.DeletePostsMatching(ctx, condition)
	if err != nil {
		return fmt.Errorf("destroy matching %q: %w", condition, err)
	}
	inv.res.success(fmt.Sprintf("Deleted %d post(s) containing '%s'.", count, condition))
	return nil
}

// handleClear удаляет все посты и сбрасывает нумерацию к начальному
// значению. Обе мутации выполняются в одной транзакции: либо обе, либо ни одной.
func (in *Interpreter) handleClear(ctx context.Context, inv *invocation) error {
	count, err := inv.store.ClearPosts(ctx)
	if err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	inv.res.success(fmt.Sprintf("Deleted all %d post(s) and reset post numbering.", count))
	return nil
}
