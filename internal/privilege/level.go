package privilege

import "fmt"

// Level представляет уровень привилегий пользователя.
// Уровни строго упорядочены: сравнение выполняется по индексу в перечислении.
type Level string

const (
	BlueID    Level = "blue_id"
	Speaker   Level = "speaker"
	Manager   Level = "manager"
	Moderator Level = "moderator"
	Summit    Level = "summit"
	AdminOp   Level = "admin_op"
)

// None — сентинел для команд, недоступных через веб-интерфейс.
// Отличается от BlueID: BlueID доступен всем, None — никому.
const None Level = ""

// ordered задает каноничный порядок уровней от низшего к высшему
var ordered = []Level{BlueID, Speaker, Manager, Moderator, Summit, AdminOp}

// colorMap — каноничное соответствие уровня и цвета ID.
// Единственный источник истины для прямого и обратного поиска.
var colorMap = map[Level]string{
	BlueID:    "blue",
	Speaker:   "darkorange",
	Manager:   "red",
	Moderator: "purple",
	Summit:    "darkcyan",
	AdminOp:   "red",
}

// Levels возвращает все уровни в каноничном порядке
func Levels() []Level {
	out := make([]Level, len(ordered))
	copy(out, ordered)
	return out
}

// Index возвращает позицию уровня в перечислении (0 — низший).
// Неизвестный уровень получает -1.
func (l Level) Index() int {
	for i, lvl := range ordered {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Valid сообщает, входит ли уровень в перечисление
func (l Level) Valid() bool {
	return l.Index() >= 0
}

// String возвращает строковое имя уровня
func (l Level) String() string {
	return string(l)
}

// Parse преобразует строку в уровень привилегий
func Parse(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return None, fmt.Errorf("unknown privilege level: %q", s)
	}
	return l, nil
}

// Satisfies сообщает, достаточно ли уровня user для требования required.
// Требование None не удовлетворяется никогда.
func Satisfies(user, required Level) bool {
	if required == None {
		return false
	}
	ui, ri := user.Index(), required.Index()
	if ui < 0 || ri < 0 {
		return false
	}
	return ui >= ri
}

// Color возвращает каноничный цвет ID для уровня
func (l Level) Color() string {
	if c, ok := colorMap[l]; ok {
		return c
	}
	return colorMap[BlueID]
}

// LevelForColor выполняет обратный поиск: цвет -> уровень.
// Поиск идет по возрастанию уровней, поэтому при совпадении цветов
// (manager и admin_op оба красные) возвращается младший уровень.
func LevelForColor(color string) (Level, bool) {
	for _, lvl := range ordered {
		if colorMap[lvl] == color {
			return lvl, true
		}
	}
	return None, false
}
