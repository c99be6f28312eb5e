package command

import (
	"bbs-server/internal/privilege"
)

// Kind различает три семейства команд на уровне реестра:
// именованные, повышение до уровня и понижение до уровня.
type Kind int

const (
	KindNamed Kind = iota
	KindGrant
	KindDemote
)

// Spec — результат разрешения имени команды: семейство, целевой уровень
// (для Grant/Demote) и требуемый уровень привилегий вызывающего.
type Spec struct {
	Name     string
	Kind     Kind
	Level    privilege.Level
	Required privilege.Level
}

// Registry — неизменяемая таблица команд. Строится один раз при старте
// процесса; префикс "dis" разворачивается в теговые варианты на этапе
// построения, а не проверяется заново при каждой диспетчеризации.
type Registry struct {
	specs       map[string]Spec
	consoleOnly map[string]struct{}
}

// demotePrefix — префикс команд понижения: /dis<level> <user>
const demotePrefix = "dis"

// namedRequired — требуемые уровни именованных команд
var namedRequired = map[string]privilege.Level{
	"del":       privilege.Manager,
	"destroy":   privilege.Moderator,
	"clear":     privilege.Moderator,
	"NG":        privilege.Manager,
	"OK":        privilege.Manager,
	"prevent":   privilege.Summit,
	"permit":    privilege.Moderator,
	"restrict":  privilege.Moderator,
	"stop":      privilege.Summit,
	"prohibit":  privilege.AdminOp,
	"release":   privilege.Moderator,
	"disself":   privilege.BlueID,
	"kill":      privilege.Summit,
	"ban":       privilege.Summit,
	"revive":    privilege.Summit,
	"reduce":    privilege.AdminOp,
	"topic":     privilege.Manager,
	"add":       privilege.Moderator,
	"color":     privilege.Moderator,
	"instances": privilege.Manager,
	"max":       privilege.AdminOp,
	"range":     privilege.AdminOp,
}

// grantRequired — кто может повысить пользователя до данного уровня.
// Повышение до admin_op отсутствует: оно выполняется только из консоли.
var grantRequired = map[privilege.Level]privilege.Level{
	privilege.Speaker:   privilege.Manager,
	privilege.Manager:   privilege.Moderator,
	privilege.Moderator: privilege.Summit,
	privilege.Summit:    privilege.AdminOp,
}

// demoteRequired — кто может понизить пользователя до данного уровня
var demoteRequired = map[privilege.Level]privilege.Level{
	privilege.Speaker:   privilege.Manager,
	privilege.Manager:   privilege.Summit,
	privilege.Moderator: privilege.Summit,
	privilege.Summit:    privilege.AdminOp,
}

// NewRegistry строит таблицу команд
func NewRegistry() *Registry {
	r := &Registry{
		specs: make(map[string]Spec),
		consoleOnly: map[string]struct{}{
			"admin_op":    {},
			"disadmin_op": {},
		},
	}

	for name, required := range namedRequired {
		r.specs[name] = Spec{Name: name, Kind: KindNamed, Required: required}
	}
	for level, required := range grantRequired {
		name := level.String()
		r.specs[name] = Spec{Name: name, Kind: KindGrant, Level: level, Required: required}
	}
	for level, required := range demoteRequired {
		name := demotePrefix + level.String()
		r.specs[name] = Spec{Name: name, Kind: KindDemote, Level: level, Required: required}
	}

	return r
}

// Resolve разрешает имя команды в спецификацию.
// Возвращает ErrConsoleOnly для команд, зарезервированных за консолью
// оператора, и ErrUnknownCommand для всего остального, что не в таблице.
func (r *Registry) Resolve(name string) (Spec, error) {
	if _, ok := r.consoleOnly[name]; ok {
		return Spec{}, ErrConsoleOnly
	}
	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, ErrUnknownCommand
	}
	return spec, nil
}
