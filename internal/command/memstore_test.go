package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// errBoom имитирует неожиданный сбой хранилища
var errBoom = errors.New("storage failure")

type memPost struct {
	id      int64
	author  string
	title   string
	content string
	ip      string
}

// memStore — хранилище в памяти для тестов интерпретатора.
// Считает мутации, чтобы проверять свойство "ноль мутаций при отказе".
type memStore struct {
	users  map[string]*model.User
	posts  map[int64]*memPost
	nextID int64
	bans   map[string]*model.BannedIP

	mutations int
	failOn    string // имя метода, возвращающего errBoom
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*model.User),
		posts:  make(map[int64]*memPost),
		nextID: 1,
		bans:   make(map[string]*model.BannedIP),
	}
}

func (m *memStore) addUser(username string, level privilege.Level) *model.User {
	u := &model.User{
		ID:       uuid.New(),
		Username: username,
		Level:    level,
		IDColor:  level.Color(),
		IsActive: true,
	}
	m.users[username] = u
	return u
}

func (m *memStore) addPost(author, content, ip string) *memPost {
	p := &memPost{id: m.nextID, author: author, content: content, ip: ip}
	m.posts[p.id] = p
	m.nextID++
	return p
}

func (m *memStore) fail(method string) error {
	if m.failOn == method {
		return errBoom
	}
	return nil
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = m.nextID
	c.mutations = m.mutations
	c.failOn = m.failOn
	for k, v := range m.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range m.posts {
		p := *v
		c.posts[k] = &p
	}
	for k, v := range m.bans {
		b := *v
		c.bans[k] = &b
	}
	return c
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	if err := m.fail("GetUserByUsername"); err != nil {
		return model.User{}, err
	}
	u, ok := m.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return *u, nil
}

func (m *memStore) UpdateUserLevel(ctx context.Context, username string, level privilege.Level, color string) error {
	if err := m.fail("UpdateUserLevel"); err != nil {
		return err
	}
	u, ok := m.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	m.mutations++
	u.Level = level
	u.IDColor = color
	return nil
}

func (m *memStore) UpdateUserColor(ctx context.Context, username string, color string) error {
	if err := m.fail("UpdateUserColor"); err != nil {
		return err
	}
	u, ok := m.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	m.mutations++
	u.IDColor = color
	return nil
}

func (m *memStore) SetUserActive(ctx context.Context, username string, active bool) error {
	if err := m.fail("SetUserActive"); err != nil {
		return err
	}
	u, ok := m.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	m.mutations++
	u.IsActive = active
	return nil
}

func (m *memStore) ReviveUsers(ctx context.Context) (int64, error) {
	if err := m.fail("ReviveUsers"); err != nil {
		return 0, err
	}
	var n int64
	for _, u := range m.users {
		if !u.IsActive {
			m.mutations++
			u.IsActive = true
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeletePost(ctx context.Context, id int64) error {
	if err := m.fail("DeletePost"); err != nil {
		return err
	}
	if _, ok := m.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	m.mutations++
	delete(m.posts, id)
	return nil
}

func (m *memStore) DeletePostsByAuthorLevel(ctx context.Context, level privilege.Level) (int64, error) {
	if err := m.fail("DeletePostsByAuthorLevel"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range m.posts {
		u, ok := m.users[p.author]
		if ok && u.Level == level {
			m.mutations++
			delete(m.posts, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeletePostsMatching(ctx context.Context, pattern string) (int64, error) {
	if err := m.fail("DeletePostsMatching"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range m.posts {
		if strings.Contains(p.title, pattern) ||
			strings.Contains(p.content, pattern) ||
			strings.Contains(strconv.FormatInt(id, 10), pattern) {
			m.mutations++
			delete(m.posts, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) ClearPosts(ctx context.Context) (int64, error) {
	if err := m.fail("ClearPosts"); err != nil {
		return 0, err
	}
	n := int64(len(m.posts))
	m.mutations++
	m.posts = make(map[int64]*memPost)
	m.nextID = 1
	return n, nil
}

func (m *memStore) GetPostIP(ctx context.Context, id int64) (string, error) {
	if err := m.fail("GetPostIP"); err != nil {
		return "", err
	}
	p, ok := m.posts[id]
	if !ok {
		return "", model.ErrPostNotFound
	}
	return p.ip, nil
}

func (m *memStore) BanIP(ctx context.Context, ip, reason string) (bool, error) {
	if err := m.fail("BanIP"); err != nil {
		return false, err
	}
	if _, ok := m.bans[ip]; ok {
		return false, nil
	}
	m.mutations++
	m.bans[ip] = &model.BannedIP{
		IPAddress:         ip,
		IsApprovedByAdmin: false,
		Reason:            reason,
		BannedAt:          time.Now(),
	}
	return true, nil
}

func (m *memStore) ApproveAllBans(ctx context.Context) (int64, error) {
	if err := m.fail("ApproveAllBans"); err != nil {
		return 0, err
	}
	var n int64
	for _, b := range m.bans {
		if !b.IsApprovedByAdmin {
			m.mutations++
			b.IsApprovedByAdmin = true
			n++
		}
	}
	return n, nil
}

// memTx выполняет fn над хранилищем с семантикой транзакции:
// при ошибке состояние откатывается к снимку до вызова
type memTx struct {
	store *memStore
}

func (t *memTx) WithinTx(ctx context.Context, fn func(Store) error) error {
	snapshot := t.store.clone()
	if err := fn(t.store); err != nil {
		*t.store = *snapshot
		return fmt.Errorf("tx rolled back: %w", err)
	}
	return nil
}
