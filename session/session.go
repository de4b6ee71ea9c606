package session

import (
	"net/http"
	"sync"
	"time"

	"foodhut/model"

	"github.com/google/uuid"
)

const CookieName = "foodhut_session"

// DefaultTTL は最後のアクセスからセッションを破棄するまでの時間です。
const DefaultTTL = 12 * time.Hour

const sweepInterval = time.Minute

// State は1セッション分の画面状態です。
// ログイン中フラグ・ログイン中のユーザー名・請求書に追加中の明細を持ちます。
type State struct {
	ID       string
	LoggedIn bool
	Username string
	Items    []model.InvoiceLineItem
}

func (st *State) clone() *State {
	c := *st
	c.Items = append([]model.InvoiceLineItem(nil), st.Items...)
	return &c
}

// Store はセッションIDをキーにした State のメモリ上の保管庫です。
// Load で受け取った State はコピーなので、変更後は Save で書き戻します。
// TTL を超えてアクセスのないセッションは Load のついでに破棄されます。
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	state    *State
	lastSeen time.Time
}

func NewStore() *Store {
	return NewStoreWithTTL(DefaultTTL)
}

func NewStoreWithTTL(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load はリクエストのクッキーに対応する State を返します。
// クッキーがない・期限切れの場合は新しいセッションを作り、クッキーを発行します。
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if c, err := r.Cookie(CookieName); err == nil {
		if e, ok := s.sessions[c.Value]; ok && !s.expired(e, now) {
			e.lastSeen = now
			return e.state.clone()
		}
	}

	st := &State{ID: uuid.NewString()}
	s.sessions[st.ID] = &entry{state: st, lastSeen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return st.clone()
}

func (s *Store) Save(st *State) {
	if st == nil || st.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = &entry{state: st.clone(), lastSeen: s.now()}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// sweep は期限切れのセッションを削除します。呼び出し側で mu を保持していること。
func (s *Store) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
		}
	}
}

// Clear はログアウト時にセッションの内容をすべて初期化します。IDはそのまま使い続けます。
func (s *Store) Clear(id string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &State{ID: id}
	s.sessions[id] = &entry{state: st, lastSeen: s.now()}
	return st.clone()
}

// Len は保持しているセッション数を返します。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
