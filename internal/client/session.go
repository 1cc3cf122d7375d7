package client

import "sync"

// メモリ上のセッション。ログイン/ログアウトで差し替えて、
// エンジンの RefreshSession を呼ぶ使い方を想定。
type Session struct {
	mu     sync.RWMutex
	userID string
	token  string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SignIn(userID string, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.token = token
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.token = ""
}

func (s *Session) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
