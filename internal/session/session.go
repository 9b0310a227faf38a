package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/ordering-next/internal/cart"
	"github.com/ordering-next/internal/promo"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid 会话令牌缺失或无效
var ErrTokenInvalid = errors.New("session token invalid")

// Claims 会话令牌声明
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ParseToken 解析并校验 HS256 会话令牌
// 令牌的签发与刷新不在本服务内，这里只消费。
func ParseToken(secret, tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Backend 会话所需的上游能力集合
type Backend interface {
	cart.Backend
	promo.Validator
}

// Session 单个购物会话：购物车、同步适配器与优惠码引擎
type Session struct {
	Token  string
	UserID uint
	Cart   *cart.Syncer
	Promo  *promo.Engine
}

// Manager 会话注册表（令牌 -> 会话）
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	backend  Backend
}

// NewManager 创建会话注册表
func NewManager(backend Backend) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		backend:  backend,
	}
}

// Get 获取令牌对应的会话，不存在时创建
func (m *Manager) Get(token string, userID uint) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[token]; ok {
		return sess
	}
	sess := &Session{
		Token:  token,
		UserID: userID,
		Cart:   cart.NewSyncer(cart.NewStore(), m.backend),
		Promo:  promo.NewEngine(m.backend),
	}
	m.sessions[token] = sess
	return sess
}

// Logout 结束会话：清空购物车、重置优惠码并移除注册项
// Clear 使在途的购物车同步补偿失效。
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	sess, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	sess.Cart.Store().Clear()
	sess.Promo.Reset()
}

// Len 返回活跃会话数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
