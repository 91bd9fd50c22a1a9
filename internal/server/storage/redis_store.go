package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/draw-guess/internal/apperrors"
)

const (
	// Redis key
	credentialsKey = "users:credentials"

	maxUsernameLength = 24
)

// Hasher 密码哈希
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// Argon2idHasher 基于 argon2id 的密码哈希
type Argon2idHasher struct {
	params *argon2id.Params
}

// NewArgon2idHasher 创建哈希器，memory 单位为 KB
func NewArgon2idHasher(iterations, memory, keyLength, saltLength uint32, parallelism uint8) *Argon2idHasher {
	return &Argon2idHasher{
		params: &argon2id.Params{
			Memory:      memory,
			Iterations:  iterations,
			Parallelism: parallelism,
			SaltLength:  saltLength,
			KeyLength:   keyLength,
		},
	}
}

// DefaultHasher 使用库推荐参数
func DefaultHasher() *Argon2idHasher {
	return &Argon2idHasher{params: argon2id.DefaultParams}
}

// Hash 生成带盐哈希
func (h *Argon2idHasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

// Compare 校验密码
func (h *Argon2idHasher) Compare(hash, password string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}

// CredentialStore 账号存储：用户名 → 密码哈希，保存在一个 Redis hash 中
type CredentialStore struct {
	client *redis.Client
	hasher Hasher
}

// NewCredentialStore 创建账号存储，hasher 为 nil 时使用默认参数
func NewCredentialStore(client *redis.Client, hasher Hasher) *CredentialStore {
	if hasher == nil {
		hasher = DefaultHasher()
	}
	return &CredentialStore{client: client, hasher: hasher}
}

// normalizeUsername 用户名不区分大小写
func normalizeUsername(username string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(username))
	if name == "" || utf8.RuneCountInString(name) > maxUsernameLength {
		return "", false
	}
	return name, true
}

// Register 注册账号，用户名已存在返回 ErrUserExists
func (cs *CredentialStore) Register(ctx context.Context, username, password string) error {
	name, ok := normalizeUsername(username)
	if !ok || password == "" {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := cs.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}

	created, err := cs.client.HSetNX(ctx, credentialsKey, name, hash).Result()
	if err != nil {
		return fmt.Errorf("保存账号失败: %w", err)
	}
	if !created {
		return apperrors.ErrUserExists
	}
	return nil
}

// Login 校验账号密码
func (cs *CredentialStore) Login(ctx context.Context, username, password string) error {
	name, ok := normalizeUsername(username)
	if !ok {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := cs.client.HGet(ctx, credentialsKey, name).Result()
	if errors.Is(err, redis.Nil) {
		return apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("读取账号失败: %w", err)
	}

	match, err := cs.hasher.Compare(hash, password)
	if err != nil {
		return fmt.Errorf("校验密码失败: %w", err)
	}
	if !match {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// Count 已注册账号数
func (cs *CredentialStore) Count(ctx context.Context) (int64, error) {
	return cs.client.HLen(ctx, credentialsKey).Result()
}
