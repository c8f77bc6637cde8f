package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session (active JTI).
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// QuizSessionKey returns the cache key for an in-flight quiz session payload.
func (r *CacheKeyStruct) QuizSessionKey(token string) string {
	return fmt.Sprintf("quiz:session:%s", token)
}

var CacheKey = NewCacheKeyStruct()
