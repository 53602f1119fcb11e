package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a key is missing or expired
var ErrNotFound = errors.New("cache: key not found")

var logger = logrus.StandardLogger().WithField("module", "cache")

// LocalCache is an in process cache with per key expiration
type LocalCache struct {
	cache *freecache.Cache
}

// NewLocalCache allocates a cache holding up to sizeBytes of entries
func NewLocalCache(sizeBytes int) *LocalCache {
	return &LocalCache{
		cache: freecache.NewCache(sizeBytes),
	}
}

func cacheKey(key string) []byte {
	return []byte(fmt.Sprintf("C:%s", key))
}

func expireSeconds(expiration time.Duration) int {
	if expiration <= 0 {
		return 0
	}
	seconds := int(expiration / time.Second)
	if seconds == 0 {
		seconds = 1
	}
	return seconds
}

// Set stores value as json
func (cache *LocalCache) Set(key string, value any, expiration time.Duration) error {
	valueMarshal, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cache.setByte(key, valueMarshal, expiration)
}

func (cache *LocalCache) setByte(key string, value []byte, expiration time.Duration) error {
	return cache.cache.Set(cacheKey(key), value, expireSeconds(expiration))
}

func (cache *LocalCache) SetUint64(key string, value uint64, expiration time.Duration) error {
	return cache.setByte(key, ui64tob(value), expiration)
}

func (cache *LocalCache) SetBool(key string, value bool, expiration time.Duration) error {
	return cache.setByte(key, booltob(value), expiration)
}

// Get unmarshals the json stored at key into returnValue
func (cache *LocalCache) Get(key string, returnValue any) (any, error) {
	res, err := cache.getByte(key)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(res, returnValue)
	if err != nil {
		cache.cache.Del(cacheKey(key))
		logger.Errorf("error unmarshalling data for key %v: %v", key, err)
		return nil, err
	}

	return returnValue, nil
}

func (cache *LocalCache) getByte(key string) ([]byte, error) {
	res, err := cache.cache.Get(cacheKey(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}

func (cache *LocalCache) GetUint64(key string) (uint64, error) {
	res, err := cache.getByte(key)
	if err != nil {
		return 0, err
	}
	if len(res) != 8 {
		return 0, fmt.Errorf("cache: value of %v is not a uint64", key)
	}
	return btoi64(res), nil
}

func (cache *LocalCache) GetBool(key string) (bool, error) {
	res, err := cache.getByte(key)
	if err != nil {
		return false, err
	}
	if len(res) != 1 {
		return false, fmt.Errorf("cache: value of %v is not a bool", key)
	}
	return btobool(res), nil
}

// Entries returns the number of entries currently held
func (cache *LocalCache) Entries() int64 {
	return cache.cache.EntryCount()
}

func ui64tob(val uint64) []byte {
	r := make([]byte, 8)
	for i := uint64(0); i < 8; i++ {
		r[i] = byte((val >> (i * 8)) & 0xff)
	}
	return r
}

func btoi64(val []byte) uint64 {
	r := uint64(0)
	for i := uint64(0); i < 8; i++ {
		r |= uint64(val[i]) << (8 * i)
	}
	return r
}

func booltob(val bool) []byte {
	r := make([]byte, 1)
	if val {
		r[0] = 1
	}
	return r
}

func btobool(val []byte) bool {
	return val[0] == 1
}
