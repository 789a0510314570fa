package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// createScript атомарно чистит истёкшие удержания, при exclusive=1 проверяет
// пересечение с активными и добавляет новое.
// KEYS[1] - zset (score = expires_ms, member = json), KEYS[2] - hash id -> json.
var createScript = redis.NewScript(`
local now = tonumber(ARGV[1])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now)
if ARGV[4] == "1" then
  local s = tonumber(ARGV[5])
  local e = tonumber(ARGV[6])
  for _, m in ipairs(redis.call("ZRANGE", KEYS[1], 0, -1)) do
    local r = cjson.decode(m)
    if r.start_ms < e and r.end_ms > s then
      return 0
    end
  end
end
redis.call("ZADD", KEYS[1], ARGV[2], ARGV[3])
redis.call("HSET", KEYS[2], ARGV[7], ARGV[3])
local ttl = tonumber(ARGV[8])
if redis.call("PTTL", KEYS[1]) < ttl then
  redis.call("PEXPIRE", KEYS[1], ttl)
  redis.call("PEXPIRE", KEYS[2], ttl)
end
return 1
`)

// releaseScript удаляет удержание по id. KEYS как в createScript, ARGV[1] - id.
var releaseScript = redis.NewScript(`
local m = redis.call("HGET", KEYS[2], ARGV[1])
if not m then
  return 0
end
redis.call("HDEL", KEYS[2], ARGV[1])
return redis.call("ZREM", KEYS[1], m)
`)

// Repository хранилище временных удержаний слотов в Redis
type Repository struct {
	rdb    *redis.Client
	prefix string
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(rdb *redis.Client, prefix string) *Repository {
	if prefix == "" {
		prefix = "holds"
	}
	return &Repository{rdb: rdb, prefix: prefix}
}

// Create сохраняет удержание до r.ExpiresAt.
// exclusive=true запрещает пересечение с другими активными удержаниями того же типа события.
func (r *Repository) Create(ctx context.Context, res *domain.SlotReservation, now time.Time, exclusive bool) error {
	payload, err := json.Marshal(toRecord(res))
	if err != nil {
		return fmt.Errorf("%w: Create - marshal: %v", ErrEncode, err)
	}

	ttl := res.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("%w: Create - reservation already expired", ErrEncode)
	}

	zkey, hkey := r.keys(res.EventTypeID)
	flag := "0"
	if exclusive {
		flag = "1"
	}

	created, err := createScript.Run(ctx, r.rdb, []string{zkey, hkey},
		now.UnixMilli(),
		res.ExpiresAt.UnixMilli(),
		string(payload),
		flag,
		res.Start.UnixMilli(),
		res.End.UnixMilli(),
		res.ID,
		ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("%w: Create - run script: %v", ErrRedis, err)
	}
	if created == 0 {
		return ErrSlotHeld
	}

	return nil
}

// GetActive возвращает удержания типа события, не истёкшие к now и пересекающиеся с [from, to)
func (r *Repository) GetActive(ctx context.Context, eventTypeID int64, from, to, now time.Time) ([]domain.SlotReservation, error) {
	zkey, _ := r.keys(eventTypeID)

	members, err := r.rdb.ZRangeByScore(ctx, zkey, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - zrangebyscore: %v", ErrRedis, err)
	}

	reservations := make([]domain.SlotReservation, 0, len(members))
	for _, m := range members {
		var rec record
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, fmt.Errorf("%w: GetActive - unmarshal: %v", ErrDecode, err)
		}
		res := rec.toDomain()
		if !res.IsActive(now) || !res.Interval().Overlaps(from, to) {
			continue
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

// Release удаляет удержание
func (r *Repository) Release(ctx context.Context, eventTypeID int64, id string) error {
	zkey, hkey := r.keys(eventTypeID)

	removed, err := releaseScript.Run(ctx, r.rdb, []string{zkey, hkey}, id).Int()
	if err != nil {
		return fmt.Errorf("%w: Release - run script: %v", ErrRedis, err)
	}
	if removed == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) keys(eventTypeID int64) (string, string) {
	base := fmt.Sprintf("%s:%d", r.prefix, eventTypeID)
	return base, base + ":ids"
}
