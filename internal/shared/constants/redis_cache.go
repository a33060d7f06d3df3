package constants

import (
	"fmt"
	"time"
)

// Redis key layout: zari:{module}:{kind}:{identifier}

// ================== TTL DURATIONS ==================

const (
	TTL_STATIC_LONG        = 24 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
	TTL_DYNAMIC_MEDIUM     = 10 * time.Minute
	TTL_DYNAMIC_SHORT      = 5 * time.Minute
	TTL_REALTIME_SHORT     = 30 * time.Second
	ALERT_INBOX_MAX_LENGTH = 50
)

const (
	CACHE_PREFIX = "zari"
)

// ================== RESTAURANTS ==================

const (
	CACHE_KEY_RESTAURANTS_LIST      = CACHE_PREFIX + ":restaurants:list"         // + :q:X:district:Y
	CACHE_KEY_RESTAURANTS_DISTRICTS = CACHE_PREFIX + ":restaurants:districts"    // distinct districts
	CACHE_KEY_RESTAURANT_DETAIL     = CACHE_PREFIX + ":restaurants:detail:uuid:" // + restaurant-id
	CACHE_KEY_RESTAURANT_MENU       = CACHE_PREFIX + ":menus:restaurant:uuid:"   // + restaurant-id

	TTL_RESTAURANTS_LIST     = TTL_SEMI_STATIC_QUICK
	TTL_RESTAURANT_DETAIL    = TTL_DYNAMIC_MEDIUM
	TTL_RESTAURANT_MENU      = TTL_SEMI_STATIC_SHORT
	TTL_RESTAURANT_DISTRICTS = TTL_STATIC_LONG

	PATTERN_INVALIDATE_RESTAURANTS = CACHE_PREFIX + ":restaurants:*"
)

// ================== SESSIONS / DRAFTS ==================

const (
	KEY_SESSION      = CACHE_PREFIX + ":session:"            // + session-id
	KEY_DRAFT        = CACHE_PREFIX + ":draft:user:"         // + user-id:restaurant:restaurant-id
	KEY_LOCK_PREFIX  = CACHE_PREFIX + ":lock:"               // + lock name
	KEY_ALERT_INBOX  = CACHE_PREFIX + ":alerts:user:"        // + user-id
	KEY_MONITOR_SNAP = CACHE_PREFIX + ":monitor:camera:"     // + camera-id
	KEY_MONITOR_REST = CACHE_PREFIX + ":monitor:restaurant:" // + restaurant-id
)

// ================== STATS ==================

const (
	CACHE_KEY_STATS_RESTAURANT = CACHE_PREFIX + ":stats:restaurant:" // + restaurant-id:days:N
	TTL_STATS                  = TTL_DYNAMIC_SHORT
)

// ================== HELPERS ==================

func BuildRestaurantListKey(q, district string) string {
	return fmt.Sprintf("%s:q:%s:district:%s", CACHE_KEY_RESTAURANTS_LIST, q, district)
}

func BuildRestaurantDetailKey(restaurantID string) string {
	return CACHE_KEY_RESTAURANT_DETAIL + restaurantID
}

func BuildRestaurantMenuKey(restaurantID string) string {
	return CACHE_KEY_RESTAURANT_MENU + restaurantID
}

func BuildSessionKey(sessionID string) string {
	return KEY_SESSION + sessionID
}

func BuildDraftKey(userID, restaurantID string) string {
	return KEY_DRAFT + userID + ":restaurant:" + restaurantID
}

// BuildDraftLockName is relative to KEY_LOCK_PREFIX
func BuildDraftLockName(userID, restaurantID string) string {
	return "draft:" + userID + ":" + restaurantID
}

func BuildAlertInboxKey(userID string) string {
	return KEY_ALERT_INBOX + userID
}

func BuildCameraSnapshotKey(cameraID string) string {
	return KEY_MONITOR_SNAP + cameraID
}

func BuildRestaurantSnapshotKey(restaurantID string) string {
	return KEY_MONITOR_REST + restaurantID
}

func BuildStatsKey(restaurantID string, days int) string {
	return fmt.Sprintf("%s%s:days:%d", CACHE_KEY_STATS_RESTAURANT, restaurantID, days)
}
