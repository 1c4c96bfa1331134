package metrics

import (
	"time"
)

// UpdateEntityTotals sets the entity count gauges.
// The worker refreshes them periodically from the database.
func UpdateEntityTotals(posts, groups, users, follows int64) {
	PostsTotal.Set(float64(posts))
	GroupsTotal.Set(float64(groups))
	UsersTotal.Set(float64(users))
	FollowsTotal.Set(float64(follows))
}

// RecordPostCreated records a successfully stored post.
func RecordPostCreated() {
	PostsCreatedTotal.Inc()
}

// RecordCommentCreated records a successfully stored comment.
func RecordCommentCreated() {
	CommentsCreatedTotal.Inc()
}

// RecordFollowChange records a follow or unfollow action.
// Action should be either "follow" or "unfollow".
func RecordFollowChange(action string) {
	FollowChangesTotal.WithLabelValues(action).Inc()
}

// RecordStatsRefresh records the time taken to recount all tables.
func RecordStatsRefresh(duration time.Duration) {
	StatsRefreshDuration.Observe(duration.Seconds())
}

// RecordPageCache records a page cache lookup.
// Result should be one of "hit", "miss" or "error".
func RecordPageCache(prefix, result string) {
	PageCacheRequestsTotal.WithLabelValues(prefix, result).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_posts", "insert_post").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitBreakerState records the state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
