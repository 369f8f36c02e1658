package postgres

// SQL for the user_behavior_logs table.

const (
	tableBehaviorLogs = "user_behavior_logs"

	// insertColumns is the fixed column order of a bulk insert row.
	// business_data and context_data are bound as text and cast to JSONB.
	insertColumns = `event_id, event_type, user_id, session_id,
			page, page_url, referrer,
			element_type, element_id, element_text, element_class,
			business_data, duration, scroll_depth,
			context_data, "timestamp"`

	// insertColumnCount must match insertColumns.
	insertColumnCount = 16

	// bulkInsertSuffix skips rows whose event_id already exists and returns the ids
	// that were actually written, so callers can tell new rows from duplicates.
	bulkInsertSuffix = `
		ON CONFLICT (event_id) DO NOTHING
		RETURNING event_id`

	selectBehaviorColumns = `
		SELECT
			id, event_id, event_type, user_id, session_id,
			page, page_url, referrer,
			element_type, element_id, element_text, element_class,
			business_data, duration, scroll_depth,
			context_data, "timestamp", created_at
		FROM user_behavior_logs`

	// queryStatsByUser groups a user's recent rows by (event_type, page).
	// The window is measured on created_at, not on the client timestamp.
	queryStatsByUser = `
		SELECT event_type, page, COUNT(*) AS event_count
		FROM user_behavior_logs
		WHERE user_id = $1
		  AND created_at >= NOW() - make_interval(days => $2::int)
		GROUP BY event_type, page
		ORDER BY event_count DESC
	`

	queryRecentPath = `
		SELECT page, "timestamp", event_type
		FROM user_behavior_logs
		WHERE user_id = $1
		  AND event_type IN ('page_view', 'page_leave')
		ORDER BY "timestamp" DESC
		LIMIT $2
	`

	queryPurgeOlderThan = `
		DELETE FROM user_behavior_logs
		WHERE created_at < NOW() - make_interval(days => $1::int)
	`

	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`
)
