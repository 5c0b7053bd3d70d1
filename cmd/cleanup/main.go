package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Removes cooldown marks whose window has long expired. Expired marks no
// longer suppress anything; they are just dead rows in app_state.
func main() {
	url := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "Usage: cleanup <connection-string> (or set DATABASE_URL)")
		os.Exit(1)
	}

	retentionMin := 60
	if v := os.Getenv("COOLDOWN_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			retentionMin = n
		}
	}

	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	tag, err := conn.Exec(context.Background(),
		`DELETE FROM app_state
		 WHERE key LIKE 'state:%:last_sent'
		   AND updated_at < now() - make_interval(mins => $1)`,
		retentionMin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cleanup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Removed %d expired cooldown marks.\n", tag.RowsAffected())
}
