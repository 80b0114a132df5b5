package resultcache

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// AttachDebugRoutes mounts a tailSQL instance over the cache database on
// the mux's debug handler, for poking at cached result sets locally.
func (c *Cache) AttachDebugRoutes(mux *http.ServeMux, label string) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://query_cache.db", c.db, &tailsql.DBOptions{
		Label: label,
	})

	debug.Handle("tailsql/", "Cached query results", tsql.NewMux())
	return nil
}
